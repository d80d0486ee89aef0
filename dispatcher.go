package localytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Tap30/ripple-localytics/adapters"
	"github.com/cenkalti/backoff/v5"
)

// Dispatcher batches queued records and uploads them to the collector.
type Dispatcher struct {
	config         DispatcherConfig
	queue          *Queue
	httpAdapter    HTTPAdapter
	storageAdapter StorageAdapter
	loggerAdapter  LoggerAdapter
	headers        map[string]string
	ctx            context.Context
	cancel         context.CancelFunc
	ticker         *time.Ticker
	stopChan       chan struct{}
	stopOnce       sync.Once
	flushMu        sync.Mutex
	wg             sync.WaitGroup
	timerStarted   bool
	timerMu        sync.Mutex
}

func NewDispatcher(config DispatcherConfig, httpAdapter HTTPAdapter, storageAdapter StorageAdapter, headers map[string]string) *Dispatcher {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 10
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBaseDelay <= 0 {
		config.RetryBaseDelay = time.Second
	}
	if config.RetryMaxDelay <= 0 {
		config.RetryMaxDelay = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		config:         config,
		queue:          NewQueue(),
		httpAdapter:    httpAdapter,
		storageAdapter: storageAdapter,
		loggerAdapter:  adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn),
		headers:        headers,
		ctx:            ctx,
		cancel:         cancel,
		stopChan:       make(chan struct{}),
	}
}

// SetLoggerAdapter sets a custom logger adapter
func (d *Dispatcher) SetLoggerAdapter(logger LoggerAdapter) {
	d.loggerAdapter = logger
}

// Start restores records persisted by a previous run.
func (d *Dispatcher) Start() error {
	records, err := d.storageAdapter.Load()
	if err != nil {
		return err
	}
	d.queue.LoadFromSlice(records)

	// Don't start timer yet - wait for first new record
	return nil
}

func (d *Dispatcher) Enqueue(record Record) {
	d.queue.Enqueue(record)

	d.startTimerIfNeeded()

	if d.queue.Len() >= d.config.MaxBatchSize {
		go d.Flush()
	}
}

// Pending returns the number of records waiting for upload.
func (d *Dispatcher) Pending() int {
	return d.queue.Len()
}

func (d *Dispatcher) startTimerIfNeeded() {
	if d.config.FlushInterval <= 0 {
		return
	}

	d.timerMu.Lock()
	defer d.timerMu.Unlock()

	if !d.timerStarted {
		d.ticker = time.NewTicker(d.config.FlushInterval)
		d.timerStarted = true
		d.wg.Go(func() {
			for {
				select {
				case <-d.ticker.C:
					d.Flush()
				case <-d.stopChan:
					return
				}
			}
		})
	}
}

func (d *Dispatcher) Flush() {
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	if d.queue.IsEmpty() {
		return
	}

	d.loggerAdapter.Debug("Starting flush operation")

	allRecords := d.queue.Drain()

	for i := 0; i < len(allRecords); i += d.config.MaxBatchSize {
		end := min(i+d.config.MaxBatchSize, len(allRecords))
		batch := allRecords[i:end]

		d.loggerAdapter.Debug("Sending batch of %d records", len(batch))
		if err := d.sendWithRetry(batch); err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) && httpErr.Status < 500 {
				d.loggerAdapter.Warn("Unexpected status code %d, dropping %d records", httpErr.Status, len(batch))
				d.requeue(allRecords[end:])
				return
			}
			// The failed batch goes back first, later batches stay behind it.
			d.loggerAdapter.Error("Failed to send batch, keeping %d records: %v", len(allRecords)-i, err)
			d.requeue(allRecords[i:])
			return
		}
		d.loggerAdapter.Debug("Successfully sent batch of %d records", len(batch))
	}
}

func (d *Dispatcher) sendWithRetry(records []Record) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.config.RetryBaseDelay
	b.MaxInterval = d.config.RetryMaxDelay

	attempt := 0
	resp, err := backoff.Retry(d.ctx, func() (*HTTPResponse, error) {
		attempt++
		d.loggerAdapter.Debug("Sending HTTP request, attempt %d/%d", attempt, d.config.MaxRetries+1)

		resp, err := d.httpAdapter.SendWithContext(d.ctx, d.config.Endpoint, records, d.headers)
		if err != nil {
			d.loggerAdapter.Warn("Network error on attempt %d: %v", attempt, err)
			return nil, err
		}
		switch {
		case resp.Status >= 200 && resp.Status < 300, resp.Status >= 400 && resp.Status < 500:
			return resp, nil
		case resp.Status >= 500:
			d.loggerAdapter.Warn("5xx server error on attempt %d: status %d", attempt, resp.Status)
			return nil, &HTTPError{Status: resp.Status}
		default:
			return nil, backoff.Permanent(&HTTPError{Status: resp.Status})
		}
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(d.config.MaxRetries+1)))

	if err == nil {
		if resp.Status >= 400 {
			// 4xx: Client error - no retry, drop records
			d.loggerAdapter.Warn("4xx client error, dropping %d records (status %d)", len(records), resp.Status)
		}
		if err := d.storageAdapter.Clear(); err != nil {
			d.loggerAdapter.Error("Failed to clear persisted records: %v", err)
		}
		return nil
	}

	d.loggerAdapter.Debug("Upload gave up after %d attempts", attempt)
	return err
}

// requeue puts records back at the front of the queue and persists the queue.
func (d *Dispatcher) requeue(records []Record) {
	if len(records) == 0 {
		return
	}
	d.queue.Requeue(records)
	if err := d.storageAdapter.Save(d.queue.ToSlice()); err != nil {
		d.loggerAdapter.Error("Failed to persist records: %v", err)
	}
}

func (d *Dispatcher) stopTimer() {
	d.stopOnce.Do(func() {
		d.timerMu.Lock()
		if d.ticker != nil {
			d.ticker.Stop()
		}
		d.timerMu.Unlock()
		close(d.stopChan)
	})
	d.wg.Wait()
}

// Stop stops the timer, flushes what it can and persists the rest.
func (d *Dispatcher) Stop() error {
	d.stopTimer()

	d.Flush()
	d.cancel()

	records := d.queue.ToSlice()
	if len(records) > 0 {
		return d.storageAdapter.Save(records)
	}
	return nil
}

// StopWithoutFlush stops the dispatcher and persists records to storage without flushing to server
// An upload already in flight is cancelled and its records are kept.
func (d *Dispatcher) StopWithoutFlush() error {
	d.cancel()
	d.stopTimer()

	// Wait for an in-flight flush to requeue its records.
	d.flushMu.Lock()
	defer d.flushMu.Unlock()

	records := d.queue.ToSlice()
	if len(records) > 0 {
		return d.storageAdapter.Save(records)
	}
	return nil
}
