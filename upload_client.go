package localytics

import (
	"errors"
	"maps"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Tap30/ripple-localytics/adapters"
	"github.com/google/uuid"
)

// UploadClient is a ClientAdapter that keeps sessions and customer state
// locally and uploads datapoints to a collector endpoint in batches.
type UploadClient struct {
	config         UploadClientConfig
	profile        *ProfileManager
	dispatcher     *Dispatcher
	httpAdapter    HTTPAdapter
	storageAdapter StorageAdapter
	loggerAdapter  LoggerAdapter
	now            func() time.Time

	mu             sync.RWMutex
	initialized    bool
	appKey         string
	sessionID      string
	testMode       bool
	loggingEnabled bool
}

var _ ClientAdapter = (*UploadClient)(nil)

// NewUploadClient validates config, fills defaults and returns a client
// that starts working once Integrate is called.
func NewUploadClient(config UploadClientConfig) (*UploadClient, error) {
	if config.Endpoint == "" {
		return nil, errors.New("endpoint must be provided in config")
	}
	if config.HTTPAdapter == nil || config.StorageAdapter == nil {
		return nil, errors.New("both HTTPAdapter and StorageAdapter must be provided in config")
	}

	if config.FlushInterval == 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 10
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}

	client := &UploadClient{
		config:         config,
		profile:        NewProfileManager(),
		httpAdapter:    config.HTTPAdapter,
		storageAdapter: config.StorageAdapter,
		now:            time.Now,
	}

	if config.LoggerAdapter != nil {
		client.loggerAdapter = config.LoggerAdapter
	} else {
		client.loggerAdapter = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}

	return client, nil
}

// trace logs a call when vendor logging is enabled.
func (c *UploadClient) trace(message string, args ...any) {
	c.mu.RLock()
	enabled := c.loggingEnabled
	c.mu.RUnlock()
	if enabled {
		c.loggerAdapter.Verbose(message, args...)
	}
}

func (c *UploadClient) SetLoggingEnabled(enabled bool) {
	c.mu.Lock()
	c.loggingEnabled = enabled
	c.mu.Unlock()
}

// Integrate binds the client to appKey and restores persisted records.
// Later calls are ignored.
func (c *UploadClient) Integrate(app Application, appKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		c.loggerAdapter.Warn("Integrate called twice, keeping app key %s", c.appKey)
		return
	}

	apiKeyHeader := "X-API-Key"
	if c.config.APIKeyHeader != nil {
		apiKeyHeader = *c.config.APIKeyHeader
	}

	dispatcherConfig := DispatcherConfig{
		Endpoint:       c.config.Endpoint,
		FlushInterval:  c.config.FlushInterval,
		MaxBatchSize:   c.config.MaxBatchSize,
		MaxRetries:     c.config.MaxRetries,
		RetryBaseDelay: c.config.RetryBaseDelay,
		RetryMaxDelay:  c.config.RetryMaxDelay,
	}

	dispatcher := NewDispatcher(dispatcherConfig, c.httpAdapter, c.storageAdapter, map[string]string{
		apiKeyHeader: appKey,
	})
	dispatcher.SetLoggerAdapter(c.loggerAdapter)
	if err := dispatcher.Start(); err != nil {
		c.loggerAdapter.Error("Failed to restore persisted records: %v", err)
	}

	c.dispatcher = dispatcher
	c.appKey = appKey
	c.initialized = true
	if app != nil {
		c.loggerAdapter.Info("Client integrated for %s with app key %s", app.PackageName(), appKey)
	} else {
		c.loggerAdapter.Info("Client integrated with app key %s", appKey)
	}
}

// enqueue stamps r with the current session and profile and queues it.
func (c *UploadClient) enqueue(r Record) {
	c.mu.RLock()
	initialized := c.initialized
	dispatcher := c.dispatcher
	r.SessionID = c.sessionID
	r.TestMode = c.testMode
	c.mu.RUnlock()

	if !initialized {
		c.loggerAdapter.Warn("Dropping %s record, client not integrated", r.Type)
		return
	}

	r.Customer = c.profile.Customer()
	r.Dimensions = c.profile.Dimensions()
	r.Location = c.profile.Location()
	r.IssuedAt = c.now().UnixMilli()
	dispatcher.Enqueue(r)
}

// SessionID returns the open session id, or "" when no session is open.
func (c *UploadClient) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// TestMode reports whether a test mode deep link was received.
func (c *UploadClient) TestMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.testMode
}

// Profile returns the customer state attached to records.
func (c *UploadClient) Profile() *ProfileManager {
	return c.profile
}

func (c *UploadClient) OpenSession() {
	c.mu.Lock()
	if c.sessionID != "" {
		c.mu.Unlock()
		return
	}
	c.sessionID = uuid.NewString()
	id := c.sessionID
	c.mu.Unlock()

	c.trace("session %s opened", id)
	c.enqueue(Record{Type: adapters.RecordTypeSessionOpen})
}

func (c *UploadClient) CloseSession() {
	c.mu.RLock()
	open := c.sessionID != ""
	c.mu.RUnlock()
	if !open {
		return
	}

	c.enqueue(Record{Type: adapters.RecordTypeSessionClose})

	c.mu.Lock()
	id := c.sessionID
	c.sessionID = ""
	c.mu.Unlock()
	c.trace("session %s closed", id)
}

// Upload flushes pending records synchronously.
func (c *UploadClient) Upload() {
	c.mu.RLock()
	initialized := c.initialized
	dispatcher := c.dispatcher
	c.mu.RUnlock()

	if !initialized {
		c.loggerAdapter.Warn("Upload called before Integrate")
		return
	}

	c.trace("uploading %d records", dispatcher.Pending())
	dispatcher.Flush()
}

func (c *UploadClient) SetLocation(location Location) {
	c.profile.SetLocation(location)
}

func (c *UploadClient) SetCustomerID(id string) {
	c.profile.SetCustomer(customerIDKey, id)
}

func (c *UploadClient) SetCustomerEmail(email string) {
	c.profile.SetCustomer(customerEmailKey, email)
}

func (c *UploadClient) SetCustomerFullName(name string) {
	c.profile.SetCustomer(customerFullNameKey, name)
}

func (c *UploadClient) SetCustomerFirstName(name string) {
	c.profile.SetCustomer(customerFirstNameKey, name)
}

func (c *UploadClient) SetCustomerLastName(name string) {
	c.profile.SetCustomer(customerLastNameKey, name)
}

func (c *UploadClient) SetIdentifier(key, value string) {
	c.profile.SetCustomer(key, value)
}

func (c *UploadClient) SetProfileAttribute(key, value string, scope ProfileScope) {
	c.enqueue(Record{
		Type:       adapters.RecordTypeProfile,
		Name:       key,
		Attributes: map[string]string{key: value},
		Scope:      scope,
	})
}

func (c *UploadClient) SetCustomDimension(dimension int, value string) {
	if !c.profile.SetDimension(dimension, value) {
		c.loggerAdapter.Warn("Ignoring custom dimension %d, slots are 0-%d", dimension, MaxCustomDimensions-1)
	}
}

func (c *UploadClient) TagScreen(name string) {
	c.enqueue(Record{Type: adapters.RecordTypeScreen, Name: name})
}

func (c *UploadClient) TagEvent(name string, attributes map[string]string) {
	c.enqueue(Record{Type: adapters.RecordTypeEvent, Name: name, Attributes: maps.Clone(attributes)})
}

func (c *UploadClient) TagEventWithRevenue(name string, attributes map[string]string, revenue int64) {
	c.enqueue(Record{
		Type:       adapters.RecordTypeEvent,
		Name:       name,
		Attributes: maps.Clone(attributes),
		Revenue:    revenue,
	})
}

// HandleTestMode enables test mode for amp<appKey>://testMode deep links.
func (c *UploadClient) HandleTestMode(intent *Intent) {
	if intent == nil || intent.Data == "" {
		return
	}
	u, err := url.Parse(intent.Data)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.appKey == "" || !strings.EqualFold(u.Scheme, "amp"+c.appKey) || u.Host != "testMode" {
		return
	}
	c.testMode = true
	c.loggerAdapter.Info("Test mode enabled")
}

// Dispose stops the client, flushing what it can and persisting the rest.
// Calls made while the final flush runs are dropped.
func (c *UploadClient) Dispose() error {
	dispatcher := c.detach()
	if dispatcher == nil {
		return nil
	}

	c.loggerAdapter.Info("Disposing client")
	return dispatcher.Stop()
}

// DisposeWithoutFlush stops the client and persists records to storage without flushing to server
func (c *UploadClient) DisposeWithoutFlush() error {
	dispatcher := c.detach()
	if dispatcher == nil {
		return nil
	}

	c.loggerAdapter.Info("Disposing client without flush")
	return dispatcher.StopWithoutFlush()
}

// detach marks the client as no longer integrated and resets session and
// profile state. It returns nil if the client was not integrated.
func (c *UploadClient) detach() *Dispatcher {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}
	dispatcher := c.dispatcher
	c.initialized = false
	c.dispatcher = nil
	c.appKey = ""
	c.sessionID = ""
	c.testMode = false
	c.profile.Clear()
	return dispatcher
}
