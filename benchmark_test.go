package localytics

import (
	"context"
	"testing"
	"time"

	"github.com/Tap30/ripple-localytics/adapters"
)

func newBenchIntegration(b *testing.B, client ClientAdapter) *Integration {
	integration, err := NewIntegration(Config{
		Settings: Settings{
			AppKey:     "bench",
			Dimensions: DimensionMap{"plan": 1, "tier": 2},
		},
		Client: client,
		Logger: adapters.NewNoOpLoggerAdapter(),
	})
	if err != nil {
		b.Fatal(err)
	}
	return integration
}

// Benchmark integration construction
func BenchmarkNewIntegration(b *testing.B) {
	client := adapters.NewNoOpClientAdapter()

	b.ResetTimer()
	for b.Loop() {
		_ = newBenchIntegration(b, client)
	}
}

func BenchmarkIdentify(b *testing.B) {
	integration := newBenchIntegration(b, adapters.NewNoOpClientAdapter())
	event := IdentifyEvent{
		UserID: "user-1",
		Traits: Traits{
			"email":     "user@example.com",
			"name":      "Jane Doe",
			"firstName": "Jane",
			"lastName":  "Doe",
			"plan":      "gold",
		},
	}

	b.ResetTimer()
	for b.Loop() {
		integration.Identify(event)
	}
}

func BenchmarkTrack(b *testing.B) {
	integration := newBenchIntegration(b, adapters.NewNoOpClientAdapter())
	event := TrackEvent{
		Event: "Order Completed",
		Properties: Properties{
			"revenue": 19.99,
			"tier":    3,
			"sku":     "abc",
		},
	}

	b.ResetTimer()
	for b.Loop() {
		integration.Track(event)
	}
}

func BenchmarkTrackUploadClient(b *testing.B) {
	client, err := NewUploadClient(UploadClientConfig{
		Endpoint:       "http://test.com",
		FlushInterval:  time.Hour,
		MaxBatchSize:   100,
		HTTPAdapter:    &benchHTTPAdapter{},
		StorageAdapter: adapters.NewNoOpStorageAdapter(),
		LoggerAdapter:  adapters.NewNoOpLoggerAdapter(),
	})
	if err != nil {
		b.Fatal(err)
	}
	integration := newBenchIntegration(b, client)
	defer client.Dispose()

	event := TrackEvent{Event: "test_event", Properties: Properties{"key1": "value1", "key2": 123}}

	b.ResetTimer()
	for b.Loop() {
		integration.Track(event)
	}
}

func BenchmarkStringValue(b *testing.B) {
	values := []any{"s", 42, 19.99, true, nil, []any{1, "two"}}

	b.ResetTimer()
	for b.Loop() {
		for _, v := range values {
			_ = stringValue(v)
		}
	}
}

// Benchmark queue operations
func BenchmarkQueueEnqueue(b *testing.B) {
	queue := NewQueue()
	record := Record{
		Type:       adapters.RecordTypeEvent,
		Name:       "test",
		Attributes: map[string]string{"key": "value"},
		IssuedAt:   time.Now().UnixMilli(),
	}

	b.ResetTimer()
	for b.Loop() {
		queue.Enqueue(record)
	}
}

func BenchmarkQueueDrain(b *testing.B) {
	queue := NewQueue()
	record := Record{
		Type:       adapters.RecordTypeEvent,
		Name:       "test",
		Attributes: map[string]string{"key": "value"},
		IssuedAt:   time.Now().UnixMilli(),
	}

	for b.Loop() {
		for range 10 {
			queue.Enqueue(record)
		}
		_ = queue.Drain()
	}
}

type benchHTTPAdapter struct{}

func (a *benchHTTPAdapter) Send(endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error) {
	return &HTTPResponse{OK: true, Status: 200}, nil
}

func (a *benchHTTPAdapter) SendWithContext(_ context.Context, endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error) {
	return a.Send(endpoint, records, headers)
}
