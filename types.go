package localytics

import (
	"fmt"
	"time"

	"github.com/Tap30/ripple-localytics/adapters"
)

// Re-export adapter types for convenience
type (
	ClientAdapter  = adapters.ClientAdapter
	InAppMessenger = adapters.InAppMessenger
	Application    = adapters.Application
	Activity       = adapters.Activity
	MessageHost    = adapters.MessageHost
	Intent         = adapters.Intent
	Location       = adapters.Location
	ProfileScope   = adapters.ProfileScope
	Record         = adapters.Record
	HTTPAdapter    = adapters.HTTPAdapter
	HTTPResponse   = adapters.HTTPResponse
	StorageAdapter = adapters.StorageAdapter
	LoggerAdapter  = adapters.LoggerAdapter
	LogLevel       = adapters.LogLevel
)

// HTTPError reports an upload rejected by the collector.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d", e.Status)
}

// LocationContext is the device location carried in an event's context.
type LocationContext struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Speed     float64 `json:"speed" yaml:"speed"`
}

// EventContext is the part of the host's event context the integration reads.
type EventContext struct {
	Location *LocationContext `json:"location,omitempty" yaml:"location,omitempty"`
}

// IdentifyEvent ties a user to their traits.
type IdentifyEvent struct {
	UserID  string       `json:"userId,omitempty" yaml:"userId,omitempty"`
	Traits  Traits       `json:"traits,omitempty" yaml:"traits,omitempty"`
	Context EventContext `json:"context,omitempty" yaml:"context,omitempty"`
}

// ScreenEvent records a screen view.
type ScreenEvent struct {
	Category string       `json:"category,omitempty" yaml:"category,omitempty"`
	Name     string       `json:"name,omitempty" yaml:"name,omitempty"`
	Context  EventContext `json:"context,omitempty" yaml:"context,omitempty"`
}

// ResolvedName returns the screen name, falling back to the category.
func (s ScreenEvent) ResolvedName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Category
}

// TrackEvent records a user action.
type TrackEvent struct {
	Event      string       `json:"event" yaml:"event"`
	Properties Properties   `json:"properties,omitempty" yaml:"properties,omitempty"`
	Context    EventContext `json:"context,omitempty" yaml:"context,omitempty"`
}

// GroupEvent associates a user with a group.
type GroupEvent struct {
	GroupID string `json:"groupId,omitempty" yaml:"groupId,omitempty"`
	Traits  Traits `json:"traits,omitempty" yaml:"traits,omitempty"`
}

// UploadClientConfig configures the bundled upload client.
type UploadClientConfig struct {
	Endpoint       string
	APIKeyHeader   *string
	FlushInterval  time.Duration
	MaxBatchSize   int
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
	HTTPAdapter    HTTPAdapter
	StorageAdapter StorageAdapter
	LoggerAdapter  LoggerAdapter
}

type DispatcherConfig struct {
	Endpoint       string
	FlushInterval  time.Duration
	MaxBatchSize   int
	MaxRetries     int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}
