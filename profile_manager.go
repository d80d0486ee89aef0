package localytics

import (
	"maps"
	"sync"

	"github.com/Tap30/ripple-localytics/adapters"
)

// Customer field keys kept by the ProfileManager.
const (
	customerIDKey        = "customer_id"
	customerEmailKey     = "email"
	customerFullNameKey  = "full_name"
	customerFirstNameKey = "first_name"
	customerLastNameKey  = "last_name"
)

// MaxCustomDimensions is the number of custom dimension slots Localytics offers.
const MaxCustomDimensions = 20

// ProfileManager holds the customer state attached to every uploaded record
type ProfileManager struct {
	customer   map[string]string
	dimensions map[int]string
	location   *adapters.Location
	mu         sync.RWMutex
}

// NewProfileManager creates a new profile manager
func NewProfileManager() *ProfileManager {
	return &ProfileManager{
		customer:   make(map[string]string),
		dimensions: make(map[int]string),
	}
}

// SetCustomer sets a customer field or identifier
func (m *ProfileManager) SetCustomer(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customer[key] = value
}

// SetDimension sets a custom dimension. It reports false for slots out of range.
func (m *ProfileManager) SetDimension(slot int, value string) bool {
	if slot < 0 || slot >= MaxCustomDimensions {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dimensions[slot] = value
	return true
}

// SetLocation sets the last known location
func (m *ProfileManager) SetLocation(location adapters.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.location = &location
}

// Customer returns a copy of the customer fields, or nil when empty
func (m *ProfileManager) Customer() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.customer) == 0 {
		return nil
	}
	return maps.Clone(m.customer)
}

// Dimensions returns a copy of the custom dimensions, or nil when empty
func (m *ProfileManager) Dimensions() map[int]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.dimensions) == 0 {
		return nil
	}
	return maps.Clone(m.dimensions)
}

// Location returns a copy of the last known location, or nil
func (m *ProfileManager) Location() *adapters.Location {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.location == nil {
		return nil
	}
	loc := *m.location
	return &loc
}

// Clear removes all profile state.
func (m *ProfileManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customer = make(map[string]string)
	m.dimensions = make(map[int]string)
	m.location = nil
}
