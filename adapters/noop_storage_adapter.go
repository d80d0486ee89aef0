package adapters

// NoOpStorageAdapter keeps nothing between runs. Records that fail to upload
// are lost when the client is disposed.
type NoOpStorageAdapter struct{}

var _ StorageAdapter = (*NoOpStorageAdapter)(nil)

func NewNoOpStorageAdapter() *NoOpStorageAdapter {
	return &NoOpStorageAdapter{}
}

// Save discards records.
func (n *NoOpStorageAdapter) Save([]Record) error { return nil }

// Load always reports an empty backlog.
func (n *NoOpStorageAdapter) Load() ([]Record, error) { return []Record{}, nil }

func (n *NoOpStorageAdapter) Clear() error { return nil }

// Close does nothing.
func (n *NoOpStorageAdapter) Close() error { return nil }
