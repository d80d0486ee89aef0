package adapters

// StorageAdapter is an interface for record persistence.
// Implement this interface to use custom storage backends (database, Redis, S3, etc.).
type StorageAdapter interface {
	// Save persists records to storage, replacing what was stored before.
	//
	// Parameters:
	//   - records: Records to save
	//
	// Returns error if save fails.
	Save(records []Record) error

	// Load retrieves persisted records from storage.
	//
	// Returns records or error.
	Load() ([]Record, error)

	// Clear removes all persisted records from storage.
	//
	// Returns error if clear fails.
	Clear() error
}

// StorageQuotaExceededError is returned by storage adapters that cap how many
// records they keep.
type StorageQuotaExceededError struct {
	Message string
}

func (e *StorageQuotaExceededError) Error() string {
	if e.Message == "" {
		return "storage quota exceeded"
	}
	return e.Message
}
