package adapters

import "context"

// HTTPResponse represents the response from an HTTP request.
type HTTPResponse struct {
	OK     bool
	Status int
	Data   any
}

// HTTPAdapter is an interface for HTTP communication.
// Implement this interface to use custom HTTP clients.
type HTTPAdapter interface {
	// Send records to the specified endpoint.
	//
	// Parameters:
	//   - endpoint: The collector endpoint URL
	//   - records: Records to upload
	//   - headers: Optional custom headers to merge with defaults
	//
	// Returns HTTP response or error.
	Send(endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error)

	// SendWithContext is Send bounded by ctx.
	SendWithContext(ctx context.Context, endpoint string, records []Record, headers map[string]string) (*HTTPResponse, error)
}
