package adapters

import "sync"

// Vendor method names, as recorded by RecordingClientAdapter and used as
// metric labels by MetricsClientAdapter.
const (
	MethodSetLoggingEnabled                = "SetLoggingEnabled"
	MethodIntegrate                        = "Integrate"
	MethodOpenSession                      = "OpenSession"
	MethodCloseSession                     = "CloseSession"
	MethodUpload                           = "Upload"
	MethodSetLocation                      = "SetLocation"
	MethodSetCustomerID                    = "SetCustomerID"
	MethodSetCustomerEmail                 = "SetCustomerEmail"
	MethodSetCustomerFullName              = "SetCustomerFullName"
	MethodSetCustomerFirstName             = "SetCustomerFirstName"
	MethodSetCustomerLastName              = "SetCustomerLastName"
	MethodSetIdentifier                    = "SetIdentifier"
	MethodSetProfileAttribute              = "SetProfileAttribute"
	MethodSetCustomDimension               = "SetCustomDimension"
	MethodTagScreen                        = "TagScreen"
	MethodTagEvent                         = "TagEvent"
	MethodTagEventWithRevenue              = "TagEventWithRevenue"
	MethodHandleTestMode                   = "HandleTestMode"
	MethodSetInAppMessageDisplayActivity   = "SetInAppMessageDisplayActivity"
	MethodDismissCurrentInAppMessage       = "DismissCurrentInAppMessage"
	MethodClearInAppMessageDisplayActivity = "ClearInAppMessageDisplayActivity"
)

// Call is a single recorded vendor call.
type Call struct {
	Method string
	Args   []any
}

// RecordingClientAdapter records every vendor call in order. It implements
// both ClientAdapter and InAppMessenger so a single recorder observes the
// complete call sequence of an integration.
type RecordingClientAdapter struct {
	mu    sync.Mutex
	calls []Call
}

var (
	_ ClientAdapter  = (*RecordingClientAdapter)(nil)
	_ InAppMessenger = (*RecordingClientAdapter)(nil)
)

// NewRecordingClientAdapter creates an empty recorder.
func NewRecordingClientAdapter() *RecordingClientAdapter {
	return &RecordingClientAdapter{}
}

func (r *RecordingClientAdapter) record(method string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Method: method, Args: args})
}

// Calls returns a copy of all recorded calls.
func (r *RecordingClientAdapter) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsTo returns the recorded calls of one method, in order.
func (r *RecordingClientAdapter) CallsTo(method string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Call
	for _, c := range r.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times method was called.
func (r *RecordingClientAdapter) Count(method string) int {
	return len(r.CallsTo(method))
}

// Methods returns the method names of all recorded calls, in order.
func (r *RecordingClientAdapter) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Method
	}
	return out
}

// Reset forgets all recorded calls.
func (r *RecordingClientAdapter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *RecordingClientAdapter) SetLoggingEnabled(enabled bool) {
	r.record(MethodSetLoggingEnabled, enabled)
}

func (r *RecordingClientAdapter) Integrate(app Application, appKey string) {
	r.record(MethodIntegrate, app, appKey)
}

func (r *RecordingClientAdapter) OpenSession()  { r.record(MethodOpenSession) }
func (r *RecordingClientAdapter) CloseSession() { r.record(MethodCloseSession) }
func (r *RecordingClientAdapter) Upload()       { r.record(MethodUpload) }

func (r *RecordingClientAdapter) SetLocation(location Location) {
	r.record(MethodSetLocation, location)
}

func (r *RecordingClientAdapter) SetCustomerID(id string) { r.record(MethodSetCustomerID, id) }

func (r *RecordingClientAdapter) SetCustomerEmail(email string) {
	r.record(MethodSetCustomerEmail, email)
}

func (r *RecordingClientAdapter) SetCustomerFullName(name string) {
	r.record(MethodSetCustomerFullName, name)
}

func (r *RecordingClientAdapter) SetCustomerFirstName(name string) {
	r.record(MethodSetCustomerFirstName, name)
}

func (r *RecordingClientAdapter) SetCustomerLastName(name string) {
	r.record(MethodSetCustomerLastName, name)
}

func (r *RecordingClientAdapter) SetIdentifier(key, value string) {
	r.record(MethodSetIdentifier, key, value)
}

func (r *RecordingClientAdapter) SetProfileAttribute(key, value string, scope ProfileScope) {
	r.record(MethodSetProfileAttribute, key, value, scope)
}

func (r *RecordingClientAdapter) SetCustomDimension(dimension int, value string) {
	r.record(MethodSetCustomDimension, dimension, value)
}

func (r *RecordingClientAdapter) TagScreen(name string) { r.record(MethodTagScreen, name) }

func (r *RecordingClientAdapter) TagEvent(name string, attributes map[string]string) {
	r.record(MethodTagEvent, name, attributes)
}

func (r *RecordingClientAdapter) TagEventWithRevenue(name string, attributes map[string]string, revenue int64) {
	r.record(MethodTagEventWithRevenue, name, attributes, revenue)
}

func (r *RecordingClientAdapter) HandleTestMode(intent *Intent) {
	r.record(MethodHandleTestMode, intent)
}

func (r *RecordingClientAdapter) SetInAppMessageDisplayActivity(host MessageHost) {
	r.record(MethodSetInAppMessageDisplayActivity, host)
}

func (r *RecordingClientAdapter) DismissCurrentInAppMessage() {
	r.record(MethodDismissCurrentInAppMessage)
}

func (r *RecordingClientAdapter) ClearInAppMessageDisplayActivity() {
	r.record(MethodClearInAppMessageDisplayActivity)
}
