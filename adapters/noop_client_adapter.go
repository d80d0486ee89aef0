package adapters

// NoOpClientAdapter is a ClientAdapter that discards every call.
type NoOpClientAdapter struct{}

// Ensure NoOpClientAdapter implements ClientAdapter interface
var _ ClientAdapter = (*NoOpClientAdapter)(nil)

// NewNoOpClientAdapter creates a new NoOpClientAdapter instance.
func NewNoOpClientAdapter() *NoOpClientAdapter {
	return &NoOpClientAdapter{}
}

func (n *NoOpClientAdapter) SetLoggingEnabled(enabled bool)                            {}
func (n *NoOpClientAdapter) Integrate(app Application, appKey string)                  {}
func (n *NoOpClientAdapter) OpenSession()                                              {}
func (n *NoOpClientAdapter) CloseSession()                                             {}
func (n *NoOpClientAdapter) Upload()                                                   {}
func (n *NoOpClientAdapter) SetLocation(location Location)                             {}
func (n *NoOpClientAdapter) SetCustomerID(id string)                                   {}
func (n *NoOpClientAdapter) SetCustomerEmail(email string)                             {}
func (n *NoOpClientAdapter) SetCustomerFullName(name string)                           {}
func (n *NoOpClientAdapter) SetCustomerFirstName(name string)                          {}
func (n *NoOpClientAdapter) SetCustomerLastName(name string)                           {}
func (n *NoOpClientAdapter) SetIdentifier(key, value string)                           {}
func (n *NoOpClientAdapter) SetProfileAttribute(key, value string, scope ProfileScope) {}
func (n *NoOpClientAdapter) SetCustomDimension(dimension int, value string)            {}
func (n *NoOpClientAdapter) TagScreen(name string)                                     {}
func (n *NoOpClientAdapter) TagEvent(name string, attributes map[string]string)        {}
func (n *NoOpClientAdapter) HandleTestMode(intent *Intent)                             {}
func (n *NoOpClientAdapter) TagEventWithRevenue(name string, attributes map[string]string, revenue int64) {
}

// NoOpInAppMessenger is an InAppMessenger used when the compatibility library is absent.
type NoOpInAppMessenger struct{}

var _ InAppMessenger = (*NoOpInAppMessenger)(nil)

// NewNoOpInAppMessenger creates a new NoOpInAppMessenger instance.
func NewNoOpInAppMessenger() *NoOpInAppMessenger {
	return &NoOpInAppMessenger{}
}

func (n *NoOpInAppMessenger) SetInAppMessageDisplayActivity(host MessageHost) {}
func (n *NoOpInAppMessenger) DismissCurrentInAppMessage()                     {}
func (n *NoOpInAppMessenger) ClearInAppMessageDisplayActivity()               {}
