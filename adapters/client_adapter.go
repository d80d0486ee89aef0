package adapters

// ClientAdapter is the vendor client the integration forwards calls to.
// Implement this interface to plug in a native SDK binding, a test double or
// the bundled upload client.
//
// Every method is one-way: failures are owned by the implementation.
type ClientAdapter interface {
	// SetLoggingEnabled toggles the vendor's own verbose logging.
	SetLoggingEnabled(enabled bool)
	// Integrate registers the application with the vendor under appKey.
	Integrate(app Application, appKey string)

	OpenSession()
	CloseSession()
	// Upload requests an immediate upload of pending datapoints.
	Upload()

	SetLocation(location Location)

	SetCustomerID(id string)
	SetCustomerEmail(email string)
	SetCustomerFullName(name string)
	SetCustomerFirstName(name string)
	SetCustomerLastName(name string)

	// SetIdentifier sets a generic customer identifier.
	SetIdentifier(key, value string)
	// SetProfileAttribute sets a profile attribute within the given scope.
	SetProfileAttribute(key, value string, scope ProfileScope)
	// SetCustomDimension assigns value to the numbered custom dimension slot.
	SetCustomDimension(dimension int, value string)

	TagScreen(name string)
	TagEvent(name string, attributes map[string]string)
	// TagEventWithRevenue tags an event carrying a customer value increase in cents.
	TagEventWithRevenue(name string, attributes map[string]string, revenue int64)

	// HandleTestMode inspects a launch intent for the vendor's test mode deep link.
	HandleTestMode(intent *Intent)
}

// InAppMessenger is the optional in-app messaging capability of the vendor
// client. It is only available when the host ships the compatibility library.
type InAppMessenger interface {
	SetInAppMessageDisplayActivity(host MessageHost)
	DismissCurrentInAppMessage()
	ClearInAppMessageDisplayActivity()
}
