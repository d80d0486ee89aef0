package localytics

import (
	"errors"
	"maps"
	"slices"

	"github.com/Tap30/ripple-localytics/adapters"
)

// Key identifies this integration in host settings.
const Key = "Localytics"

// Config wires an Integration to its collaborators.
type Config struct {
	Settings    Settings
	Application Application
	// Client receives every translated call. Required.
	Client ClientAdapter
	// Messenger is the in-app messaging capability. Nil when the host does
	// not ship the compatibility library.
	Messenger InAppMessenger
	// Logger is the host's logger for this integration. Its level decides
	// whether vendor logging is enabled.
	Logger LoggerAdapter
}

// Integration translates analytics facade calls into Localytics client calls.
//
// It holds no mutable state and is safe to call from several goroutines as
// long as the ClientAdapter is.
type Integration struct {
	client            ClientAdapter
	messenger         InAppMessenger
	logger            LoggerAdapter
	hasInAppMessaging bool
	dimensions        DimensionMap
	attributeScope    ProfileScope
}

// NewIntegration validates settings, configures the vendor client and
// returns a ready Integration.
func NewIntegration(config Config) (*Integration, error) {
	if err := config.Settings.Validate(); err != nil {
		return nil, err
	}
	if config.Client == nil {
		return nil, errors.New("ClientAdapter must be provided in config")
	}

	logger := config.Logger
	if logger == nil {
		logger = adapters.NewPrintLoggerAdapter(adapters.LogLevelWarn)
	}

	i := &Integration{
		client:            config.Client,
		messenger:         config.Messenger,
		logger:            logger,
		hasInAppMessaging: config.Messenger != nil,
		dimensions:        config.Settings.withDefaults().Dimensions,
		attributeScope:    adapters.ProfileScopeApplication,
	}
	if !i.hasInAppMessaging {
		i.messenger = adapters.NewNoOpInAppMessenger()
	}
	if config.Settings.OrganizationScope {
		i.attributeScope = adapters.ProfileScopeOrganization
	}

	// Localytics logs a lot, so only enable it for the most detailed level.
	loggingEnabled := logger.Level().AtLeast(adapters.LogLevelVerbose)
	i.client.SetLoggingEnabled(loggingEnabled)
	i.logger.Verbose("Localytics.setLoggingEnabled(%t);", loggingEnabled)

	appKey := config.Settings.AppKey
	i.client.Integrate(config.Application, appKey)
	i.logger.Verbose("Localytics.integrate(context, %s);", appKey)

	return i, nil
}

// AttributeScope returns the scope used for profile attributes.
func (i *Integration) AttributeScope() ProfileScope {
	return i.attributeScope
}

// Dimensions returns the configured custom dimension map.
func (i *Integration) Dimensions() DimensionMap {
	return i.dimensions
}

// HasInAppMessaging reports whether the in-app messaging capability is available.
func (i *Integration) HasInAppMessaging() bool {
	return i.hasInAppMessaging
}

// OnActivityResumed opens a session and uploads. Message hosts also receive in-app messages.
func (i *Integration) OnActivityResumed(activity Activity) {
	i.client.OpenSession()
	i.logger.Verbose("Localytics.openSession();")

	i.client.Upload()
	i.logger.Verbose("Localytics.upload();")

	if i.hasInAppMessaging {
		if host, ok := activity.(MessageHost); ok {
			i.messenger.SetInAppMessageDisplayActivity(host)
			i.logger.Verbose("Localytics.setInAppMessageDisplayActivity(%s);", host.MessageHostID())
		}
	}

	if activity == nil {
		return
	}
	if intent := activity.Intent(); intent != nil {
		i.client.HandleTestMode(intent)
		i.logger.Verbose("Localytics.handleTestMode(%+v);", *intent)
	}
}

// OnActivityPaused dismisses in-app messages, closes the session and uploads.
func (i *Integration) OnActivityPaused(activity Activity) {
	if i.hasInAppMessaging {
		i.messenger.DismissCurrentInAppMessage()
		i.logger.Verbose("Localytics.dismissCurrentInAppMessage();")
		i.messenger.ClearInAppMessageDisplayActivity()
		i.logger.Verbose("Localytics.clearInAppMessageDisplayActivity();")
	}

	i.client.CloseSession()
	i.logger.Verbose("Localytics.closeSession();")
	i.client.Upload()
	i.logger.Verbose("Localytics.upload();")
}

// Flush uploads pending datapoints.
func (i *Integration) Flush() {
	i.client.Upload()
	i.logger.Verbose("Localytics.upload();")
}

// Identify maps traits onto the customer profile.
func (i *Integration) Identify(event IdentifyEvent) {
	i.setContext(event.Context)
	traits := event.Traits

	if event.UserID != "" {
		i.client.SetCustomerID(event.UserID)
		i.logger.Verbose("Localytics.setCustomerId(%s);", event.UserID)
	}

	if email := traits.Email(); email != "" {
		i.client.SetIdentifier("email", email)
		i.client.SetCustomerEmail(email)
		i.logger.Verbose("Localytics.setIdentifier(\"email\", %s);", email)
		i.logger.Verbose("Localytics.setCustomerEmail(%s);", email)
	}

	if name := traits.Name(); name != "" {
		i.client.SetIdentifier("customer_name", name)
		i.client.SetCustomerFullName(name)
		i.logger.Verbose("Localytics.setIdentifier(\"customer_name\", %s);", name)
		i.logger.Verbose("Localytics.setCustomerFullName(%s);", name)
	}

	if firstName := traits.FirstName(); firstName != "" {
		i.client.SetCustomerFirstName(firstName)
		i.logger.Verbose("Localytics.setCustomerFirstName(%s);", firstName)
	}

	if lastName := traits.LastName(); lastName != "" {
		i.client.SetCustomerLastName(lastName)
		i.logger.Verbose("Localytics.setCustomerLastName(%s);", lastName)
	}

	i.setCustomDimensions(traits)

	// Reserved traits are also profile attributes.
	for _, key := range slices.Sorted(maps.Keys(traits)) {
		value := stringValue(traits[key])
		i.client.SetProfileAttribute(key, value, i.attributeScope)
		i.logger.Verbose("Localytics.setProfileAttribute(%s, %s, %s);", key, value, i.attributeScope)
	}
}

// Screen tags a screen view.
func (i *Integration) Screen(event ScreenEvent) {
	i.setContext(event.Context)

	name := event.ResolvedName()
	i.client.TagScreen(name)
	i.logger.Verbose("Localytics.tagScreen(%s);", name)
}

// Track tags an event, with revenue in cents when the properties carry any.
func (i *Integration) Track(event TrackEvent) {
	i.setContext(event.Context)

	properties := event.Properties
	attributes := properties.ToStringMap()
	revenue := revenueCents(properties.Revenue())

	if revenue != 0 {
		i.client.TagEventWithRevenue(event.Event, attributes, revenue)
		i.logger.Verbose("Localytics.tagEvent(%s, %v, %d);", event.Event, attributes, revenue)
	} else {
		i.client.TagEvent(event.Event, attributes)
		i.logger.Verbose("Localytics.tagEvent(%s, %v);", event.Event, attributes)
	}

	i.setCustomDimensions(properties)
}

// Group is accepted and ignored: Localytics has no group concept.
func (i *Integration) Group(event GroupEvent) {}

func (i *Integration) setContext(ctx EventContext) {
	if ctx.Location == nil {
		return
	}
	location := adapters.Location{
		Provider:  "Segment",
		Latitude:  ctx.Location.Latitude,
		Longitude: ctx.Location.Longitude,
		Speed:     float32(ctx.Location.Speed),
	}
	i.client.SetLocation(location)
	i.logger.Verbose("Localytics.setLocation(%+v);", location)
}

func (i *Integration) setCustomDimensions(source map[string]any) {
	for _, key := range slices.Sorted(maps.Keys(source)) {
		dimension, ok := i.dimensions.Slot(key)
		if !ok {
			continue
		}
		value := stringValue(source[key])
		i.client.SetCustomDimension(dimension, value)
		i.logger.Verbose("Localytics.setCustomDimension(%d, %s);", dimension, value)
	}
}
