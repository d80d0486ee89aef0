package localytics

// EventHandler is the contract the analytics host dispatches into.
type EventHandler interface {
	OnActivityResumed(activity Activity)
	OnActivityPaused(activity Activity)
	Flush()
	Identify(event IdentifyEvent)
	Screen(event ScreenEvent)
	Track(event TrackEvent)
	Group(event GroupEvent)
}

var _ EventHandler = (*Integration)(nil)

// Host is the analytics host creating integrations.
type Host interface {
	// Logger returns the host logger for the integration named tag.
	Logger(tag string) LoggerAdapter
	Application() Application
}

// Factory builds Integrations from raw host settings.
type Factory struct {
	Client    ClientAdapter
	Messenger InAppMessenger
}

// Key returns the settings key this factory answers to.
func (f Factory) Key() string {
	return Key
}

// Create parses settings and builds an Integration bound to host.
func (f Factory) Create(settings map[string]any, host Host) (*Integration, error) {
	parsed, err := ParseSettings(settings)
	if err != nil {
		return nil, err
	}
	return NewIntegration(Config{
		Settings:    parsed,
		Application: host.Application(),
		Client:      f.Client,
		Messenger:   f.Messenger,
		Logger:      host.Logger(Key),
	})
}
