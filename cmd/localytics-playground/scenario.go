package main

import (
	"fmt"
	"os"

	localytics "github.com/Tap30/ripple-localytics"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of host calls replayed through the integration.
type Scenario struct {
	Name string `yaml:"name"`
	// Settings are the raw integration settings, as a host would deliver them.
	Settings map[string]any `yaml:"settings"`
	Steps    []Step         `yaml:"steps"`
}

// Step holds exactly one host call.
type Step struct {
	Resume   *ActivityStep             `yaml:"resume,omitempty"`
	Pause    *ActivityStep             `yaml:"pause,omitempty"`
	Flush    *struct{}                 `yaml:"flush,omitempty"`
	Identify *localytics.IdentifyEvent `yaml:"identify,omitempty"`
	Screen   *localytics.ScreenEvent   `yaml:"screen,omitempty"`
	Track    *localytics.TrackEvent    `yaml:"track,omitempty"`
	Group    *localytics.GroupEvent    `yaml:"group,omitempty"`
}

// ActivityStep describes the activity passed to lifecycle calls.
type ActivityStep struct {
	// DeepLink becomes the launch intent's data URI.
	DeepLink string `yaml:"deepLink,omitempty"`
	// MessageHost marks the activity as able to display in-app messages.
	MessageHost bool `yaml:"messageHost,omitempty"`
}

// Action names the call a step performs.
func (s Step) Action() string {
	var actions []string
	if s.Resume != nil {
		actions = append(actions, "resume")
	}
	if s.Pause != nil {
		actions = append(actions, "pause")
	}
	if s.Flush != nil {
		actions = append(actions, "flush")
	}
	if s.Identify != nil {
		actions = append(actions, "identify")
	}
	if s.Screen != nil {
		actions = append(actions, "screen")
	}
	if s.Track != nil {
		actions = append(actions, "track")
	}
	if s.Group != nil {
		actions = append(actions, "group")
	}
	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// Apply performs the step against h.
func (s Step) Apply(h localytics.EventHandler) {
	switch s.Action() {
	case "resume":
		h.OnActivityResumed(s.Resume.activity())
	case "pause":
		h.OnActivityPaused(s.Pause.activity())
	case "flush":
		h.Flush()
	case "identify":
		h.Identify(*s.Identify)
	case "screen":
		h.Screen(*s.Screen)
	case "track":
		h.Track(*s.Track)
	case "group":
		h.Group(*s.Group)
	}
}

func (a *ActivityStep) activity() localytics.Activity {
	base := &playgroundActivity{}
	if a.DeepLink != "" {
		base.intent = &localytics.Intent{Action: "android.intent.action.VIEW", Data: a.DeepLink}
	}
	if a.MessageHost {
		return &playgroundMessageHost{playgroundActivity: base}
	}
	return base
}

type playgroundActivity struct {
	intent *localytics.Intent
}

func (a *playgroundActivity) Intent() *localytics.Intent { return a.intent }

type playgroundMessageHost struct {
	*playgroundActivity
}

func (h *playgroundMessageHost) MessageHostID() string { return "playground" }

// LoadScenario parses a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks that every step names exactly one call.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, step := range s.Steps {
		if step.Action() == "" {
			return fmt.Errorf("step %d: exactly one of resume, pause, flush, identify, screen, track, group is required", i+1)
		}
	}
	return nil
}
