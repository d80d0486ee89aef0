package localytics

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// DimensionMap maps trait or property keys to custom dimension slots.
// Values are coerced to an integer slot on lookup.
type DimensionMap map[string]any

// Slot returns the slot configured for key. The slot is 0 when the stored
// value is not an integer.
func (d DimensionMap) Slot(key string) (int, bool) {
	raw, ok := d[key]
	if !ok {
		return 0, false
	}
	slot, ok := coerceInt(raw)
	if !ok {
		return 0, true
	}
	return slot, true
}

// Settings are the integration options delivered by the host.
type Settings struct {
	AppKey            string       `mapstructure:"appKey" yaml:"appKey"`
	Dimensions        DimensionMap `mapstructure:"dimensions" yaml:"dimensions"`
	OrganizationScope bool         `mapstructure:"setOrganizationScope" yaml:"setOrganizationScope"`
}

// Validate reports missing required settings.
func (s Settings) Validate() error {
	if s.AppKey == "" {
		return errors.New("appKey must be provided in settings")
	}
	return nil
}

func (s Settings) withDefaults() Settings {
	if s.Dimensions == nil {
		s.Dimensions = DimensionMap{}
	}
	return s
}

// ParseSettings decodes a raw settings map as delivered by the host.
// Scalars are weakly typed, so "true" enables organization scope.
func ParseSettings(raw map[string]any) (Settings, error) {
	var s Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s.withDefaults(), nil
}

// LoadSettingsFile reads YAML settings from path.
func LoadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s.withDefaults(), nil
}

type envSettings struct {
	AppKey            string         `env:"LOCALYTICS_APP_KEY"`
	Dimensions        map[string]int `env:"LOCALYTICS_DIMENSIONS"`
	OrganizationScope bool           `env:"LOCALYTICS_ORGANIZATION_SCOPE" envDefault:"false"`
}

// LoadSettingsFromEnv reads settings from LOCALYTICS_APP_KEY,
// LOCALYTICS_DIMENSIONS ("key:slot,key:slot") and LOCALYTICS_ORGANIZATION_SCOPE.
func LoadSettingsFromEnv() (Settings, error) {
	var e envSettings
	if err := env.Parse(&e); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	s := Settings{
		AppKey:            e.AppKey,
		OrganizationScope: e.OrganizationScope,
		Dimensions:        make(DimensionMap, len(e.Dimensions)),
	}
	for k, v := range e.Dimensions {
		s.Dimensions[k] = v
	}
	return s, nil
}
