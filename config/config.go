// Package config loads the persisted netlogs settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/viper"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "NETLOGS"
)

// Settings are the user preferences netlogs reads at start up.
type Settings struct {
	v   *viper.Viper
	Dir string `mapstructure:"-"`

	Language  string `mapstructure:"language"`
	Theme     string `mapstructure:"theme"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// HiddenTags lists item tags hidden from the log. Stored as a list
	// because viper lowercases map keys and tags are case sensitive.
	HiddenTags []string `mapstructure:"hidden_tags"`
}

// DefaultDir is the netlogs directory under the user config directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}
	return filepath.Join(base, "netlogs"), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("language", "en")
	v.SetDefault("theme", "dark")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("hidden_tags", []string{})
	return v
}

// Default returns settings built from defaults and the environment only.
// Nothing is persisted.
func Default() *Settings {
	s := &Settings{v: newViper()}
	_ = s.v.Unmarshal(s)
	return s
}

// Load reads config.yaml from dir, creating the directory and a default file
// on first run.
func Load(dir string) (*Settings, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating config dir %s: %w", dir, err)
	}

	v := newViper()
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := v.SafeWriteConfig(); err != nil {
			return nil, fmt.Errorf("writing config file: %w", err)
		}
	}

	s := &Settings{v: v, Dir: dir}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	return s, nil
}

// Path is the config file location, empty for settings that are not persisted.
func (s *Settings) Path() string {
	if s.Dir == "" {
		return ""
	}
	return filepath.Join(s.Dir, fileName+"."+fileType)
}

// HiddenTagSet returns the hidden tags as a tag to tag mapping.
func (s *Settings) HiddenTagSet() map[string]string {
	set := make(map[string]string, len(s.HiddenTags))
	for _, tag := range s.HiddenTags {
		set[tag] = tag
	}
	return set
}

// IsHidden reports whether tag is hidden.
func (s *Settings) IsHidden(tag string) bool {
	return slices.Contains(s.HiddenTags, tag)
}

// HideTag hides tag and persists the change.
func (s *Settings) HideTag(tag string) error {
	if tag == "" || s.IsHidden(tag) {
		return nil
	}
	s.HiddenTags = append(s.HiddenTags, tag)
	return s.save("hidden_tags", s.HiddenTags)
}

// ShowTag unhides tag and persists the change.
func (s *Settings) ShowTag(tag string) error {
	if !s.IsHidden(tag) {
		return nil
	}
	s.HiddenTags = slices.DeleteFunc(s.HiddenTags, func(t string) bool { return t == tag })
	return s.save("hidden_tags", s.HiddenTags)
}

// SetLanguage changes the language and persists the change.
func (s *Settings) SetLanguage(lang string) error {
	s.Language = lang
	return s.save("language", lang)
}

func (s *Settings) save(key string, value any) error {
	s.v.Set(key, value)
	if s.Dir == "" {
		return nil
	}
	if err := s.v.WriteConfigAs(s.Path()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
