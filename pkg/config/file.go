package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/charlie0129/battcheck/pkg/check"
	"github.com/charlie0129/battcheck/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Interval: ptr.To(uint64(5000)),
		Verbose:  ptr.To(false),
		LogLevel: ptr.To("warn"),
		NoColor:  ptr.To(false),
	}

	// Environment variables override values from the file.
	envBindings = map[string]string{
		"interval": "BATTCHECK_INTERVAL",
		"verbose":  "BATTCHECK_VERBOSE",
		"logLevel": "BATTCHECK_LOG_LEVEL",
		"id":       "BATTCHECK_ID",
		"noColor":  "BATTCHECK_NO_COLOR",
	}

	configExtensions = []string{".json", ".yaml", ".yml", ".toml"}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads the config at configPath. A missing file is not an error.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// RawFileConfig is the on-disk form. Interval is in milliseconds.
type RawFileConfig struct {
	Interval *uint64 `json:"interval,omitempty" mapstructure:"interval"`
	Verbose  *bool   `json:"verbose,omitempty" mapstructure:"verbose"`
	LogLevel *string `json:"logLevel,omitempty" mapstructure:"logLevel"`
	ID       *int    `json:"id,omitempty" mapstructure:"id"`
	NoColor  *bool   `json:"noColor,omitempty" mapstructure:"noColor"`
}

// DefaultPath returns the first config file found in the user config
// directory, or an empty string if there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	for _, ext := range configExtensions {
		p := filepath.Join(dir, "battcheck", "config"+ext)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func (f *File) Interval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	var interval uint64

	if f.c.Interval != nil {
		interval = *f.c.Interval
	} else {
		interval = *defaultFileConfig.Interval
	}

	return time.Duration(interval) * time.Millisecond
}

func (f *File) Verbose() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Verbose != nil {
		return *f.c.Verbose
	}
	return *defaultFileConfig.Verbose
}

func (f *File) LogLevel() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.LogLevel != nil {
		return *f.c.LogLevel
	}
	return *defaultFileConfig.LogLevel
}

func (f *File) BatteryID() (int, bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.ID != nil {
		return *f.c.ID, true
	}
	return 0, false
}

func (f *File) NoColor() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.NoColor != nil {
		return *f.c.NoColor
	}
	return *defaultFileConfig.NoColor
}

// Load reads the file (if any) and applies environment overrides. The file
// format follows its extension.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return pkgerrors.Wrapf(err, "failed to bind env %s", env)
		}
	}

	if f.filepath != "" {
		_, err := os.Stat(f.filepath)
		switch {
		case err == nil:
			v.SetConfigFile(f.filepath)
			if err := v.ReadInConfig(); err != nil {
				return pkgerrors.Wrapf(err, "failed to read config file %s", f.filepath)
			}
		case os.IsNotExist(err):
			// If the file does not exist, only the environment applies.
			logrus.WithField("path", f.filepath).Debug("config file not found, using defaults")
		default:
			return pkgerrors.Wrapf(err, "failed to stat config file %s", f.filepath)
		}
	}

	conf := RawFileConfig{}
	if err := v.Unmarshal(&conf); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from %s", f.filepath)
	}

	if conf.ID != nil && *conf.ID < 0 {
		return pkgerrors.Errorf("battery id must not be negative, got %d", *conf.ID)
	}
	if conf.Interval != nil && *conf.Interval > check.MaxIntervalMillis {
		return pkgerrors.Errorf("interval must be at most %d ms, got %d", check.MaxIntervalMillis, *conf.Interval)
	}

	f.c = &conf

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	fields := logrus.Fields{
		"path":     f.filepath,
		"interval": f.Interval().String(),
		"verbose":  f.Verbose(),
		"logLevel": f.LogLevel(),
		"noColor":  f.NoColor(),
	}
	if id, ok := f.BatteryID(); ok {
		fields["id"] = id
	}
	return fields
}
