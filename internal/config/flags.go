package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every flag name to form its environment variable.
const EnvPrefix = "JAKEBOX"

// Flags holds command-line overrides. Only flags that were set, on the
// command line or through the environment, replace file values.
type Flags struct {
	ConfigPath  string
	BaseURL     string
	JoinTimeout time.Duration
	LogFile     string
	LogLevel    string
	Style       string
}

// Register adds the client flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to a YAML config file (env: JAKEBOX_CONFIG)")
	fs.StringVarP(&f.BaseURL, "url", "u", DefaultBaseURL, "base URL of the lobby backend (env: JAKEBOX_URL)")
	fs.DurationVar(&f.JoinTimeout, "timeout", 0, "join request timeout, 0 for none (env: JAKEBOX_TIMEOUT)")
	fs.StringVar(&f.LogFile, "log-file", DefaultLogFile, "file to write diagnostic logs to (env: JAKEBOX_LOG_FILE)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "minimum log level: debug, info, warn, error (env: JAKEBOX_LOG_LEVEL)")
	fs.StringVar(&f.Style, "style", DefaultStyle, "banner style: auto, dark, light, notty, ascii, pink (env: JAKEBOX_STYLE)")
}

// BindEnv copies JAKEBOX_* environment variables onto flags that were not
// given on the command line. Call it after fs has been parsed. A value the
// flag cannot parse is an error naming the variable.
func BindEnv(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name))); err != nil {
			env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			errs = append(errs, fmt.Errorf("invalid %s: %w", env, err))
		}
	})
	return errors.Join(errs...)
}

// Resolve loads the config file named by the flags and applies every
// changed flag over it.
func Resolve(fs *pflag.FlagSet, f *Flags) (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("url") {
		cfg.Server.BaseURL = f.BaseURL
	}
	if fs.Changed("timeout") {
		cfg.Server.JoinTimeout = f.JoinTimeout
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.LogFile
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.LogLevel
	}
	if fs.Changed("style") {
		cfg.UI.Style = f.Style
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
