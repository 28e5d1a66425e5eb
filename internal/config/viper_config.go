package config

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Defaults for every key a fresh .tagengine/config.yaml may override.
const (
	DefaultDBFile        = "tagengine.db"
	DefaultPolicyDir     = "policies"
	DefaultHostNamespace = "default"
	envPrefix            = "TAGENGINE"
)

// Runtime wraps a viper instance scoped to one .tagengine directory,
// with defaults registered and the config file loaded and watched.
type Runtime struct {
	v   *viper.Viper
	dir string
}

// Load initializes a Runtime rooted at dir (typically "./.tagengine").
// A missing config.yaml is not an error — defaults apply. When watch is
// true, the file is watched for live edits with fsnotify via
// viper.WatchConfig, and onChange (if non-nil) is invoked after each
// reload.
func Load(dir string, watch bool, onChange func(*viper.Viper)) (*Runtime, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("db-path", filepath.Join(dir, DefaultDBFile))
	v.SetDefault("policy-dir", filepath.Join(dir, DefaultPolicyDir))
	v.SetDefault("no-watch", false)
	v.SetDefault("default-host-namespace", DefaultHostNamespace)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	rt := &Runtime{v: v, dir: dir}

	if watch && !v.GetBool("no-watch") {
		v.OnConfigChange(func(e fsnotify.Event) {
			if onChange != nil {
				onChange(v)
			}
		})
		v.WatchConfig()
	}

	return rt, nil
}

// DBPath returns the effective SQLite database path.
func (r *Runtime) DBPath() string { return r.v.GetString("db-path") }

// PolicyDir returns the configured directory for *.toml exclusion-group
// policy files.
func (r *Runtime) PolicyDir() string { return r.v.GetString("policy-dir") }

// DefaultHostNamespace returns the host kind used when a collaborator
// doesn't supply one explicitly.
func (r *Runtime) DefaultHostNamespace() string { return r.v.GetString("default-host-namespace") }

// Viper exposes the underlying *viper.Viper for callers (e.g. cmd/tagctl
// flag binding) that need direct access.
func (r *Runtime) Viper() *viper.Viper { return r.v }
