package config

import (
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// Config is the plantview configuration, usually read from plantview.yml.
type Config struct {
	// Version of the configuration format.
	Version string `yaml:"version,omitempty" jsonschema:"description=Configuration version (e.g. '1.0')"`

	// Server configures how the dashboard reaches the plant server.
	Server ServerConfig `yaml:"server" jsonschema:"description=Plant server connection settings"`

	// Poll configures the status refresher.
	Poll PollConfig `yaml:"poll" jsonschema:"description=Status polling settings"`

	// TUI configures the interactive dashboard.
	TUI TUIConfig `yaml:"tui" jsonschema:"description=Interactive dashboard settings"`

	// Extensions captures all other top-level keys (e.g. "logging").
	// Decode them with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" jsonschema:"-"`

	raw     map[string]interface{}
	sources []string
}

// ServerConfig holds the plant server endpoints.
type ServerConfig struct {
	BaseURL    string   `yaml:"base_url" jsonschema:"description=Base URL of the plant server,format=uri"`
	Timeout    Duration `yaml:"timeout" jsonschema:"description=Per-request timeout (e.g. '10s')"`
	DataPath   string   `yaml:"data_path" jsonschema:"description=Path of the module data endpoint,pattern=^/"`
	ActionPath string   `yaml:"action_path" jsonschema:"description=Path of the module action endpoint,pattern=^/"`
}

// PollConfig configures the refresher loop.
type PollConfig struct {
	Interval Duration `yaml:"interval" jsonschema:"description=Time between status refreshes (e.g. '5s')"`
}

// TUIConfig configures the interactive dashboard.
type TUIConfig struct {
	Theme string `yaml:"theme" jsonschema:"description=Color theme,enum=kanagawa,enum=gruvbox,enum=terminal"`
	Icons string `yaml:"icons,omitempty" jsonschema:"description=Icon set,enum=nerd,enum=ascii"`
	Mouse *bool  `yaml:"mouse,omitempty" jsonschema:"description=Enable mouse hover and right-click menus (default true)"`

	// Keybindings remaps dashboard keys, e.g. {"refresh": ["R", "f5"]}.
	Keybindings KeybindingConfig `yaml:"keybindings,omitempty" jsonschema:"description=Key overrides by action name"`
}

// KeybindingConfig maps a snake_case action name to its keys.
type KeybindingConfig map[string][]string

// MouseEnabled reports whether mouse support is on.
func (t TUIConfig) MouseEnabled() bool {
	return t.Mouse == nil || *t.Mouse
}

// Default values.
const (
	DefaultBaseURL      = "http://localhost:5000"
	DefaultDataPath     = "/api/plant_data"
	DefaultActionPath   = "/module_action"
	DefaultTheme        = "kanagawa"
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 5 * time.Second
)

// SetDefaults fills in unset fields.
func (c *Config) SetDefaults() {
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = DefaultBaseURL
	}
	if c.Server.DataPath == "" {
		c.Server.DataPath = DefaultDataPath
	}
	if c.Server.ActionPath == "" {
		c.Server.ActionPath = DefaultActionPath
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = Duration(DefaultTimeout)
	}
	if c.Poll.Interval == 0 {
		c.Poll.Interval = Duration(DefaultPollInterval)
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
}

// Sources returns the files this configuration was merged from, lowest
// precedence first.
func (c *Config) Sources() []string {
	return c.sources
}

// Raw returns the merged, env-expanded document before decoding. It is what
// schema validation runs against.
func (c *Config) Raw() map[string]interface{} {
	if c.raw == nil {
		return map[string]interface{}{}
	}
	return c.raw
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// D returns the value as a time.Duration.
func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalYAML renders the duration as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// MarshalJSON renders the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// JSONSchema describes durations as strings.
func (Duration) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:    "string",
		Pattern: `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
	}
}
