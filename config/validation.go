package config

import (
	"net/url"
	"strings"

	"github.com/grovetools/plantview/errors"
)

// Validate checks the semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New(errors.ErrCodeConfigValidation, "server.base_url must be an absolute http(s) URL").
			WithDetail("base_url", c.Server.BaseURL)
	}

	for field, p := range map[string]string{
		"server.data_path":   c.Server.DataPath,
		"server.action_path": c.Server.ActionPath,
	} {
		if !strings.HasPrefix(p, "/") {
			return errors.New(errors.ErrCodeConfigValidation, field+" must start with '/'").
				WithDetail("value", p)
		}
	}

	if c.Server.Timeout < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "server.timeout must be positive").
			WithDetail("timeout", c.Server.Timeout.String())
	}
	if c.Poll.Interval <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "poll.interval must be positive").
			WithDetail("interval", c.Poll.Interval.String())
	}
	return nil
}

// DataURL returns the full URL of the module data endpoint.
func (c *Config) DataURL() string {
	return strings.TrimRight(c.Server.BaseURL, "/") + c.Server.DataPath
}

// ActionURL returns the full URL of the module action endpoint.
func (c *Config) ActionURL() string {
	return strings.TrimRight(c.Server.BaseURL, "/") + c.Server.ActionPath
}
