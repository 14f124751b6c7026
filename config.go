package bungie

import (
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// Production hosts of the Bungie.net Platform.
const (
	DefaultBaseURL = "https://www.bungie.net/Platform"
	DefaultRootURL = "https://www.bungie.net"

	DefaultTimeout = 10 * time.Second
)

// Config holds everything a Client needs to reach the platform. The library
// never reads the environment itself; see package config for loaders.
type Config struct {
	// BaseURL is prepended to every endpoint path.
	BaseURL string `yaml:"base_url" envconfig:"BUNGIE_BASE_URL"`
	// RootURL is prepended to content paths found in the manifest.
	RootURL string `yaml:"root_url" envconfig:"BUNGIE_ROOT_URL"`

	APIKey      string `yaml:"api_key" envconfig:"BUNGIE_API_KEY"`
	AccessToken string `yaml:"access_token" envconfig:"BUNGIE_ACCESS_TOKEN"`
	ClientID    string `yaml:"client_id" envconfig:"BUNGIE_CLIENT_ID"`

	AppName    string `yaml:"app_name" envconfig:"BUNGIE_APP_NAME"`
	AppVersion string `yaml:"app_version" envconfig:"BUNGIE_APP_VERSION"`
	Contact    string `yaml:"contact" envconfig:"BUNGIE_CONTACT"`

	Timeout time.Duration `yaml:"timeout" envconfig:"BUNGIE_TIMEOUT"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		RootURL:    DefaultRootURL,
		AppName:    "bungie-go",
		AppVersion: "dev",
		Timeout:    DefaultTimeout,
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("an api key is required, get one at https://www.bungie.net/en/Application")
	}
	for name, raw := range map[string]string{"base url": c.BaseURL, "root url": c.RootURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return errors.Wrapf(err, "invalid %s", name)
		}
		if u.Scheme == "" || u.Host == "" {
			return errors.Errorf("invalid %s %q: scheme and host are required", name, raw)
		}
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.AppVersion != "dev" && !semver.IsValid(c.AppVersion) {
		return errors.Errorf("app version %q is neither \"dev\" nor a semantic version like v1.2.3", c.AppVersion)
	}
	return nil
}

// UserAgent follows the format Bungie asks applications to send.
func (c Config) UserAgent() string {
	ua := c.AppName + "/" + c.AppVersion
	if c.ClientID != "" {
		ua += " AppId/" + c.ClientID
	}
	if c.Contact != "" {
		ua += " (+" + c.Contact + ")"
	}
	return ua
}
