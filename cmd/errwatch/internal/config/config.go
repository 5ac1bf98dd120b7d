package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CurrentProfile string              `yaml:"current_profile"`
	Profiles       map[string]*Profile `yaml:"profiles"`
	path           string
}

type Profile struct {
	CollectorURL  string `yaml:"collector_url"`
	APIKey        string `yaml:"api_key"`
	AppIdentifier string `yaml:"app_identifier"`
}

func Default() *Config {
	return &Config{
		CurrentProfile: "default",
		Profiles:       make(map[string]*Profile),
	}
}

func Load(cfgFile string) (*Config, error) {
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfgFile = filepath.Join(home, ".errwatch", "config.yaml")
	}

	cfg := Default()
	cfg.path = cfgFile

	data, err := os.ReadFile(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	if cfg.CurrentProfile == "" {
		cfg.CurrentProfile = "default"
	}

	return cfg, nil
}

func (c *Config) Save() error {
	if c.path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(home, ".errwatch", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0o600)
}

// Profile returns the named profile, creating an empty one if missing.
// An empty name means the current profile.
func (c *Config) Profile(name string) *Profile {
	if name == "" {
		name = c.CurrentProfile
	}
	if p, ok := c.Profiles[name]; ok {
		return p
	}
	p := &Profile{}
	c.Profiles[name] = p
	return p
}

func (c *Config) Path() string {
	return c.path
}

// SetPath overrides where Save writes, mainly for tests.
func (c *Config) SetPath(path string) {
	c.path = path
}

func (c *Config) String() string {
	return fmt.Sprintf("config %s (profile %s, %d profiles)", c.path, c.CurrentProfile, len(c.Profiles))
}
