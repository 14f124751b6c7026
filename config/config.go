// Package config loads a bungie.Config from a yaml file and the environment.
package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/lieuweberg/bungie-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load starts from bungie.DefaultConfig, applies fileName when it is not
// empty, then BUNGIE_* environment variables, and validates the result.
func Load(fileName string) (bungie.Config, error) {
	cfg := bungie.DefaultConfig()
	if fileName != "" {
		if err := ParseConfigFile(&cfg, fileName); err != nil {
			return cfg, err
		}
	}
	if err := ReadEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func ParseConfigFile(cfg interface{}, fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return errors.Wrap(err, "error opening config file")
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if err != nil {
		return errors.Wrap(err, "error parsing config file")
	}
	return nil
}

func ReadEnv(cfg interface{}) error {
	err := envconfig.Process("", cfg)
	if err != nil {
		return errors.Wrap(err, "error reading env config")
	}
	return nil
}
