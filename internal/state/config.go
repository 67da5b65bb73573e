// Package state holds application configuration.
package state

import (
	"io/ioutil"
	"os"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"

	"github.com/countkeeper/tally/log2"
)

type Config struct {
	Input struct {
		DevInputEvent struct {
			Enable bool   `hcl:"enable"`
			Device string `hcl:"device"`
		} `hcl:"dev_input_event"`
	} `hcl:"input"`

	UI struct {
		Title  string `hcl:"title"`
		TickMs int    `hcl:"tick_ms"`
	} `hcl:"ui"`

	Log struct {
		Debug bool `hcl:"debug"`
	} `hcl:"log"`
}

func (c *Config) setDefaults() {
	if c.UI.Title == "" {
		c.UI.Title = "tally"
	}
	if c.UI.TickMs <= 0 {
		c.UI.TickMs = 250
	}
}

// ReadConfig parses an hcl config file. A missing file is not an error:
// the application runs fine on defaults.
func ReadConfig(log *log2.Log, path string) (*Config, error) {
	c := &Config{}
	bs, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Debugf("config path=%s not found, using defaults", path)
	case err != nil:
		return nil, errors.Annotatef(err, "config read path=%s", path)
	default:
		if err = hcl.Unmarshal(bs, c); err != nil {
			return nil, errors.Annotatef(err, "config unmarshal path=%s", path)
		}
	}
	c.setDefaults()
	return c, nil
}

func MustReadConfig(log *log2.Log, path string) *Config {
	c, err := ReadConfig(log, path)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
