package elm

import (
	"math"
	"testing"

	"github.com/gorgonia/r2/activation"
	"github.com/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	if !DefaultConfig().IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
}

var invalidConfs = []struct {
	name   string
	modify func(*Config)
	ridge  bool
}{
	{"zero width", func(c *Config) { c.H = 0 }, false},
	{"tanh hidden layer", func(c *Config) { c.Activation = activation.Tanh }, false},
	{"zero C", func(c *Config) { c.C = 0 }, true},
	{"negative C", func(c *Config) { c.C = -3 }, true},
	{"NaN C", func(c *Config) { c.C = math.NaN() }, true},
	{"infinite C", func(c *Config) { c.C = math.Inf(1) }, true},
	{"C beyond machine precision", func(c *Config) { c.C = 1e17 }, true},
}

func TestConfigValidate(t *testing.T) {
	for _, c := range invalidConfs {
		conf := DefaultConfig()
		c.modify(&conf)
		err := conf.Validate()
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		if c.ridge != errors.Is(err, ErrDegenerateRidge) {
			t.Errorf("%s: ridge error mismatch: %v", c.name, err)
		}
	}
}
