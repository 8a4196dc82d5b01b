// Package experiment evaluates learners on datasets: k-fold experiments, parameter grid searches and parallel
// sweeps. Every experiment produces a Record.
package experiment

import (
	"math"
	"sort"
	"strings"

	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
)

var ErrMissingKey = errors.New("missing configuration key")

// Config is the configuration of an experiment, keyed by name.
type Config map[string]interface{}

var (
	foldKeys = []string{"experiment_type", "n_folds", "fold_seed", "params", "store_clf", "fit_c"}
	gridKeys = []string{"experiment_type", "param_grid", "scoring", "fit_c", "cv", "refit", "store_clf"}
)

// Require returns ErrMissingKey naming every key of keys that c lacks.
func (c Config) Require(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := c[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.Wrapf(ErrMissingKey, "%s", strings.Join(missing, ", "))
}

// Clone returns a shallow copy of c.
func (c Config) Clone() Config {
	retVal := make(Config, len(c))
	for k, v := range c {
		retVal[k] = v
	}
	return retVal
}

// Update copies every entry of o into c.
func (c Config) Update(o Config) Config {
	for k, v := range o {
		c[k] = v
	}
	return c
}

func (c Config) expectType(want string) error {
	got, err := estimator.Params(c).String("experiment_type")
	if err != nil {
		return err
	}
	if got != want {
		return errors.Errorf("experiment_type is %q, expected %q", got, want)
	}
	return nil
}

func (c Config) params(key string) (estimator.Params, error) {
	switch p := c[key].(type) {
	case estimator.Params:
		return p.Clone(), nil
	case map[string]interface{}:
		return estimator.Params(p).Clone(), nil
	case nil:
		return estimator.Params{}, nil
	}
	return nil, errors.Wrapf(estimator.ErrParamType, "%q: want a parameter map, got %T", key, c[key])
}

func intKey(c Config, key string) (int, error)   { return estimator.Params(c).Int(key) }
func boolKey(c Config, key string) (bool, error) { return estimator.Params(c).Bool(key) }

// seed reads an optional seed. nil means draw one.
func (c Config) seed(key string) (int64, error) {
	if c[key] == nil {
		return estimator.ResolveSeed(estimator.NoSeed), nil
	}
	s, err := estimator.Params(c).Int64(key)
	if err != nil {
		return 0, err
	}
	return estimator.ResolveSeed(s), nil
}

// fitC translates the fit_c entry into the learner parameter: false or nil disable the search, true and "random"
// enable it, a number fixes C.
func (c Config) fitC() interface{} {
	switch v := c["fit_c"].(type) {
	case nil:
		return nil
	case bool:
		if v {
			return "random"
		}
		return nil
	default:
		return v
	}
}

// WithFitC returns a copy of p carrying the search mode named by the fit_c entry of c.
func (c Config) WithFitC(p estimator.Params) estimator.Params {
	retVal := p.Clone()
	retVal["fit_c"] = c.fitC()
	return retVal
}

// DefaultGrid is the parameter grid searched when none is given.
func DefaultGrid() map[string][]interface{} {
	var cs, betas []interface{}
	for i := -2; i < 6; i++ {
		cs = append(cs, math.Pow10(i))
	}
	for i := 0; i <= 10; i++ {
		betas = append(betas, 0.02*float64(i))
	}
	return map[string][]interface{}{
		"C":         cs,
		"beta":      betas,
		"depth":     {5},
		"scale":     {true},
		"recurrent": {true},
		"use_prev":  {true},
		"seed":      {nil},
	}
}
