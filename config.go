package r2

import (
	"fmt"
	"math"

	"github.com/gorgonia/r2/activation"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
)

// SearchMode says how a layer picks the regularization strength of its classifier before fitting.
type SearchMode int

const (
	NoSearch     SearchMode = iota // use the classifier's own C
	RandomSearch                   // randomized cross validated search
	FixedC                         // force Config.FitCValue on every layer
)

func (m SearchMode) String() string {
	switch m {
	case NoSearch:
		return "none"
	case RandomSearch:
		return "random"
	case FixedC:
		return "fixed"
	}
	return fmt.Sprintf("SearchMode(%d)", int(m))
}

// Config is the configuration of a Learner.
type Config struct {
	Depth      int             // number of stacked layers
	Activation activation.Func // inter-layer activation: tanh, sigmoid or rbf
	Recurrent  bool            // accumulate the feedback signal across layers instead of replacing it
	Beta       float64         // blend coefficient of the feedback signal
	Scale      bool            // rescale the input of every layer
	UsePrev    bool            // perturb the previous layer's input instead of the first layer's
	Seed       int64           // estimator.NoSeed draws one at fit time

	C         float64    // regularization strength handed to the base classifier
	FitC      SearchMode
	FitCValue float64    // used when FitC is FixedC

	// FixPrediction replaces every layer's decision scores by FixedPrediction.
	FixPrediction   bool
	FixedPrediction float64

	// IsBaseMulticlass tells the learner that the base classifier handles more than two classes itself.
	// Otherwise each layer is wrapped in a one-vs-rest ensemble when there are more than two classes.
	IsBaseMulticlass bool
}

func DefaultConfig() Config {
	return Config{
		Depth:      7,
		Activation: activation.Sigmoid,
		Recurrent:  true,
		Beta:       0.1,
		Seed:       estimator.NoSeed,
		C:          1,
	}
}

func (conf Config) IsValid() bool { return conf.Validate() == nil }

func (conf Config) Validate() error {
	switch {
	case conf.Depth < 1:
		return errors.Errorf("depth must be at least 1, got %d", conf.Depth)
	case !conf.Activation.OneOf(activation.Tanh, activation.Sigmoid, activation.RBF):
		return errors.Wrapf(ErrInvalidActivation, "%v", conf.Activation)
	case math.IsNaN(conf.Beta) || math.IsInf(conf.Beta, 0):
		return errors.Errorf("beta must be finite, got %v", conf.Beta)
	case !(conf.C > 0) || math.IsInf(conf.C, 1):
		return errors.Errorf("C must be positive and finite, got %v", conf.C)
	case conf.FitC < NoSearch || conf.FitC > FixedC:
		return errors.Errorf("invalid search mode %v", conf.FitC)
	case conf.FitC == FixedC && (!(conf.FitCValue > 0) || math.IsInf(conf.FitCValue, 1)):
		return errors.Errorf("fixed C must be positive and finite, got %v", conf.FitCValue)
	}
	return nil
}

// params lists the configuration by the names accepted by SetParams.
func (conf Config) params() estimator.Params {
	var fitC, fixed interface{}
	switch conf.FitC {
	case RandomSearch:
		fitC = "random"
	case FixedC:
		fitC = conf.FitCValue
	}
	if conf.FixPrediction {
		fixed = conf.FixedPrediction
	}
	return estimator.Params{
		"depth":              conf.Depth,
		"activation":         conf.Activation.String(),
		"recurrent":          conf.Recurrent,
		"beta":               conf.Beta,
		"scale":              conf.Scale,
		"use_prev":           conf.UsePrev,
		"seed":               conf.Seed,
		"C":                  conf.C,
		"fit_c":              fitC,
		"fixed_prediction":   fixed,
		"is_base_multiclass": conf.IsBaseMulticlass,
	}
}

// set updates a single field by its parameter name.
func (conf *Config) set(p estimator.Params, k string) (err error) {
	switch k {
	case "depth":
		conf.Depth, err = p.Int(k)
	case "activation":
		if f, ok := p[k].(activation.Func); ok {
			conf.Activation = f
			return nil
		}
		var name string
		if name, err = p.String(k); err != nil {
			return err
		}
		if conf.Activation, err = activation.Parse(name); err != nil {
			return errors.Wrapf(ErrInvalidActivation, "%q", name)
		}
	case "recurrent":
		conf.Recurrent, err = p.Bool(k)
	case "beta":
		conf.Beta, err = p.Float(k)
	case "scale":
		conf.Scale, err = p.Bool(k)
	case "use_prev":
		conf.UsePrev, err = p.Bool(k)
	case "seed":
		if p[k] == nil {
			conf.Seed = estimator.NoSeed
			return nil
		}
		conf.Seed, err = p.Int64(k)
	case "C":
		conf.C, err = p.Float(k)
	case "fit_c":
		return conf.setFitC(p[k])
	case "fixed_prediction":
		switch v := p[k].(type) {
		case nil:
			conf.FixPrediction = false
		case bool:
			if v {
				return errors.Wrapf(estimator.ErrParamType, "fixed_prediction must be a number or unset")
			}
			conf.FixPrediction = false
		default:
			conf.FixPrediction = true
			conf.FixedPrediction, err = p.Float(k)
		}
	case "is_base_multiclass":
		conf.IsBaseMulticlass, err = p.Bool(k)
	default:
		err = estimator.UnknownParam("r2", k)
	}
	return err
}

// setFitC accepts nil (no search), "random" or a regularization strength.
func (conf *Config) setFitC(v interface{}) error {
	switch x := v.(type) {
	case nil:
		conf.FitC = NoSearch
	case SearchMode:
		conf.FitC = x
	case string:
		switch x {
		case "", "none":
			conf.FitC = NoSearch
		case "random":
			conf.FitC = RandomSearch
		default:
			return errors.Wrapf(estimator.ErrParamType, "fit_c: unknown mode %q", x)
		}
	default:
		c, err := estimator.Params{"fit_c": v}.Float("fit_c")
		if err != nil {
			return err
		}
		conf.FitC, conf.FitCValue = FixedC, c
	}
	return nil
}
