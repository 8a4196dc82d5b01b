package elm

import (
	"math"

	"github.com/gorgonia/r2/activation"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
)

// Config configures an extreme learning machine.
type Config struct {
	H          int             // hidden layer width
	Activation activation.Func // hidden layer activation: linear, sigmoid or rbf
	C          float64         // ridge strength; larger C regularizes less
	Seed       int64           // estimator.NoSeed draws one at construction
}

func DefaultConfig() Config {
	return Config{
		H:          60,
		Activation: activation.Linear,
		C:          100,
		Seed:       estimator.NoSeed,
	}
}

func (conf Config) IsValid() bool { return conf.Validate() == nil }

// Validate returns a description of the first invalid field.
func (conf Config) Validate() error {
	switch {
	case conf.H < 1:
		return errors.Errorf("hidden width must be at least 1, got %d", conf.H)
	case !conf.Activation.OneOf(activation.Linear, activation.Sigmoid, activation.RBF):
		return errors.Wrapf(activation.ErrUnknown, "%v is not an ELM activation", conf.Activation)
	}
	return checkRidge(conf.C)
}

// checkRidge makes sure 1/C is a usable ridge term: finite, and strictly positive at machine precision.
func checkRidge(C float64) error {
	if math.IsNaN(C) || C <= 0 {
		return errors.Wrapf(ErrDegenerateRidge, "C = %v", C)
	}
	if ridge := 1 / C; ridge <= machEps {
		return errors.Wrapf(ErrDegenerateRidge, "C = %v gives a ridge term of %v", C, ridge)
	}
	return nil
}

const machEps = 2.220446049250313e-16
