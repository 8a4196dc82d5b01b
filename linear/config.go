package linear

import (
	"fmt"
	"math"
	"strings"

	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
)

// Weighting selects how misclassification costs are weighted per class.
type Weighting int

const (
	Uniform  Weighting = iota // every sample costs C
	Balanced                  // class k costs C · n / (2 · count(k))
)

func (w Weighting) String() string {
	switch w {
	case Uniform:
		return "none"
	case Balanced:
		return "balanced"
	}
	return fmt.Sprintf("Weighting(%d)", int(w))
}

// ParseWeighting accepts "none" and "balanced". "auto" is the older name of "balanced".
func ParseWeighting(s string) (Weighting, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return Uniform, nil
	case "balanced", "auto":
		return Balanced, nil
	}
	return 0, errors.Errorf("unknown class weighting %q", s)
}

// Config configures a linear support vector classifier.
type Config struct {
	C           float64
	ClassWeight Weighting
	MaxIter     int     // maximum passes over the data
	Tol         float64 // stop once the projected gradient spread falls below this
	Seed        int64   // orders the coordinate passes
}

func DefaultConfig() Config {
	return Config{
		C:           1,
		ClassWeight: Balanced,
		MaxIter:     1000,
		Tol:         1e-4,
		Seed:        estimator.NoSeed,
	}
}

func (conf Config) IsValid() bool { return conf.Validate() == nil }

func (conf Config) Validate() error {
	switch {
	case math.IsNaN(conf.C) || math.IsInf(conf.C, 0) || conf.C <= 0:
		return errors.Errorf("C must be positive and finite, got %v", conf.C)
	case conf.ClassWeight != Uniform && conf.ClassWeight != Balanced:
		return errors.Errorf("invalid class weighting %v", conf.ClassWeight)
	case conf.MaxIter < 1:
		return errors.Errorf("MaxIter must be at least 1, got %d", conf.MaxIter)
	case !(conf.Tol > 0):
		return errors.Errorf("Tol must be positive, got %v", conf.Tol)
	}
	return nil
}
