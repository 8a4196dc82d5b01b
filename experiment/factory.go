package experiment

import (
	"github.com/gorgonia/r2"
	"github.com/gorgonia/r2/estimator"
)

// Factory builds an unfitted classifier configured by p.
type Factory func(p estimator.Params) (estimator.Classifier, error)

// SVMLearner builds r2 learners stacking linear support vector classifiers.
func SVMLearner(p estimator.Params) (estimator.Classifier, error) {
	l, err := r2.NewSVMLearner(r2.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := l.SetParams(p); err != nil {
		return nil, err
	}
	return l, nil
}

// ELMLearner returns a Factory of r2 learners stacking extreme learning machines with h hidden units.
func ELMLearner(h int) Factory {
	return func(p estimator.Params) (estimator.Classifier, error) {
		l, err := r2.NewELMLearner(r2.DefaultELMConfig(), h)
		if err != nil {
			return nil, err
		}
		if err := l.SetParams(p); err != nil {
			return nil, err
		}
		return l, nil
	}
}
