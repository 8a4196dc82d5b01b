package r2

import (
	"github.com/gorgonia/r2/activation"
	"github.com/gorgonia/r2/elm"
	"github.com/gorgonia/r2/linear"
)

// DefaultELMConfig is DefaultConfig with the regularization strength an ELM base learner expects.
func DefaultELMConfig() Config {
	conf := DefaultConfig()
	conf.C = 100
	return conf
}

// NewELMLearner stacks extreme learning machines with h linear hidden units. ELMs handle any number of classes
// themselves.
func NewELMLearner(conf Config, h int) (*Learner, error) {
	base, err := elm.New(elm.Config{
		H:          h,
		Activation: activation.Linear,
		C:          conf.C,
		Seed:       conf.Seed,
	})
	if err != nil {
		return nil, err
	}
	conf.IsBaseMulticlass = true
	return New(conf, base)
}

// NewSVMLearner stacks linear support vector classifiers with balanced class weights. They are wrapped one-vs-rest
// when there are more than two classes.
func NewSVMLearner(conf Config) (*Learner, error) {
	lc := linear.DefaultConfig()
	lc.C = conf.C
	lc.ClassWeight = linear.Balanced
	lc.Seed = conf.Seed
	base, err := linear.New(lc)
	if err != nil {
		return nil, err
	}
	conf.IsBaseMulticlass = false
	return New(conf, base)
}
