// Package elm implements an extreme learning machine: a single hidden layer network whose input weights are drawn
// at random and frozen, and whose output weights are the closed form ridge regression solution
//
//	β = (HᵀH + I/C)⁻¹ HᵀT
//
// where H is the hidden representation of the training features and T the binarized labels.
package elm

import (
	"math/rand"

	"github.com/gorgonia/r2/activation"
	"github.com/gorgonia/r2/estimator"
	"github.com/gorgonia/r2/preprocess"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrSingular        = errors.New("ridge system is singular")
	ErrDegenerateRidge = errors.New("regularization strength does not give a positive ridge term")
)

// ELM is an extreme learning machine classifier.
type ELM struct {
	Config
	r *rand.Rand

	// fitted state
	features int
	w        *mat.Dense // features × H
	b        []float64  // H
	beta     *mat.Dense // H × targets
	lb       preprocess.LabelBinarizer
	fitted   bool
}

// New returns a new, unfitted *ELM. An unset seed is drawn here and recorded in the configuration.
func New(conf Config) (*ELM, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	conf.Seed = estimator.ResolveSeed(conf.Seed)
	return &ELM{
		Config: conf,
		r:      rand.New(rand.NewSource(conf.Seed)),
	}, nil
}

// Must panics if err is not nil.
func Must(e *ELM, err error) *ELM {
	if err != nil {
		panic(err)
	}
	return e
}

// Fit draws a fresh hidden layer and solves for the output weights.
func (e *ELM) Fit(X mat.Matrix, y []int) error {
	if err := estimator.CheckXy(X, y); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	var lb preprocess.LabelBinarizer
	if err := lb.Fit(y); err != nil {
		return err
	}
	T, err := lb.Transform(y)
	if err != nil {
		return err
	}

	_, f := X.Dims()
	e.features = f
	e.w = mat.NewDense(f, e.H, e.normals(f*e.H))
	e.b = e.normals(e.H)

	H, err := e.hidden(X)
	if err != nil {
		return errors.WithMessage(err, "hidden layer")
	}
	beta, err := ridge(H, T, 1/e.C)
	if err != nil {
		return err
	}
	e.beta = beta
	e.lb = lb
	e.fitted = true
	return nil
}

// DecisionFunction returns H·β, one column per binarized target.
func (e *ELM) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if !e.fitted {
		return nil, errors.Wrap(estimator.ErrNotFitted, "elm")
	}
	H, err := e.hidden(X)
	if err != nil {
		return nil, err
	}
	var retVal mat.Dense
	retVal.Mul(H, e.beta)
	return &retVal, nil
}

func (e *ELM) Predict(X mat.Matrix) ([]int, error) {
	scores, err := e.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	return e.lb.InverseTransform(scores)
}

func (e *ELM) Classes() []int { return e.lb.Classes() }

// Family implements estimator.Familier.
func (e *ELM) Family() estimator.Family { return estimator.Ridge }

func (e *ELM) GetParams() estimator.Params {
	return estimator.Params{
		"h":          e.H,
		"activation": e.Activation.String(),
		"C":          e.C,
		"seed":       e.Seed,
	}
}

// SetParams updates the configuration. Nothing changes if any parameter is unknown or invalid.
func (e *ELM) SetParams(p estimator.Params) error {
	conf := e.Config
	_, reseed := p["seed"]
	for _, k := range p.Keys() {
		var err error
		switch k {
		case "h":
			conf.H, err = p.Int(k)
		case "activation":
			if f, ok := p[k].(activation.Func); ok {
				conf.Activation = f
				break
			}
			var name string
			if name, err = p.String(k); err == nil {
				conf.Activation, err = activation.Parse(name)
			}
		case "C":
			conf.C, err = p.Float(k)
		case "seed":
			conf.Seed, err = p.Int64(k)
		default:
			err = estimator.UnknownParam("elm", k)
		}
		if err != nil {
			return err
		}
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if reseed {
		conf.Seed = estimator.ResolveSeed(conf.Seed)
		e.r = rand.New(rand.NewSource(conf.Seed))
	}
	e.Config = conf
	return nil
}

func (e *ELM) Clone() estimator.Classifier {
	return &ELM{
		Config: e.Config,
		r:      rand.New(rand.NewSource(e.Seed)),
	}
}

func (e *ELM) normals(n int) []float64 {
	retVal := make([]float64, n)
	for i := range retVal {
		retVal[i] = e.r.NormFloat64()
	}
	return retVal
}

// ridge solves (HᵀH + λI) β = HᵀT.
func ridge(H, T *mat.Dense, lambda float64) (*mat.Dense, error) {
	_, h := H.Dims()
	A := mat.NewSymDense(h, nil)
	A.SymOuterK(1, H.T())
	for i := 0; i < h; i++ {
		A.SetSym(i, i, A.At(i, i)+lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return nil, errors.Wrapf(ErrSingular, "λ = %v", lambda)
	}
	var HtT, beta mat.Dense
	HtT.Mul(H.T(), T)
	if err := chol.SolveTo(&beta, &HtT); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, errors.WithStack(err)
		}
	}
	return &beta, nil
}
