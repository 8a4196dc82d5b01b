// Package r2 implements a recurrent layered meta-classifier.
//
// A Learner stacks Depth independently trained copies of a base classifier. The decision scores of every layer
// are projected back into the input space by a random K×F matrix, blended into the input with a coefficient β,
// passed through an activation function and fed to the next layer. In recurrent mode the projected feedback
// accumulates over the layers.
package r2

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/gorgonia/r2/preprocess"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidActivation = errors.New("invalid inter-layer activation")
	ErrDegenerateSearch  = errors.New("no regularization candidate scored above zero")
	ErrClassCount        = errors.New("class count mismatch")
)

// layer is the state of one depth level, created at fit time.
type layer struct {
	cls    estimator.Classifier
	scaler preprocess.Scaler // scales the input of this layer; nil unless Scale is set
	w      *mat.Dense        // K×F projection; nil for the terminal layer
	c      float64           // searched regularization strength, 0 if no search ran
}

// Learner is the recurrent layered classifier.
type Learner struct {
	Config
	base estimator.Classifier

	// fitted state
	classes  []int
	features int
	repr     dataset.Representation
	layers   []layer
	rng      *rand.Rand
	fitted   bool

	// io
	buf    bytes.Buffer
	logger *log.Logger
	lj     lumberjack
}

// New creates a Learner stacking clones of base. The regularization strength of the configuration is handed to
// base.
func New(conf Config, base estimator.Classifier) (*Learner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if base == nil {
		return nil, errors.New("a base classifier is required")
	}
	base = base.Clone()
	if err := base.SetParams(estimator.Params{"C": conf.C}); err != nil && !errors.Is(err, estimator.ErrUnknownParam) {
		return nil, errors.WithMessage(err, "base classifier")
	}
	retVal := &Learner{
		Config: conf,
		base:   base,
		lj:     makeLumberJack(),
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal, nil
}

// Must panics if err is not nil.
func Must(l *Learner, err error) *Learner {
	if err != nil {
		panic(fmt.Sprintf("%+v", err))
	}
	return l
}

// Fit trains every layer on X and y.
func (l *Learner) Fit(X mat.Matrix, y []int) error { return l.fit(X, y, l.FitC, l.FitCValue, nil) }

// FitWithC trains with a search mode that overrides the configured one for this call only.
func (l *Learner) FitWithC(X mat.Matrix, y []int, mode SearchMode, c float64) error {
	if mode == FixedC && !(c > 0) {
		return errors.Errorf("fixed C must be positive, got %v", c)
	}
	return l.fit(X, y, mode, c, nil)
}

// FitWithProjections trains with the given projection matrices instead of drawing them. There must be exactly
// Depth-1 of them, each K×F.
func (l *Learner) FitWithProjections(X mat.Matrix, y []int, W []*mat.Dense) error {
	if W == nil {
		W = []*mat.Dense{}
	}
	return l.fit(X, y, l.FitC, l.FitCValue, W)
}

func (l *Learner) fit(X mat.Matrix, y []int, mode SearchMode, fixedC float64, W []*mat.Dense) error {
	if err := estimator.CheckXy(X, y); err != nil {
		return err
	}
	repr, err := dataset.Kind(X)
	if err != nil {
		return err
	}
	classes := estimator.Unique(y)
	k := len(classes)
	if k < 2 {
		return errors.Wrapf(ErrClassCount, "need at least 2 classes, got %d", k)
	}
	_, f := X.Dims()

	l.Seed = estimator.ResolveSeed(l.Seed)
	l.rng = rand.New(rand.NewSource(l.Seed))
	l.fitted = false
	l.lj.Reset()
	l.logger.Printf("Fitting %d layers on %d×%d %v input, %d classes. Seed %d", l.Depth, len(y), f, repr, k, l.Seed)

	layers := make([]layer, l.Depth)
	seeds := make([]int64, l.Depth)
	for i := range seeds {
		seeds[i] = l.rng.Int63n(math.MaxInt32)
	}
	for i := range layers {
		cls := l.base.Clone()
		if err := cls.SetParams(estimator.Params{"seed": seeds[i]}); err != nil && !errors.Is(err, estimator.ErrUnknownParam) {
			return errors.WithMessagef(err, "layer %d", i)
		}
		if k > 2 && !l.IsBaseMulticlass {
			cls = NewOneVsRest(cls)
		}
		layers[i].cls = cls
		if l.Scale {
			layers[i].scaler = preprocess.ForRepresentation(repr)
		}
	}

	switch {
	case W == nil:
		for i := 0; i < l.Depth-1; i++ {
			w := make([]float64, k*f)
			for j := range w {
				w[j] = l.rng.NormFloat64()
			}
			layers[i].w = mat.NewDense(k, f, w)
		}
	case len(W) != l.Depth-1:
		return errors.Errorf("expected %d projection matrices, got %d", l.Depth-1, len(W))
	default:
		for i, w := range W {
			if r, c := w.Dims(); r != k || c != f {
				return errors.Wrapf(mat.ErrShape, "projection %d is %d×%d, expected %d×%d", i, r, c, k, f)
			}
			layers[i].w = mat.DenseCopyOf(w)
		}
	}

	l.classes = classes
	l.features = f
	l.repr = repr
	l.layers = layers

	st := newFeedState(true, mode, fixedC)
	if _, err := l.feedForward(st, X, y); err != nil {
		return err
	}
	l.fitted = true
	return nil
}

// Predict returns the predictions of the terminal layer.
func (l *Learner) Predict(X mat.Matrix) ([]int, error) {
	st, last, err := l.replay(X)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return []int{}, nil
	}
	return l.layers[l.Depth-1].cls.Predict(last)
}

// PredictAllLayers returns Depth prediction vectors: the prediction of every layer on its own input. The last one
// is what Predict returns.
func (l *Learner) PredictAllLayers(X mat.Matrix) ([][]int, error) {
	st, _, err := l.replay(X)
	if err != nil {
		return nil, err
	}
	retVal := make([][]int, l.Depth)
	if st == nil {
		for i := range retVal {
			retVal[i] = []int{}
		}
		return retVal, nil
	}
	for i := range l.layers {
		if retVal[i], err = l.layers[i].cls.Predict(st.inputs[i]); err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
	}
	return retVal, nil
}

// DecisionFunction returns the scores of the terminal layer on its input.
func (l *Learner) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	st, last, err := l.replay(X)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &mat.Dense{}, nil
	}
	return l.layers[l.Depth-1].cls.DecisionFunction(last)
}

// replay runs the fitted layers over X. A nil state is returned for empty input.
func (l *Learner) replay(X mat.Matrix) (*feedState, mat.Matrix, error) {
	if !l.fitted {
		return nil, nil, errors.Wrap(estimator.ErrNotFitted, "r2")
	}
	repr, err := dataset.Kind(X)
	if err != nil {
		return nil, nil, err
	}
	if repr != l.repr {
		return nil, nil, errors.Wrapf(dataset.ErrUnsupportedMatrix, "fitted on %v input, got %v", l.repr, repr)
	}
	n, f := X.Dims()
	if f != l.features {
		return nil, nil, errors.Errorf("X has %d features, the learner was fitted on %d", f, l.features)
	}
	if n == 0 {
		return nil, nil, nil
	}
	st := newFeedState(false, NoSearch, 0)
	last, err := l.feedForward(st, X, nil)
	if err != nil {
		return nil, nil, err
	}
	return st, last, nil
}

// Classes returns the sorted classes seen by Fit.
func (l *Learner) Classes() []int { return l.classes }

// Projections returns the projection matrices of the fitted non-terminal layers.
func (l *Learner) Projections() []*mat.Dense {
	var retVal []*mat.Dense
	for _, ly := range l.layers {
		if ly.w != nil {
			retVal = append(retVal, ly.w)
		}
	}
	return retVal
}

// SearchedC returns the regularization strength every layer settled on during a search. Layers that did not
// search report 0.
func (l *Learner) SearchedC() []float64 {
	retVal := make([]float64, len(l.layers))
	for i, ly := range l.layers {
		retVal[i] = ly.c
	}
	return retVal
}

// Family implements estimator.Familier.
func (l *Learner) Family() estimator.Family { return estimator.FamilyOf(l.base) }

func (l *Learner) GetParams() estimator.Params { return l.Config.params() }

// SetParams updates the configuration. Nothing changes if any parameter is unknown or invalid. Changing C is
// forwarded to the base classifier. A fitted learner must be fitted again for changes to take effect.
func (l *Learner) SetParams(p estimator.Params) error {
	conf := l.Config
	for _, k := range p.Keys() {
		if err := conf.set(p, k); err != nil {
			return err
		}
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if _, ok := p["C"]; ok {
		base := l.base.Clone()
		if err := base.SetParams(estimator.Params{"C": conf.C}); err != nil && !errors.Is(err, estimator.ErrUnknownParam) {
			return errors.WithMessage(err, "base classifier")
		}
		l.base = base
	}
	l.Config = conf
	return nil
}

// Clone returns an unfitted Learner with the same configuration and base classifier.
func (l *Learner) Clone() estimator.Classifier {
	retVal := &Learner{
		Config: l.Config,
		base:   l.base.Clone(),
		lj:     makeLumberJack(),
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal
}

// Log writes what the learner recorded during fitting to w.
func (l *Learner) Log(w io.Writer) {
	fmt.Fprint(w, l.buf.String())
	if trace := l.lj.Log(); trace != "" {
		fmt.Fprintln(w, "\nTrace:")
		fmt.Fprintln(w, trace)
	}
}
