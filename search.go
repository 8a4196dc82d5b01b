package r2

import (
	"math"
	"math/rand"

	"github.com/gorgonia/r2/crossval"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	searchSize  = 7 // candidates drawn per layer
	searchFolds = 3
)

// fitLayer settles the regularization strength of a layer's classifier according to the pass's search mode, then
// fits it.
func (l *Learner) fitLayer(st *feedState, ly *layer, X mat.Matrix, y []int) error {
	switch st.mode {
	case RandomSearch:
		c, score, err := l.searchC(st, ly.cls, X, y)
		if err != nil {
			return err
		}
		l.logger.Printf("Layer search picked C = %v (cv accuracy %.4f)", c, score)
		if err := setC(ly.cls, c); err != nil {
			return err
		}
		ly.c = c
		st.prevC = c
	case FixedC:
		if err := setC(ly.cls, st.fixedC); err != nil {
			return err
		}
	}
	return ly.cls.Fit(X, y)
}

// searchC scores every candidate strength with shuffled k-fold cross validation and returns the best one. Ties
// go to the earlier candidate.
func (l *Learner) searchC(st *feedState, cls estimator.Classifier, X mat.Matrix, y []int) (best, bestScore float64, err error) {
	var candidates []float64
	switch estimator.FamilyOf(cls) {
	case estimator.Ridge:
		candidates = powersOfTen(searchSize)
	default:
		candidates = logUniform(l.rng, searchSize, st.prevC)
	}

	n, _ := X.Dims()
	folds, err := crossval.KFold{N: searchFolds, Shuffle: true}.Split(n, l.rng)
	if err != nil {
		return 0, 0, err
	}

	for _, c := range candidates {
		m := cls.Clone()
		if err := setC(m, c); err != nil {
			return 0, 0, err
		}
		score, err := crossval.Score(m, X, y, folds)
		if err != nil {
			return 0, 0, errors.WithMessagef(err, "C = %v", c)
		}
		l.lj.log("C = %v: %v", c, score)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == 0 {
		return 0, 0, errors.Wrapf(ErrDegenerateSearch, "%d candidates", len(candidates))
	}
	return best, bestScore, nil
}

// powersOfTen returns 10⁰ … 10ⁿ⁻¹. Used for ridge classifiers.
func powersOfTen(n int) []float64 {
	retVal := make([]float64, n)
	for i := range retVal {
		retVal[i] = math.Pow(10, float64(i))
	}
	return retVal
}

// logUniform draws n uniform values, stretches them onto [-2, 10] and exponentiates them. 1 and prev (if
// positive) are always candidates. Used for margin classifiers.
func logUniform(r *rand.Rand, n int, prev float64) []float64 {
	u := make([]float64, n)
	for i := range u {
		u[i] = r.Float64()
	}
	lo, hi := floats.Min(u), floats.Max(u)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	retVal := make([]float64, 0, n+2)
	for _, v := range u {
		retVal = appendUnique(retVal, math.Exp((v-lo)/span*12-2))
	}
	retVal = appendUnique(retVal, 1)
	if prev > 0 {
		retVal = appendUnique(retVal, prev)
	}
	return retVal
}

func appendUnique(a []float64, v float64) []float64 {
	for _, x := range a {
		if x == v {
			return a
		}
	}
	return append(a, v)
}

// setC sets the regularization strength of cls, reaching through a one-vs-rest wrapper.
func setC(cls estimator.Classifier, c float64) error {
	key := "C"
	if _, ok := cls.(*OneVsRest); ok {
		key = "estimator__C"
	}
	return cls.SetParams(estimator.Params{key: c})
}
