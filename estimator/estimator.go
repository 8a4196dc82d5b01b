// Package estimator holds the protocol shared by every classifier in this module: the layered learner,
// its base learners and anything that drives them (cross validation, grid searches).
package estimator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// NoSeed marks a seed that has not been chosen yet. Constructors replace it with a freshly drawn seed.
const NoSeed int64 = -1

var (
	ErrNotFitted    = errors.New("estimator is not fitted")
	ErrUnknownParam = errors.New("unknown parameter")
	ErrParamType    = errors.New("parameter has the wrong type")
)

// Classifier is anything that learns a mapping from feature rows to discrete labels.
//
// DecisionFunction returns the raw scores the prediction is derived from. Binary classifiers return a single
// column (positive means Classes()[1]); multiclass classifiers return one column per class.
type Classifier interface {
	Fit(X mat.Matrix, y []int) error
	Predict(X mat.Matrix) ([]int, error)
	DecisionFunction(X mat.Matrix) (*mat.Dense, error)
	Classes() []int

	GetParams() Params
	SetParams(p Params) error

	// Clone returns an unfitted copy with identical configuration.
	Clone() Classifier
}

// Family describes how the regularization strength C of a classifier should be searched.
type Family int

const (
	Ridge  Family = iota // closed form ridge solutions (C swept over powers of ten)
	Margin               // margin classifiers (C drawn log-uniformly)
)

func (f Family) String() string {
	switch f {
	case Ridge:
		return "ridge"
	case Margin:
		return "margin"
	}
	return "unknown family"
}

// Familier is implemented by classifiers that know their regularization family.
type Familier interface {
	Family() Family
}

// FamilyOf returns the family of c. Classifiers that do not say are treated as margin classifiers.
func FamilyOf(c Classifier) Family {
	if f, ok := c.(Familier); ok {
		return f.Family()
	}
	return Margin
}

// ResolveSeed returns seed, or a fresh seed drawn from the process-wide source if seed is NoSeed.
func ResolveSeed(seed int64) int64 {
	if seed >= 0 {
		return seed
	}
	return rand.Int63n(math.MaxInt32)
}

// Unique returns the sorted distinct labels of y.
func Unique(y []int) []int {
	seen := make(map[int]struct{}, 8)
	var retVal []int
	for _, v := range y {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		retVal = append(retVal, v)
	}
	sort.Ints(retVal)
	return retVal
}

// CheckXy makes sure X has as many rows as y has labels.
func CheckXy(X mat.Matrix, y []int) error {
	r, _ := X.Dims()
	if r != len(y) {
		return errors.Errorf("X has %d rows but y has %d labels", r, len(y))
	}
	if r == 0 {
		return errors.New("cannot fit on an empty dataset")
	}
	return nil
}
