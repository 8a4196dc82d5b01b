// Package crossval splits datasets into folds and scores classifiers on them.
package crossval

import (
	"math/rand"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Fold is one train/test partition of the row indices of a dataset.
type Fold struct {
	Train, Test []int
}

// KFold splits n rows into N consecutive folds. The first n mod N folds get one extra row.
type KFold struct {
	N       int
	Shuffle bool
}

// Split returns the folds. r is only used when Shuffle is set.
func (k KFold) Split(n int, r *rand.Rand) ([]Fold, error) {
	if k.N < 2 {
		return nil, errors.Errorf("need at least 2 folds, got %d", k.N)
	}
	if n < k.N {
		return nil, errors.Errorf("cannot split %d rows into %d folds", n, k.N)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if k.Shuffle {
		if r == nil {
			return nil, errors.New("shuffled folds need a random source")
		}
		r.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	}

	retVal := make([]Fold, 0, k.N)
	start := 0
	for f := 0; f < k.N; f++ {
		size := n / k.N
		if f < n%k.N {
			size++
		}
		test := append([]int(nil), idx[start:start+size]...)
		train := make([]int, 0, n-size)
		train = append(train, idx[:start]...)
		train = append(train, idx[start+size:]...)
		retVal = append(retVal, Fold{Train: train, Test: test})
		start += size
	}
	return retVal, nil
}

// Accuracy is the fraction of predictions equal to the truth.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	var same int
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			same++
		}
	}
	return float64(same) / float64(len(yTrue))
}

// ConfusionMatrix counts (truth, prediction) pairs. Row i is labels[i] as truth, column j is labels[j] as
// prediction. Pairs involving labels outside the list are ignored.
func ConfusionMatrix(yTrue, yPred, labels []int) *mat.Dense {
	index := make(map[int]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	retVal := mat.NewDense(len(labels), len(labels), nil)
	for i := range yTrue {
		a, ok1 := index[yTrue[i]]
		b, ok2 := index[yPred[i]]
		if ok1 && ok2 {
			retVal.Set(a, b, retVal.At(a, b)+1)
		}
	}
	return retVal
}

// FoldScore fits a clone of m on the training rows and returns the test accuracy along with the fitted clone.
func FoldScore(m estimator.Classifier, X mat.Matrix, y []int, fold Fold) (float64, estimator.Classifier, error) {
	clf := m.Clone()
	if err := clf.Fit(dataset.Rows(X, fold.Train), dataset.Labels(y, fold.Train)); err != nil {
		return 0, nil, err
	}
	pred, err := clf.Predict(dataset.Rows(X, fold.Test))
	if err != nil {
		return 0, nil, err
	}
	return Accuracy(dataset.Labels(y, fold.Test), pred), clf, nil
}

// Scores returns the test accuracy of m on every fold.
func Scores(m estimator.Classifier, X mat.Matrix, y []int, folds []Fold) ([]float64, error) {
	retVal := make([]float64, len(folds))
	for i, f := range folds {
		s, _, err := FoldScore(m, X, y, f)
		if err != nil {
			return nil, errors.WithMessagef(err, "fold %d", i)
		}
		retVal[i] = s
	}
	return retVal, nil
}

// Score returns the mean test accuracy of m over the folds.
func Score(m estimator.Classifier, X mat.Matrix, y []int, folds []Fold) (float64, error) {
	scores, err := Scores(m, X, y, folds)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}

// MeanStd returns the mean and population standard deviation of xs.
func MeanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(xs, nil)
}
