package r2

import (
	"github.com/gorgonia/r2/crossval"
	"gonum.org/v1/gonum/mat"
)

// ScoreAllDepths measures the accuracy of every layer of a fitted learner and returns the best depth (1-based)
// with its accuracy. The shallowest depth wins ties.
func ScoreAllDepths(l *Learner, X mat.Matrix, y []int) (depth int, score float64, err error) {
	preds, err := l.PredictAllLayers(X)
	if err != nil {
		return 0, 0, err
	}
	score = -1
	for i, p := range preds {
		if s := crossval.Accuracy(y, p); s > score {
			depth, score = i+1, s
		}
	}
	return depth, score, nil
}
