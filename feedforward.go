package r2

import (
	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/preprocess"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"
)

// feedState is the state of a single pass through the layers. Every Fit and Predict builds a fresh one.
type feedState struct {
	training bool
	mode     SearchMode // search mode of this pass, training only
	fixedC   float64

	delta  *mat.Dense   // accumulated feedback, N×F
	inputs []mat.Matrix // the input of every layer visited so far
	prevC  float64      // C chosen by the previous layer's search, 0 if none
}

func newFeedState(training bool, mode SearchMode, fixedC float64) *feedState {
	return &feedState{
		training: training,
		mode:     mode,
		fixedC:   fixedC,
	}
}

// feedForward runs X through every layer and returns the input of the terminal layer.
func (l *Learner) feedForward(st *feedState, X mat.Matrix, y []int) (mat.Matrix, error) {
	if l.Scale {
		var err error
		if X, err = l.scale(st, 0, X); err != nil {
			return nil, err
		}
	}
	n, f := X.Dims()
	st.delta = mat.NewDense(n, f, nil)
	st.inputs = append(st.inputs[:0], X)

	for i := range l.layers {
		var err error
		if X, err = l.step(st, i, X, y); err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i)
		}
	}
	return X, nil
}

// step is the transition at layer i. It fits the layer's classifier when training and, for every layer but the
// last, returns the input of the next layer.
func (l *Learner) step(st *feedState, i int, X mat.Matrix, y []int) (mat.Matrix, error) {
	ly := &l.layers[i]
	if st.training {
		if err := l.fitLayer(st, ly, X, y); err != nil {
			return nil, err
		}
	}
	if i == len(l.layers)-1 {
		return X, nil
	}

	o, err := l.scores(ly, X)
	if err != nil {
		return nil, err
	}
	var fb mat.Dense
	fb.Mul(o, ly.w)
	if l.Recurrent {
		st.delta.Add(st.delta, &fb)
	} else {
		st.delta.Copy(&fb)
	}
	l.lj.log("layer %d: feedback norm %v", i, mat.Norm(st.delta, 2))

	base := st.inputs[0]
	if l.UsePrev {
		base = X
	}
	moved := mat.DenseCopyOf(dataset.AsDense(base))
	moved.Add(moved, scaled(l.Beta, st.delta))
	next := mat.Matrix(l.Activation.Apply(moved))

	if l.Scale {
		if next, err = l.scale(st, i+1, next); err != nil {
			return nil, err
		}
	}
	st.inputs = append(st.inputs, next)
	return next, nil
}

// scores returns the decision scores of a layer as an N×K matrix. A binary margin m becomes the two columns
// [-m, m].
func (l *Learner) scores(ly *layer, X mat.Matrix) (*mat.Dense, error) {
	n, _ := X.Dims()
	k := len(l.classes)
	if l.FixPrediction {
		fixed := make([]float64, n*k)
		for i := range fixed {
			fixed[i] = l.FixedPrediction
		}
		return mat.NewDense(n, k, fixed), nil
	}

	d, err := ly.cls.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	_, c := d.Dims()
	switch {
	case k > 2 && c == k:
		return d, nil
	case k == 2 && c == 1:
		m := mat.Col(nil, 0, d)
		neg := make([]float64, n)
		copy(neg, m)
		vecf64.Scale(neg, -1)
		retVal := mat.NewDense(n, 2, nil)
		retVal.SetCol(0, neg)
		retVal.SetCol(1, m)
		return retVal, nil
	}
	return nil, errors.Wrapf(ErrClassCount, "%d classes but the classifier returned %d score columns", k, c)
}

// scale fits (when training) or applies the scaler of layer i.
func (l *Learner) scale(st *feedState, i int, X mat.Matrix) (mat.Matrix, error) {
	s := l.layers[i].scaler
	if st.training {
		return preprocess.FitTransform(s, X)
	}
	return s.Transform(X)
}

func scaled(alpha float64, a *mat.Dense) *mat.Dense {
	var retVal mat.Dense
	retVal.Scale(alpha, a)
	return &retVal
}
