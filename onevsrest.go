package r2

import (
	"strings"

	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"
)

const innerPrefix = "estimator__"

// OneVsRest turns a binary classifier into a K class classifier by training one copy per class to separate that
// class from the rest.
type OneVsRest struct {
	proto   estimator.Classifier
	classes []int
	models  []estimator.Classifier
}

func NewOneVsRest(proto estimator.Classifier) *OneVsRest {
	return &OneVsRest{proto: proto}
}

func (o *OneVsRest) Fit(X mat.Matrix, y []int) error {
	if err := estimator.CheckXy(X, y); err != nil {
		return err
	}
	classes := estimator.Unique(y)
	if len(classes) < 2 {
		return errors.Wrapf(ErrClassCount, "one-vs-rest needs at least 2 classes, got %d", len(classes))
	}
	models := make([]estimator.Classifier, len(classes))
	bin := make([]int, len(y))
	for k, c := range classes {
		for i, label := range y {
			if label == c {
				bin[i] = 1
			} else {
				bin[i] = 0
			}
		}
		m := o.proto.Clone()
		if err := m.Fit(X, bin); err != nil {
			return errors.WithMessagef(err, "class %d", c)
		}
		models[k] = m
	}
	o.classes = classes
	o.models = models
	return nil
}

// DecisionFunction returns one column per class: the margin of that class against the rest.
func (o *OneVsRest) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if o.models == nil {
		return nil, errors.Wrap(estimator.ErrNotFitted, "one-vs-rest")
	}
	n, _ := X.Dims()
	retVal := mat.NewDense(n, len(o.models), nil)
	for k, m := range o.models {
		d, err := m.DecisionFunction(X)
		if err != nil {
			return nil, errors.WithMessagef(err, "class %d", o.classes[k])
		}
		if _, c := d.Dims(); c != 1 {
			return nil, errors.Errorf("binary classifier returned %d score columns", c)
		}
		retVal.SetCol(k, mat.Col(nil, 0, d))
	}
	return retVal, nil
}

func (o *OneVsRest) Predict(X mat.Matrix) ([]int, error) {
	scores, err := o.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n, _ := scores.Dims()
	retVal := make([]int, n)
	for i := range retVal {
		retVal[i] = o.classes[vecf64.Argmax(scores.RawRowView(i))]
	}
	return retVal, nil
}

func (o *OneVsRest) Classes() []int { return o.classes }

// Family implements estimator.Familier.
func (o *OneVsRest) Family() estimator.Family { return estimator.FamilyOf(o.proto) }

// GetParams returns the parameters of the wrapped classifier, prefixed with "estimator__".
func (o *OneVsRest) GetParams() estimator.Params {
	inner := o.proto.GetParams()
	retVal := make(estimator.Params, len(inner))
	for k, v := range inner {
		retVal[innerPrefix+k] = v
	}
	return retVal
}

// SetParams forwards "estimator__" prefixed parameters to the wrapped classifier.
func (o *OneVsRest) SetParams(p estimator.Params) error {
	inner := make(estimator.Params, len(p))
	for _, k := range p.Keys() {
		if !strings.HasPrefix(k, innerPrefix) {
			return estimator.UnknownParam("one-vs-rest", k)
		}
		inner[strings.TrimPrefix(k, innerPrefix)] = p[k]
	}
	return o.proto.SetParams(inner)
}

func (o *OneVsRest) Clone() estimator.Classifier {
	return &OneVsRest{proto: o.proto.Clone()}
}
