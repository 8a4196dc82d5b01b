package preprocess

import (
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"
)

// LabelBinarizer maps labels to regression targets and back.
//
// With two classes the target is a single column holding -1 for the first class and +1 for the second. With more
// classes it is a one-hot matrix with a column per class.
type LabelBinarizer struct {
	classes []int
	index   map[int]int
}

func (lb *LabelBinarizer) Fit(y []int) error {
	classes := estimator.Unique(y)
	if len(classes) < 2 {
		return errors.Errorf("need at least 2 classes to binarize labels, got %d", len(classes))
	}
	lb.classes = classes
	lb.index = make(map[int]int, len(classes))
	for i, c := range classes {
		lb.index[c] = i
	}
	return nil
}

// Classes returns the sorted classes seen by Fit.
func (lb *LabelBinarizer) Classes() []int { return lb.classes }

// Width is the number of target columns.
func (lb *LabelBinarizer) Width() int {
	if len(lb.classes) == 2 {
		return 1
	}
	return len(lb.classes)
}

func (lb *LabelBinarizer) Transform(y []int) (*mat.Dense, error) {
	if lb.classes == nil {
		return nil, errors.Wrap(estimator.ErrNotFitted, "label binarizer")
	}
	if len(y) == 0 {
		return &mat.Dense{}, nil
	}
	w := lb.Width()
	retVal := mat.NewDense(len(y), w, nil)
	for i, label := range y {
		k, ok := lb.index[label]
		if !ok {
			return nil, errors.Errorf("label %d was not seen during fit", label)
		}
		if w == 1 {
			retVal.Set(i, 0, float64(2*k-1))
			continue
		}
		retVal.Set(i, k, 1)
	}
	return retVal, nil
}

// InverseTransform turns scores back into labels: the sign of the single column for two classes, the arg max of
// the row otherwise.
func (lb *LabelBinarizer) InverseTransform(scores mat.Matrix) ([]int, error) {
	if lb.classes == nil {
		return nil, errors.Wrap(estimator.ErrNotFitted, "label binarizer")
	}
	r, c := scores.Dims()
	if c != lb.Width() {
		return nil, errors.Errorf("expected %d score columns, got %d", lb.Width(), c)
	}
	retVal := make([]int, r)
	row := make([]float64, c)
	for i := range retVal {
		mat.Row(row, i, scores)
		if c == 1 {
			if row[0] > 0 {
				retVal[i] = lb.classes[1]
			} else {
				retVal[i] = lb.classes[0]
			}
			continue
		}
		retVal[i] = lb.classes[vecf64.Argmax(row)]
	}
	return retVal, nil
}
