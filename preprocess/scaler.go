// Package preprocess holds the feature scalers and the label binarizer.
package preprocess

import (
	"math"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Scaler is a fitted, feature-wise transformation.
type Scaler interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// FitTransform fits s on X and transforms X.
func FitTransform(s Scaler, X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// ForRepresentation returns the scaler legal for a representation: min-max scaling into [-1.2, 1.2] for dense
// features, row normalization for sparse ones.
func ForRepresentation(r dataset.Representation) Scaler {
	if r == dataset.Sparse {
		return &Normalizer{}
	}
	return NewMinMaxScaler(-1.2, 1.2)
}

// MinMaxScaler maps every column linearly so that the training minimum and maximum land on Min and Max.
// It only accepts dense features.
type MinMaxScaler struct {
	Min, Max float64

	dataMin []float64
	scale   []float64
}

func NewMinMaxScaler(min, max float64) *MinMaxScaler {
	return &MinMaxScaler{Min: min, Max: max}
}

func (s *MinMaxScaler) Fit(X mat.Matrix) error {
	if s.Min >= s.Max {
		return errors.Errorf("min-max scaler range [%v, %v] is empty", s.Min, s.Max)
	}
	x, ok := X.(*mat.Dense)
	if !ok {
		return errors.Wrapf(dataset.ErrUnsupportedMatrix, "min-max scaling needs dense features, got %T", X)
	}
	r, c := x.Dims()
	if r == 0 {
		return errors.New("cannot fit a scaler on no samples")
	}
	s.dataMin = make([]float64, c)
	s.scale = make([]float64, c)
	for j := 0; j < c; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < r; i++ {
			v := x.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		rng := hi - lo
		if rng == 0 {
			rng = 1
		}
		s.dataMin[j] = lo
		s.scale[j] = (s.Max - s.Min) / rng
	}
	return nil
}

func (s *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if s.scale == nil {
		return nil, errors.Wrap(estimator.ErrNotFitted, "min-max scaler")
	}
	x, ok := X.(*mat.Dense)
	if !ok {
		return nil, errors.Wrapf(dataset.ErrUnsupportedMatrix, "min-max scaling needs dense features, got %T", X)
	}
	r, c := x.Dims()
	if c != len(s.scale) {
		return nil, errors.Errorf("scaler was fitted on %d features, got %d", len(s.scale), c)
	}
	retVal := mat.NewDense(r, c, nil)
	retVal.Apply(func(i, j int, v float64) float64 {
		return (v-s.dataMin[j])*s.scale[j] + s.Min
	}, x)
	return retVal, nil
}

// Normalizer scales every row to unit euclidean norm. Rows of zeros are left alone. It is stateless and keeps
// the representation of its input.
type Normalizer struct{}

func (Normalizer) Fit(X mat.Matrix) error {
	_, err := dataset.Kind(X)
	return err
}

func (Normalizer) Transform(X mat.Matrix) (mat.Matrix, error) {
	switch x := X.(type) {
	case *dataset.CSR:
		r, _ := x.Dims()
		norms := make([]float64, r)
		for i := range norms {
			var ss float64
			x.DoRowNonZero(i, func(_ int, v float64) { ss += v * v })
			norms[i] = invNorm(ss)
		}
		return x.ScaleRows(norms), nil
	case *mat.Dense:
		r, c := x.Dims()
		retVal := mat.NewDense(r, c, nil)
		retVal.Copy(x)
		for i := 0; i < r; i++ {
			row := retVal.RawRowView(i)
			var ss float64
			for _, v := range row {
				ss += v * v
			}
			n := invNorm(ss)
			for j := range row {
				row[j] *= n
			}
		}
		return retVal, nil
	}
	return nil, errors.Wrapf(dataset.ErrUnsupportedMatrix, "got %T", X)
}

func invNorm(ss float64) float64 {
	if ss == 0 {
		return 1
	}
	return 1 / math.Sqrt(ss)
}
