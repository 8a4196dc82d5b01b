package preprocess

import (
	"math"
	"testing"

	"github.com/gorgonia/r2/dataset"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestMinMaxScaler(t *testing.T) {
	assert := assert.New(t)
	X := mat.NewDense(3, 2, []float64{
		0, 5,
		5, 5,
		10, 5,
	})
	s := NewMinMaxScaler(-1.2, 1.2)
	out, err := FitTransform(s, X)
	require.NoError(t, err)
	assert.InDelta(-1.2, out.At(0, 0), 1e-12)
	assert.InDelta(0, out.At(1, 0), 1e-12)
	assert.InDelta(1.2, out.At(2, 0), 1e-12)
	// constant columns land on Min
	assert.InDelta(-1.2, out.At(1, 1), 1e-12)

	// transform reuses the fitted range
	out, err = s.Transform(mat.NewDense(1, 2, []float64{20, 5}))
	require.NoError(t, err)
	assert.InDelta(3.6, out.At(0, 0), 1e-12)

	_, err = s.Transform(mat.NewDense(1, 3, nil))
	assert.Error(err)

	err = s.Fit(dataset.CSRFromDense(X))
	assert.True(errors.Is(err, dataset.ErrUnsupportedMatrix), "sparse input must be refused: %v", err)

	_, err = NewMinMaxScaler(0, 1).Transform(X)
	assert.Error(err, "transform before fit")
}

func TestNormalizer(t *testing.T) {
	assert := assert.New(t)
	X := mat.NewDense(2, 2, []float64{3, 4, 0, 0})
	var n Normalizer
	out, err := FitTransform(n, X)
	require.NoError(t, err)
	assert.InDelta(0.6, out.At(0, 0), 1e-12)
	assert.InDelta(0.8, out.At(0, 1), 1e-12)
	assert.Equal(0.0, out.At(1, 0))

	sp, err := n.Transform(dataset.CSRFromDense(X))
	require.NoError(t, err)
	_, ok := sp.(*dataset.CSR)
	assert.True(ok, "sparse stays sparse")
	assert.True(mat.EqualApprox(out, sp, 1e-12))
	assert.Equal(3.0, X.At(0, 0), "input untouched")
}

func TestForRepresentation(t *testing.T) {
	_, ok := ForRepresentation(dataset.Dense).(*MinMaxScaler)
	assert.True(t, ok)
	_, ok = ForRepresentation(dataset.Sparse).(*Normalizer)
	assert.True(t, ok)
}

func TestLabelBinarizer(t *testing.T) {
	assert := assert.New(t)

	var bin LabelBinarizer
	require.NoError(t, bin.Fit([]int{4, 9, 9, 4}))
	T, err := bin.Transform([]int{4, 9})
	require.NoError(t, err)
	assert.True(mat.Equal(mat.NewDense(2, 1, []float64{-1, 1}), T))
	labels, err := bin.InverseTransform(mat.NewDense(3, 1, []float64{0.3, -2, 0}))
	require.NoError(t, err)
	assert.Equal([]int{9, 4, 4}, labels)

	var multi LabelBinarizer
	require.NoError(t, multi.Fit([]int{2, 0, 1, 2}))
	T, err = multi.Transform([]int{0, 2})
	require.NoError(t, err)
	assert.True(mat.Equal(mat.NewDense(2, 3, []float64{1, 0, 0, 0, 0, 1}), T))
	labels, err = multi.InverseTransform(mat.NewDense(2, 3, []float64{0.1, 0.7, 0.2, math.Inf(-1), -1, -3}))
	require.NoError(t, err)
	assert.Equal([]int{1, 1}, labels)

	_, err = multi.Transform([]int{5})
	assert.Error(err)
	_, err = multi.InverseTransform(mat.NewDense(1, 1, nil))
	assert.Error(err)

	var single LabelBinarizer
	assert.Error(single.Fit([]int{1, 1}))
}
