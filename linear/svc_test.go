package linear

import (
	"math/rand"
	"testing"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDefaultConfig(t *testing.T) {
	if !DefaultConfig().IsValid() {
		t.Errorf("Expected Default Config to be correct")
	}
	bad := DefaultConfig()
	bad.C = 0
	assert.False(t, bad.IsValid())
}

func TestSVCSeparable(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	// shifted away from the origin so that the intercept matters
	d := dataset.Blobs(r, [][]float64{{3, 5}, {7, 9}}, 50, 0.6)

	conf := DefaultConfig()
	conf.Seed = 2
	s := Must(New(conf))
	require.NoError(t, s.Fit(d.X, d.Y))

	pred, err := s.Predict(d.X)
	require.NoError(t, err)
	assert.Equal(t, d.Y, pred)
	assert.True(t, s.Iterations() <= conf.MaxIter)

	w, b := s.Coef()
	assert.Len(t, w, 2)
	assert.NotZero(t, b)
}

func TestSVCSparseMatchesDense(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	d := dataset.Blobs(r, [][]float64{{0, 0, 1}, {2, 2, 0}}, 30, 0.5)

	conf := DefaultConfig()
	conf.Seed = 4
	a := Must(New(conf))
	b := a.Clone()
	require.NoError(t, a.Fit(d.X, d.Y))
	require.NoError(t, b.Fit(dataset.CSRFromDense(d.X), d.Y))

	sa, err := a.DecisionFunction(d.X)
	require.NoError(t, err)
	sb, err := b.DecisionFunction(dataset.CSRFromDense(d.X))
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(sa, sb, 1e-9))
}

func TestSVCBalanced(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	major := dataset.Blobs(r, [][]float64{{0, 0}}, 90, 1)
	minor := dataset.Blobs(r, [][]float64{{1.5, 1.5}}, 10, 1)
	X := mat.NewDense(100, 2, nil)
	y := make([]int, 100)
	X.Slice(0, 90, 0, 2).(*mat.Dense).Copy(major.X)
	X.Slice(90, 100, 0, 2).(*mat.Dense).Copy(minor.X)
	for i := 90; i < 100; i++ {
		y[i] = 1
	}

	count := func(w Weighting) int {
		conf := DefaultConfig()
		conf.ClassWeight = w
		conf.Seed = 6
		s := Must(New(conf))
		require.NoError(t, s.Fit(X, y))
		pred, err := s.Predict(X)
		require.NoError(t, err)
		var n int
		for _, p := range pred {
			n += p
		}
		return n
	}
	assert.True(t, count(Balanced) > count(Uniform), "balancing should predict the minority class more often")
}

func TestSVCErrors(t *testing.T) {
	s := Must(New(DefaultConfig()))
	_, err := s.Predict(mat.NewDense(1, 2, nil))
	assert.True(t, errors.Is(err, estimator.ErrNotFitted))

	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	err = s.Fit(X, []int{0, 1, 2})
	assert.True(t, errors.Is(err, ErrNotBinary))
}

func TestSVCParams(t *testing.T) {
	s := Must(New(DefaultConfig()))
	require.NoError(t, s.SetParams(estimator.Params{"C": 0.5, "class_weight": "auto", "seed": 8}))
	assert.Equal(t, 0.5, s.C)
	assert.Equal(t, Balanced, s.ClassWeight)
	assert.Equal(t, int64(8), s.Seed)

	err := s.SetParams(estimator.Params{"kernel": "linear"})
	assert.True(t, errors.Is(err, estimator.ErrUnknownParam))
	assert.Error(t, s.SetParams(estimator.Params{"C": "big"}))

	assert.Equal(t, s.GetParams(), s.Clone().GetParams())
	assert.Equal(t, estimator.Margin, estimator.FamilyOf(s))
}
