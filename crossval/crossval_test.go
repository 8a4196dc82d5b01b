package crossval

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestKFold(t *testing.T) {
	folds, err := KFold{N: 3}.Split(10, nil)
	require.NoError(t, err)
	require.Len(t, folds, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, folds[0].Test)
	assert.Equal(t, []int{4, 5, 6}, folds[1].Test)
	assert.Equal(t, []int{7, 8, 9}, folds[2].Test)
	assert.Equal(t, []int{0, 1, 2, 3, 7, 8, 9}, folds[1].Train)

	r := rand.New(rand.NewSource(1))
	folds, err = KFold{N: 4, Shuffle: true}.Split(22, r)
	require.NoError(t, err)
	var all []int
	for _, f := range folds {
		assert.Equal(t, 22, len(f.Train)+len(f.Test))
		all = append(all, f.Test...)
	}
	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v, "every row is tested exactly once")
	}

	_, err = KFold{N: 1}.Split(10, nil)
	assert.Error(t, err)
	_, err = KFold{N: 5}.Split(3, nil)
	assert.Error(t, err)
	_, err = KFold{N: 2, Shuffle: true}.Split(3, nil)
	assert.Error(t, err)
}

func TestAccuracyAndConfusion(t *testing.T) {
	truth := []int{0, 0, 1, 1, 2}
	pred := []int{0, 1, 1, 1, 0}
	assert.InDelta(t, 0.6, Accuracy(truth, pred), 1e-12)
	assert.Equal(t, 0.0, Accuracy(nil, nil))

	cm := ConfusionMatrix(truth, pred, []int{0, 1, 2})
	want := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 0,
		1, 0, 0,
	})
	assert.True(t, mat.Equal(want, cm))
}

func TestScore(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	d := dataset.Blobs(r, [][]float64{{-3, 0}, {3, 0}}, 30, 0.5)
	folds, err := KFold{N: 3, Shuffle: true}.Split(d.Len(), r)
	require.NoError(t, err)

	conf := linear.DefaultConfig()
	conf.Seed = 3
	scores, err := Scores(linear.Must(linear.New(conf)), d.X, d.Y, folds)
	require.NoError(t, err)
	assert.Len(t, scores, 3)
	mean, std := MeanStd(scores)
	assert.Equal(t, 1.0, mean)
	assert.Equal(t, 0.0, std)
}
