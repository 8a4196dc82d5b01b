package dataset

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCSR(t *testing.T) {
	assert := assert.New(t)
	dense := mat.NewDense(3, 4, []float64{
		0, 1, 0, 2,
		0, 0, 0, 0,
		3, 0, 4, 0,
	})
	m := CSRFromDense(dense)
	r, c := m.Dims()
	assert.Equal(3, r)
	assert.Equal(4, c)
	assert.Equal(4, m.NNZ())
	assert.True(mat.Equal(dense, m), "CSR should read back the dense matrix")
	assert.True(mat.Equal(dense, m.ToDense()))
	assert.True(mat.Equal(dense.T(), m.T()))

	sel := m.SelectRows([]int{2, 0})
	assert.True(mat.Equal(mat.NewDense(2, 4, []float64{3, 0, 4, 0, 0, 1, 0, 2}), sel))

	scaled := m.ScaleRows([]float64{2, 1, 0.5})
	assert.Equal(4.0, scaled.At(0, 3))
	assert.Equal(2.0, scaled.At(2, 2))
	assert.Equal(2.0, m.At(0, 3), "scaling must not touch the original")

	var cols []int
	m.DoRowNonZero(2, func(j int, v float64) { cols = append(cols, j) })
	assert.Equal([]int{0, 2}, cols)
}

func TestNewCSRPanics(t *testing.T) {
	assert.Panics(t, func() { NewCSR(2, 2, []int{0, 1}, []int{0}, []float64{1}) })
	assert.Panics(t, func() { NewCSR(1, 2, []int{0, 2}, []int{1, 0}, []float64{1, 1}) }, "unsorted columns")
	assert.Panics(t, func() { NewCSR(1, 2, []int{0, 1}, []int{2}, []float64{1}) }, "column out of range")
	assert.NotPanics(t, func() { NewCSR(2, 2, []int{0, 1, 2}, []int{1, 0}, []float64{1, 1}) })
}

func TestKind(t *testing.T) {
	k, err := Kind(mat.NewDense(1, 1, nil))
	assert.NoError(t, err)
	assert.Equal(t, Dense, k)

	k, err = Kind(CSRFromDense(mat.NewDense(1, 1, []float64{1})))
	assert.NoError(t, err)
	assert.Equal(t, Sparse, k)

	_, err = Kind(mat.NewDiagDense(2, nil))
	assert.True(t, errors.Is(err, ErrUnsupportedMatrix))
}

func TestRowsKeepsRepresentation(t *testing.T) {
	dense := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	d := Rows(dense, []int{2, 1})
	_, ok := d.(*mat.Dense)
	assert.True(t, ok)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{5, 6, 3, 4}), d))

	s := Rows(CSRFromDense(dense), []int{1})
	_, ok = s.(*CSR)
	assert.True(t, ok)
	assert.Equal(t, 4.0, s.At(0, 1))

	if diff := cmp.Diff([]int{7, 9}, Labels([]int{7, 8, 9}, []int{0, 2})); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
}

func TestBlobs(t *testing.T) {
	r := rand.New(rand.NewSource(1337))
	d := Blobs(r, RingCenters(5, 3, 4), 10, 0.1)
	require.NoError(t, d.Validate())
	assert.Equal(t, 50, d.Len())
	assert.Equal(t, 5, d.NClass())
	assert.Equal(t, 3, d.NDim())
	assert.InDelta(t, 4, d.X.At(0, 0), 0.5)
}

func TestReadCSV(t *testing.T) {
	const in = `x0,x1,label
# comment
1.5, 2, 0
0, -1, 1
3,0,2
`
	d, err := ReadCSV(strings.NewReader(in), "mem", false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, d.Y)
	assert.True(t, mat.Equal(mat.NewDense(3, 2, []float64{1.5, 2, 0, -1, 3, 0}), d.X))

	s, err := ReadCSV(strings.NewReader(in), "mem", true)
	require.NoError(t, err)
	k, _ := Kind(s.X)
	assert.Equal(t, Sparse, k)

	_, err = ReadCSV(strings.NewReader("1,2,0\n1,x,1\n"), "bad", false)
	assert.Error(t, err)
	_, err = ReadCSV(strings.NewReader("1,2,0\n1,1\n"), "ragged", false)
	assert.Error(t, err)
	_, err = ReadCSV(strings.NewReader(""), "empty", false)
	assert.Error(t, err)
}
