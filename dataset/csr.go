package dataset

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSR is a sparse matrix in compressed sparse row layout. It implements mat.Matrix.
//
// The non zero values of row i are data[indptr[i]:indptr[i+1]], in the columns given by the same range of ind.
// Column indices within a row are sorted.
type CSR struct {
	r, c   int
	indptr []int
	ind    []int
	data   []float64
}

// NewCSR creates a CSR matrix from its raw parts. The slices are used as the backing store; it panics if they
// do not describe a valid r×c matrix.
func NewCSR(r, c int, indptr, ind []int, data []float64) *CSR {
	if r < 0 || c < 0 {
		panic(mat.ErrNegativeDimension)
	}
	if len(indptr) != r+1 || len(ind) != len(data) || indptr[r] != len(data) {
		panic(mat.ErrShape)
	}
	for i := 0; i < r; i++ {
		if indptr[i] > indptr[i+1] {
			panic(mat.ErrShape)
		}
		for k := indptr[i]; k < indptr[i+1]; k++ {
			if ind[k] < 0 || ind[k] >= c {
				panic(mat.ErrColAccess)
			}
			if k > indptr[i] && ind[k] <= ind[k-1] {
				panic(mat.ErrShape)
			}
		}
	}
	return &CSR{r: r, c: c, indptr: indptr, ind: ind, data: data}
}

// CSRFromDense compresses a, dropping its zeros.
func CSRFromDense(a mat.Matrix) *CSR {
	r, c := a.Dims()
	indptr := make([]int, r+1)
	var ind []int
	var data []float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := a.At(i, j); v != 0 {
				ind = append(ind, j)
				data = append(data, v)
			}
		}
		indptr[i+1] = len(data)
	}
	return &CSR{r: r, c: c, indptr: indptr, ind: ind, data: data}
}

func (m *CSR) Dims() (r, c int) { return m.r, m.c }

func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.r {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.c {
		panic(mat.ErrColAccess)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.ind[lo:hi], j)
	if k < hi && m.ind[k] == j {
		return m.data[k]
	}
	return 0
}

func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored values.
func (m *CSR) NNZ() int { return len(m.data) }

// DoRowNonZero calls fn for every stored value of row i.
func (m *CSR) DoRowNonZero(i int, fn func(j int, v float64)) {
	for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
		fn(m.ind[k], m.data[k])
	}
}

// ScaleRows returns a copy of m with every value of row i multiplied by s[i].
func (m *CSR) ScaleRows(s []float64) *CSR {
	if len(s) != m.r {
		panic(mat.ErrShape)
	}
	data := make([]float64, len(m.data))
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			data[k] = m.data[k] * s[i]
		}
	}
	return &CSR{r: m.r, c: m.c, indptr: m.indptr, ind: m.ind, data: data}
}

// SelectRows returns a new CSR made of the given rows of m, in order.
func (m *CSR) SelectRows(rows []int) *CSR {
	indptr := make([]int, len(rows)+1)
	var ind []int
	var data []float64
	for i, row := range rows {
		lo, hi := m.indptr[row], m.indptr[row+1]
		ind = append(ind, m.ind[lo:hi]...)
		data = append(data, m.data[lo:hi]...)
		indptr[i+1] = len(data)
	}
	return &CSR{r: len(rows), c: m.c, indptr: indptr, ind: ind, data: data}
}

// ToDense expands m.
func (m *CSR) ToDense() *mat.Dense {
	if m.r == 0 || m.c == 0 {
		return &mat.Dense{}
	}
	retVal := mat.NewDense(m.r, m.c, nil)
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			retVal.Set(i, m.ind[k], m.data[k])
		}
	}
	return retVal
}
