// Package dataset holds labelled feature matrices and the helpers to build, load and slice them.
//
// Two feature representations are recognized: dense (*mat.Dense) and sparse (*CSR). Anything else is rejected
// with ErrUnsupportedMatrix wherever the representation matters.
package dataset

import (
	"fmt"

	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var ErrUnsupportedMatrix = errors.New("unsupported feature matrix representation")

// Representation is the storage layout of a feature matrix.
type Representation int

const (
	Dense Representation = iota
	Sparse
)

func (r Representation) String() string {
	switch r {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	}
	return fmt.Sprintf("Representation(%d)", int(r))
}

// Kind returns the representation of X.
func Kind(X mat.Matrix) (Representation, error) {
	switch X.(type) {
	case *mat.Dense:
		return Dense, nil
	case *CSR:
		return Sparse, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedMatrix, "got %T", X)
}

// AsDense returns X as a *mat.Dense. Dense matrices are returned as is; anything else is copied.
func AsDense(X mat.Matrix) *mat.Dense {
	switch x := X.(type) {
	case *mat.Dense:
		return x
	case *CSR:
		return x.ToDense()
	}
	return mat.DenseCopyOf(X)
}

// Rows returns the given rows of X, keeping its representation.
func Rows(X mat.Matrix, rows []int) mat.Matrix {
	if x, ok := X.(*CSR); ok {
		return x.SelectRows(rows)
	}
	_, c := X.Dims()
	if len(rows) == 0 || c == 0 {
		return &mat.Dense{}
	}
	retVal := mat.NewDense(len(rows), c, nil)
	buf := make([]float64, c)
	for i, row := range rows {
		mat.Row(buf, row, X)
		retVal.SetRow(i, buf)
	}
	return retVal
}

// Labels returns y[rows].
func Labels(y []int, rows []int) []int {
	retVal := make([]int, len(rows))
	for i, row := range rows {
		retVal[i] = y[row]
	}
	return retVal
}

// Dataset is a feature matrix with one integer label per row.
type Dataset struct {
	Name string
	X    mat.Matrix
	Y    []int
}

// NDim returns the number of features.
func (d *Dataset) NDim() int {
	_, c := d.X.Dims()
	return c
}

// Classes returns the sorted distinct labels.
func (d *Dataset) Classes() []int { return estimator.Unique(d.Y) }

// NClass returns the number of distinct labels.
func (d *Dataset) NClass() int { return len(d.Classes()) }

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.Y) }

// Subset returns the dataset restricted to the given rows.
func (d *Dataset) Subset(rows []int) *Dataset {
	return &Dataset{
		Name: d.Name,
		X:    Rows(d.X, rows),
		Y:    Labels(d.Y, rows),
	}
}

// Validate checks that X and Y agree and that X has a recognized representation.
func (d *Dataset) Validate() error {
	if d.X == nil {
		return errors.Errorf("dataset %q has no features", d.Name)
	}
	if _, err := Kind(d.X); err != nil {
		return errors.WithMessage(err, d.Name)
	}
	return estimator.CheckXy(d.X, d.Y)
}
