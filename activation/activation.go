// Package activation provides the non-linearities used as hidden-layer transforms of extreme learning machines
// and as the transform between the layers of a recurrent stacked learner.
package activation

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/vecf64"
)

// Func is an activation function.
type Func int

const (
	Linear  Func = iota // identity
	Sigmoid             // 1 / (1 + exp(-x))
	RBF                 // exp(-(x - mean)²) between layers, a gaussian kernel in an ELM hidden layer
	Tanh                // 2 / (1 + exp(x)) - 1
	MAXFUNC
)

var ErrUnknown = errors.New("unknown activation")

var names = [...]string{
	Linear:  "linear",
	Sigmoid: "sigmoid",
	RBF:     "rbf",
	Tanh:    "tanh",
}

func (f Func) String() string {
	if f < 0 || f >= MAXFUNC {
		return fmt.Sprintf("Func(%d)", int(f))
	}
	return names[f]
}

// Parse returns the Func with the given name. "identity" is accepted as an alias of linear.
func Parse(name string) (Func, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "identity" {
		return Linear, nil
	}
	for i, n := range names {
		if n == name {
			return Func(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknown, "%q", name)
}

// OneOf reports whether f is in the allowed set.
func (f Func) OneOf(allowed ...Func) bool {
	for _, a := range allowed {
		if f == a {
			return true
		}
	}
	return false
}

// Apply returns f applied element-wise to a copy of a.
//
// RBF centers every column on its mean over the rows of a before applying the gaussian, so its result
// depends on the whole batch.
func (f Func) Apply(a mat.Matrix) *mat.Dense {
	retVal := mat.DenseCopyOf(a)
	raw := retVal.RawMatrix()
	switch f {
	case Linear:
	case Sigmoid:
		for i := 0; i < raw.Rows; i++ {
			SigmoidInPlace(raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols])
		}
	case Tanh:
		for i := 0; i < raw.Rows; i++ {
			TanhInPlace(raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols])
		}
	case RBF:
		centerColumns(retVal)
		for i := 0; i < raw.Rows; i++ {
			GaussianInPlace(raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols])
		}
	default:
		panic(errors.Wrapf(ErrUnknown, "%d", int(f)))
	}
	return retVal
}

// SigmoidInPlace computes 1/(1+exp(-a)).
func SigmoidInPlace(a []float64) {
	for i, v := range a {
		a[i] = 1 / (1 + math.Exp(-v))
	}
}

// TanhInPlace computes 2/(1+exp(a)) - 1, a reflected tanh(a/2).
func TanhInPlace(a []float64) {
	expInPlace(a)
	vecf64.Trans(a, 1)
	for i, v := range a {
		a[i] = 1 / v
	}
	vecf64.Scale(a, 2)
	vecf64.Trans(a, -1)
}

// GaussianInPlace computes exp(-a²).
func GaussianInPlace(a []float64) {
	vecf64.Mul(a, a)
	vecf64.Scale(a, -1)
	expInPlace(a)
}

func expInPlace(a []float64) {
	for i, v := range a {
		a[i] = math.Exp(v)
	}
}

func centerColumns(a *mat.Dense) {
	r, c := a.Dims()
	if r == 0 {
		return
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, a)
		mean := vecf64.Sum(col) / float64(r)
		for i := 0; i < r; i++ {
			a.Set(i, j, col[i]-mean)
		}
	}
}
