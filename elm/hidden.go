package elm

import (
	"github.com/gorgonia/r2/activation"
	"github.com/gorgonia/r2/dataset"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type maebe struct {
	err error
}

func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// matrix binds a row-major r×c backing to a new node of g.
func (m *maebe) matrix(g *G.ExprGraph, r, c int, backing []float64, name string) *G.Node {
	if m.err != nil {
		return nil
	}
	if len(backing) != r*c {
		m.err = errors.Errorf("%s: backing of length %d cannot hold a %d×%d matrix", name, len(backing), r, c)
		return nil
	}
	t := tensor.New(tensor.WithShape(r, c), tensor.WithBacking(backing))
	return G.NewMatrix(g, tensor.Float64, G.WithShape(r, c), G.WithName(name), G.WithValue(t))
}

// hidden maps X to the hidden representation H of the network:
//
//	linear:  H = XW
//	sigmoid: H = σ(XW + b)
//	rbf:     H = exp(-b ⊙ (‖x‖² + ‖w‖² - 2XW))
func (e *ELM) hidden(X mat.Matrix) (*mat.Dense, error) {
	n, f := X.Dims()
	if f != e.features {
		return nil, errors.Errorf("X has %d features, the network expects %d", f, e.features)
	}
	if n == 0 {
		return &mat.Dense{}, nil
	}
	x := rowMajor(dataset.AsDense(X))
	h := e.H

	g := G.NewGraph()
	var m maebe
	xn := m.matrix(g, n, f, x.RawMatrix().Data, "X")
	wn := m.matrix(g, f, h, rowMajor(e.w).RawMatrix().Data, "W")
	xw := m.do(func() (*G.Node, error) { return G.Mul(xn, wn) })

	var out *G.Node
	switch e.Activation {
	case activation.Linear:
		out = xw
	case activation.Sigmoid:
		bn := m.matrix(g, 1, h, e.b, "b")
		z := m.do(func() (*G.Node, error) { return G.BroadcastAdd(xw, bn, nil, []byte{0}) })
		out = m.do(func() (*G.Node, error) { return G.Sigmoid(z) })
	case activation.RBF:
		xs := m.matrix(g, n, 1, rowSquares(x), "‖x‖²")
		ws := m.matrix(g, 1, h, rowSquares(e.w.T()), "‖w‖²")
		bn := m.matrix(g, 1, h, e.b, "b")
		dist := m.do(func() (*G.Node, error) { return G.BroadcastAdd(xs, ws, []byte{1}, []byte{0}) })
		dist = m.do(func() (*G.Node, error) { return G.Sub(dist, xw) })
		dist = m.do(func() (*G.Node, error) { return G.Sub(dist, xw) })
		z := m.do(func() (*G.Node, error) { return G.BroadcastHadamardProd(dist, bn, nil, []byte{0}) })
		z = m.do(func() (*G.Node, error) { return G.Neg(z) })
		out = m.do(func() (*G.Node, error) { return G.Exp(z) })
	default:
		return nil, errors.Wrapf(activation.ErrUnknown, "%v is not a hidden layer activation", e.Activation)
	}
	if m.err != nil {
		return nil, m.err
	}

	var val G.Value
	G.Read(out, &val)
	vm := G.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		return nil, errors.WithStack(err)
	}
	data, ok := val.Data().([]float64)
	if !ok {
		return nil, errors.Errorf("hidden layer produced %T", val.Data())
	}
	backing := make([]float64, n*h)
	copy(backing, data)
	return mat.NewDense(n, h, backing), nil
}

// rowMajor returns a matrix whose raw backing is exactly r×c long.
func rowMajor(a *mat.Dense) *mat.Dense {
	raw := a.RawMatrix()
	if raw.Stride == raw.Cols && len(raw.Data) == raw.Rows*raw.Cols {
		return a
	}
	return mat.DenseCopyOf(a)
}

func rowSquares(a mat.Matrix) []float64 {
	r, c := a.Dims()
	retVal := make([]float64, r)
	for i := 0; i < r; i++ {
		var s float64
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			s += v * v
		}
		retVal[i] = s
	}
	return retVal
}
