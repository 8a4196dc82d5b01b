package activation

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		want    Func
		wantErr bool
	}{
		{"linear", Linear, false},
		{"identity", Linear, false},
		{"Sigmoid", Sigmoid, false},
		{" rbf ", RBF, false},
		{"tanh", Tanh, false},
		{"relu", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		f, err := Parse(c.name)
		if c.wantErr {
			if !errors.Is(err, ErrUnknown) {
				t.Errorf("Parse(%q): expected ErrUnknown, got %v", c.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", c.name, err)
			continue
		}
		if f != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.name, f, c.want)
		}
		if c.name == "linear" || c.name == "tanh" {
			assert.Equal(t, c.name, f.String())
		}
	}
	assert.Equal(t, "Func(9)", Func(9).String())
}

func TestApply(t *testing.T) {
	assert := assert.New(t)
	a := mat.NewDense(2, 2, []float64{0, 1, -2, 3})

	s := Sigmoid.Apply(a)
	assert.InDelta(0.5, s.At(0, 0), 1e-12)
	assert.InDelta(1/(1+math.Exp(2)), s.At(1, 0), 1e-12)

	th := Tanh.Apply(a)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(-math.Tanh(a.At(i, j)/2), th.At(i, j), 1e-12)
		}
	}

	// columns are centered: column 0 has mean -1, column 1 has mean 2
	r := RBF.Apply(a)
	assert.InDelta(math.Exp(-1), r.At(0, 0), 1e-12)
	assert.InDelta(math.Exp(-1), r.At(1, 0), 1e-12)
	assert.InDelta(math.Exp(-1), r.At(0, 1), 1e-12)

	l := Linear.Apply(a)
	assert.True(mat.Equal(a, l))

	// the input is never modified
	assert.Equal(0.0, a.At(0, 0))
	assert.Equal(-2.0, a.At(1, 0))
}

func TestOneOf(t *testing.T) {
	assert.True(t, RBF.OneOf(Linear, Sigmoid, RBF))
	assert.False(t, Tanh.OneOf(Linear, Sigmoid, RBF))
}
