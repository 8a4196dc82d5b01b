package estimator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParamsConversions(t *testing.T) {
	assert := assert.New(t)
	p := Params{"C": 10, "beta": 0.5, "depth": 3.0, "seed": int64(7), "scale": true, "activation": "sigmoid"}

	c, err := p.Float("C")
	assert.NoError(err)
	assert.Equal(10.0, c)

	d, err := p.Int("depth")
	assert.NoError(err)
	assert.Equal(3, d)

	s, err := p.Int64("seed")
	assert.NoError(err)
	assert.Equal(int64(7), s)

	b, err := p.Bool("scale")
	assert.NoError(err)
	assert.True(b)

	a, err := p.String("activation")
	assert.NoError(err)
	assert.Equal("sigmoid", a)

	_, err = p.Int("beta")
	assert.True(errors.Is(err, ErrParamType), "0.5 is not an int: %v", err)

	_, err = p.Bool("C")
	assert.True(errors.Is(err, ErrParamType))

	assert.Equal([]string{"C", "activation", "beta", "depth", "scale", "seed"}, p.Keys())
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []int{-1, 0, 3, 5}, Unique([]int{5, 3, 3, -1, 0, 5}))
	assert.Nil(t, Unique(nil))
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, int64(42), ResolveSeed(42))
	s := ResolveSeed(NoSeed)
	assert.True(t, s >= 0)
}
