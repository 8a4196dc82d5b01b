package dataset

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Blobs draws n points around each center from an isotropic gaussian with the given standard deviation.
// Points of center k are labelled k. Rows are grouped by center.
func Blobs(r *rand.Rand, centers [][]float64, n int, std float64) *Dataset {
	if len(centers) == 0 || n <= 0 {
		return &Dataset{Name: "blobs", X: &mat.Dense{}}
	}
	dims := len(centers[0])
	X := mat.NewDense(n*len(centers), dims, nil)
	Y := make([]int, 0, n*len(centers))
	row := 0
	for k, c := range centers {
		for i := 0; i < n; i++ {
			for j := 0; j < dims; j++ {
				X.Set(row, j, c[j]+std*r.NormFloat64())
			}
			Y = append(Y, k)
			row++
		}
	}
	return &Dataset{Name: "blobs", X: X, Y: Y}
}

// RingCenters returns k centers spread evenly on a circle of the given radius in the first two dimensions of a
// dims-dimensional space.
func RingCenters(k, dims int, radius float64) [][]float64 {
	retVal := make([][]float64, k)
	for i := range retVal {
		c := make([]float64, dims)
		theta := 2 * math.Pi * float64(i) / float64(k)
		c[0] = radius * math.Cos(theta)
		if dims > 1 {
			c[1] = radius * math.Sin(theta)
		}
		retVal[i] = c
	}
	return retVal
}
