// Package linear provides a binary linear support vector classifier trained by dual coordinate descent on the
// hinge loss. The intercept is learned as the weight of an extra constant feature.
package linear

import (
	"math"
	"math/rand"

	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var ErrNotBinary = errors.New("linear SVC only separates two classes")

// SVC is a linear support vector classifier.
type SVC struct {
	Config
	r *rand.Rand

	classes []int
	w       []float64 // features, then the intercept
	iter    int
}

func New(conf Config) (*SVC, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	conf.Seed = estimator.ResolveSeed(conf.Seed)
	return &SVC{
		Config: conf,
		r:      rand.New(rand.NewSource(conf.Seed)),
	}, nil
}

// Must panics if err is not nil.
func Must(s *SVC, err error) *SVC {
	if err != nil {
		panic(err)
	}
	return s
}

func (s *SVC) Fit(X mat.Matrix, y []int) error {
	if err := estimator.CheckXy(X, y); err != nil {
		return err
	}
	classes := estimator.Unique(y)
	if len(classes) != 2 {
		return errors.Wrapf(ErrNotBinary, "got %d classes", len(classes))
	}
	rows := newRowView(X)
	n, f := X.Dims()

	signs := make([]float64, n)
	var npos int
	for i, label := range y {
		if label == classes[1] {
			signs[i] = 1
			npos++
			continue
		}
		signs[i] = -1
	}
	upper := [2]float64{s.C, s.C} // negative, positive
	if s.ClassWeight == Balanced {
		upper[0] = s.C * float64(n) / float64(2*(n-npos))
		upper[1] = s.C * float64(n) / float64(2*npos)
	}

	w := make([]float64, f+1)
	alpha := make([]float64, n)
	qd := make([]float64, n)
	for i := range qd {
		qd[i] = rows.sqNorm(i) + 1
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	var iter int
	for iter = 0; iter < s.MaxIter; iter++ {
		s.r.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		maxPG, minPG := math.Inf(-1), math.Inf(1)
		for _, i := range perm {
			yi := signs[i]
			u := upper[0]
			if yi > 0 {
				u = upper[1]
			}
			g := yi*(rows.dot(i, w[:f])+w[f]) - 1

			var pg float64
			switch {
			case alpha[i] == 0:
				pg = math.Min(g, 0)
			case alpha[i] == u:
				pg = math.Max(g, 0)
			default:
				pg = g
			}
			maxPG = math.Max(maxPG, pg)
			minPG = math.Min(minPG, pg)
			if math.Abs(pg) < 1e-12 {
				continue
			}

			old := alpha[i]
			alpha[i] = math.Min(math.Max(old-g/qd[i], 0), u)
			if d := (alpha[i] - old) * yi; d != 0 {
				rows.axpy(i, d, w[:f])
				w[f] += d
			}
		}
		if maxPG-minPG <= s.Tol {
			iter++
			break
		}
	}

	s.classes = classes
	s.w = w
	s.iter = iter
	return nil
}

// Iterations returns the number of passes the last Fit took.
func (s *SVC) Iterations() int { return s.iter }

// Coef returns the feature weights and the intercept.
func (s *SVC) Coef() (w []float64, b float64) {
	if s.w == nil {
		return nil, 0
	}
	f := len(s.w) - 1
	return s.w[:f], s.w[f]
}

// DecisionFunction returns the signed distance w·x + b as a single column.
func (s *SVC) DecisionFunction(X mat.Matrix) (*mat.Dense, error) {
	if s.w == nil {
		return nil, errors.Wrap(estimator.ErrNotFitted, "linear SVC")
	}
	n, f := X.Dims()
	if f != len(s.w)-1 {
		return nil, errors.Errorf("X has %d features, the classifier expects %d", f, len(s.w)-1)
	}
	if n == 0 {
		return &mat.Dense{}, nil
	}
	rows := newRowView(X)
	retVal := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		retVal.Set(i, 0, rows.dot(i, s.w[:f])+s.w[f])
	}
	return retVal, nil
}

func (s *SVC) Predict(X mat.Matrix) ([]int, error) {
	scores, err := s.DecisionFunction(X)
	if err != nil {
		return nil, err
	}
	n, _ := X.Dims()
	retVal := make([]int, n)
	for i := range retVal {
		if scores.At(i, 0) > 0 {
			retVal[i] = s.classes[1]
		} else {
			retVal[i] = s.classes[0]
		}
	}
	return retVal, nil
}

func (s *SVC) Classes() []int { return s.classes }

// Family implements estimator.Familier.
func (s *SVC) Family() estimator.Family { return estimator.Margin }

func (s *SVC) GetParams() estimator.Params {
	return estimator.Params{
		"C":            s.C,
		"class_weight": s.ClassWeight.String(),
		"max_iter":     s.MaxIter,
		"tol":          s.Tol,
		"seed":         s.Seed,
	}
}

// SetParams updates the configuration. Nothing changes if any parameter is unknown or invalid.
func (s *SVC) SetParams(p estimator.Params) error {
	conf := s.Config
	_, reseed := p["seed"]
	for _, k := range p.Keys() {
		var err error
		switch k {
		case "C":
			conf.C, err = p.Float(k)
		case "class_weight":
			if w, ok := p[k].(Weighting); ok {
				conf.ClassWeight = w
				break
			}
			var name string
			if name, err = p.String(k); err == nil {
				conf.ClassWeight, err = ParseWeighting(name)
			}
		case "max_iter":
			conf.MaxIter, err = p.Int(k)
		case "tol":
			conf.Tol, err = p.Float(k)
		case "seed":
			conf.Seed, err = p.Int64(k)
		default:
			err = estimator.UnknownParam("linear SVC", k)
		}
		if err != nil {
			return err
		}
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	if reseed {
		conf.Seed = estimator.ResolveSeed(conf.Seed)
		s.r = rand.New(rand.NewSource(conf.Seed))
	}
	s.Config = conf
	return nil
}

func (s *SVC) Clone() estimator.Classifier {
	return &SVC{
		Config: s.Config,
		r:      rand.New(rand.NewSource(s.Seed)),
	}
}

// rowView gives row access to dense, sparse and generic matrices.
type rowView struct {
	dense  *mat.Dense
	sparse *dataset.CSR
	other  mat.Matrix
	buf    []float64
}

func newRowView(X mat.Matrix) rowView {
	switch x := X.(type) {
	case *mat.Dense:
		return rowView{dense: x}
	case *dataset.CSR:
		return rowView{sparse: x}
	}
	_, c := X.Dims()
	return rowView{other: X, buf: make([]float64, c)}
}

func (v rowView) row(i int) []float64 {
	if v.dense != nil {
		return v.dense.RawRowView(i)
	}
	mat.Row(v.buf, i, v.other)
	return v.buf
}

func (v rowView) dot(i int, w []float64) float64 {
	if v.sparse != nil {
		var s float64
		v.sparse.DoRowNonZero(i, func(j int, x float64) { s += x * w[j] })
		return s
	}
	return floats.Dot(v.row(i), w)
}

// axpy adds a·xᵢ to w.
func (v rowView) axpy(i int, a float64, w []float64) {
	if v.sparse != nil {
		v.sparse.DoRowNonZero(i, func(j int, x float64) { w[j] += a * x })
		return
	}
	floats.AddScaled(w, a, v.row(i))
}

func (v rowView) sqNorm(i int) float64 {
	if v.sparse != nil {
		var s float64
		v.sparse.DoRowNonZero(i, func(_ int, x float64) { s += x * x })
		return s
	}
	r := v.row(i)
	return floats.Dot(r, r)
}
