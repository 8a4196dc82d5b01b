package experiment

import (
	"time"

	"github.com/gorgonia/r2/estimator"
	"gonum.org/v1/gonum/mat"
)

// Record is the outcome of an experiment.
type Record struct {
	Config   Config
	Results  Results
	Monitors Monitors
}

type Results struct {
	// grid search
	BestParams estimator.Params
	BestScore  float64
	BestClf    estimator.Classifier

	// k-fold
	MeanAcc float64
}

// Monitors hold everything measured along the way.
type Monitors struct {
	// grid search
	GridTime       time.Duration
	Combinations   []estimator.Params
	MeanFoldScores []float64
	StdFoldScores  []float64
	BestStd        []float64

	// k-fold
	AccFold   []float64
	TrainTime []time.Duration
	TestTime  []time.Duration
	CM        []*mat.Dense
	Std       float64

	Clf []estimator.Classifier

	NDim     int
	NClass   int
	DataName string
}

func newRecord(conf Config) *Record {
	return &Record{Config: conf.Clone()}
}

func totalSeconds(ds []time.Duration) float64 {
	var t time.Duration
	for _, d := range ds {
		t += d
	}
	return t.Seconds()
}
