package experiment

import (
	"log"
	"sort"
	"time"

	"github.com/gorgonia/r2/crossval"
	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/pkg/errors"
)

// Grid scores every combination of a parameter grid with k-fold cross validation. Combinations are evaluated in
// parallel. A failing combination is reported but does not stop the others; Grid only fails if every combination
// failed.
//
// Required keys: experiment_type ("grid"), param_grid (map[string][]interface{}), scoring (only "accuracy"),
// fit_c, cv (number of unshuffled folds), refit (fit the best parameters on all the data), store_clf. The optional
// key n_jobs bounds the number of workers.
func Grid(data *dataset.Dataset, conf Config, newClf Factory, pw progress.Writer) (*Record, error) {
	if err := conf.Require(gridKeys...); err != nil {
		return nil, err
	}
	if err := conf.expectType("grid"); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if scoring, _ := estimator.Params(conf).String("scoring"); scoring != "accuracy" {
		return nil, errors.Errorf("unsupported scoring %v", conf["scoring"])
	}
	grid, ok := conf["param_grid"].(map[string][]interface{})
	if !ok {
		return nil, errors.Wrapf(estimator.ErrParamType, "param_grid: want map[string][]interface{}, got %T", conf["param_grid"])
	}
	nFolds, err := intKey(conf, "cv")
	if err != nil {
		return nil, err
	}
	refit, err := boolKey(conf, "refit")
	if err != nil {
		return nil, err
	}
	storeClf, err := boolKey(conf, "store_clf")
	if err != nil {
		return nil, err
	}
	workers := 0
	if _, ok := conf["n_jobs"]; ok {
		if workers, err = intKey(conf, "n_jobs"); err != nil {
			return nil, err
		}
	}

	folds, err := crossval.KFold{N: nFolds}.Split(data.Len(), nil)
	if err != nil {
		return nil, err
	}
	combos := Expand(grid)
	fitC := conf.fitC()
	for _, p := range combos {
		p["fit_c"] = fitC
	}

	rec := newRecord(conf)
	m := &rec.Monitors
	m.Combinations = combos
	m.MeanFoldScores = make([]float64, len(combos))
	m.StdFoldScores = make([]float64, len(combos))
	failed := make([]bool, len(combos))

	tasks := make([]Task, len(combos))
	for i := range combos {
		i := i
		tasks[i] = func() error {
			failed[i] = true
			clf, err := newClf(combos[i])
			if err != nil {
				return err
			}
			scores, err := crossval.Scores(clf, data.X, data.Y, folds)
			if err != nil {
				return err
			}
			m.MeanFoldScores[i], m.StdFoldScores[i] = crossval.MeanStd(scores)
			failed[i] = false
			return nil
		}
	}

	start := time.Now()
	sweepErr := Sweep(tasks, workers, pw, "Grid search on "+data.Name)
	m.GridTime = time.Since(start)
	for _, err := range Errors(sweepErr) {
		log.Printf("Grid search on %s: %v", data.Name, err)
	}

	best := -1
	for i, s := range m.MeanFoldScores {
		if failed[i] {
			continue
		}
		if best < 0 || s > m.MeanFoldScores[best] {
			best = i
		}
	}
	if best < 0 {
		return nil, errors.WithMessage(sweepErr, "every grid combination failed")
	}
	rec.Results.BestParams = combos[best]
	rec.Results.BestScore = m.MeanFoldScores[best]
	for i, s := range m.MeanFoldScores {
		if !failed[i] && s == rec.Results.BestScore {
			m.BestStd = append(m.BestStd, m.StdFoldScores[i])
		}
	}

	if rec.Results.BestClf, err = newClf(rec.Results.BestParams); err != nil {
		return nil, err
	}
	if refit {
		if err := rec.Results.BestClf.Fit(data.X, data.Y); err != nil {
			return nil, errors.WithMessage(err, "refit")
		}
	}
	if storeClf {
		m.Clf = []estimator.Classifier{rec.Results.BestClf}
	}
	m.NDim = data.NDim()
	m.NClass = data.NClass()
	m.DataName = data.Name
	log.Printf("Grid search on %s: %d combinations in %v. Best accuracy %.4f with %v", data.Name, len(combos), m.GridTime, rec.Results.BestScore, rec.Results.BestParams)
	return rec, nil
}

// Expand returns the cartesian product of the grid, iterating the sorted keys with the last key varying
// fastest.
func Expand(grid map[string][]interface{}) []estimator.Params {
	keys := make([]string, 0, len(grid))
	for k := range grid {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	retVal := []estimator.Params{{}}
	for _, k := range keys {
		var next []estimator.Params
		for _, p := range retVal {
			for _, v := range grid[k] {
				q := p.Clone()
				q[k] = v
				next = append(next, q)
			}
		}
		retVal = next
	}
	return retVal
}

// FitOnDataset searches grid (DefaultGrid if nil) with 5-fold cross validation and then runs a 5-fold experiment
// with the best parameters. gridConf and foldConf override the defaults of either stage.
func FitOnDataset(data *dataset.Dataset, newClf Factory, grid map[string][]interface{}, gridConf, foldConf Config, pw progress.Writer) (gridRec, foldRec *Record, err error) {
	if grid == nil {
		grid = DefaultGrid()
	}
	gc := Config{
		"experiment_name": "grid_search_on_" + data.Name,
		"experiment_type": "grid",
		"refit":           true,
		"scoring":         "accuracy",
		"fit_c":           false,
		"cv":              5,
		"store_clf":       false,
		"param_grid":      grid,
	}.Update(gridConf)
	if gridRec, err = Grid(data, gc, newClf, pw); err != nil {
		return nil, nil, err
	}

	fc := Config{
		"experiment_name": "k-fold_testing_on_" + data.Name,
		"experiment_type": "k-fold",
		"n_folds":         5,
		"fit_c":           gc["fit_c"],
		"fold_seed":       nil,
		"store_clf":       true,
		"params":          withoutFitC(gridRec.Results.BestParams),
	}.Update(foldConf)
	if foldRec, err = KFold(data, fc, newClf); err != nil {
		return gridRec, nil, err
	}
	return gridRec, foldRec, nil
}

func withoutFitC(p estimator.Params) estimator.Params {
	retVal := p.Clone()
	delete(retVal, "fit_c")
	return retVal
}
