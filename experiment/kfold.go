package experiment

import (
	"log"
	"math/rand"
	"time"

	"github.com/gorgonia/r2/crossval"
	"github.com/gorgonia/r2/dataset"
	"github.com/pkg/errors"
)

// KFold fits a fresh classifier on the training rows of every fold and measures its test accuracy.
//
// Required keys: experiment_type ("k-fold"), n_folds, fold_seed (nil draws one), params (the classifier
// parameters), store_clf (keep the fitted classifiers), fit_c (false/nil, true/"random" or a fixed C).
func KFold(data *dataset.Dataset, conf Config, newClf Factory) (*Record, error) {
	if err := conf.Require(foldKeys...); err != nil {
		return nil, err
	}
	if err := conf.expectType("k-fold"); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	p, err := conf.params("params")
	if err != nil {
		return nil, err
	}
	p = conf.WithFitC(p)
	nFolds, err := intKey(conf, "n_folds")
	if err != nil {
		return nil, err
	}
	seed, err := conf.seed("fold_seed")
	if err != nil {
		return nil, err
	}
	storeClf, err := boolKey(conf, "store_clf")
	if err != nil {
		return nil, err
	}

	folds, err := crossval.KFold{N: nFolds, Shuffle: true}.Split(data.Len(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	rec := newRecord(conf)
	rec.Config["fold_seed"] = seed
	m := &rec.Monitors
	labels := data.Classes()

	for i, fold := range folds {
		clf, err := newClf(p)
		if err != nil {
			return nil, err
		}
		train, test := data.Subset(fold.Train), data.Subset(fold.Test)

		start := time.Now()
		if err := clf.Fit(train.X, train.Y); err != nil {
			return nil, errors.WithMessagef(err, "fold %d", i)
		}
		m.TrainTime = append(m.TrainTime, time.Since(start))
		if storeClf {
			m.Clf = append(m.Clf, clf)
		}

		start = time.Now()
		pred, err := clf.Predict(test.X)
		if err != nil {
			return nil, errors.WithMessagef(err, "fold %d", i)
		}
		m.TestTime = append(m.TestTime, time.Since(start))

		m.AccFold = append(m.AccFold, crossval.Accuracy(test.Y, pred))
		m.CM = append(m.CM, crossval.ConfusionMatrix(test.Y, pred, labels))
	}

	rec.Results.MeanAcc, m.Std = crossval.MeanStd(m.AccFold)
	m.NDim = data.NDim()
	m.NClass = data.NClass()
	m.DataName = data.Name
	log.Printf("%d-fold on %s: accuracy %.4f ± %.4f", nFolds, data.Name, rec.Results.MeanAcc, m.Std)
	return rec, nil
}
