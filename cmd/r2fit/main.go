package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gorgonia/r2"
	"github.com/gorgonia/r2/dataset"
	"github.com/gorgonia/r2/estimator"
	"github.com/gorgonia/r2/experiment"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/pkg/errors"
)

var (
	csvFile   = flag.String("csv", "", "CSV file to fit, label in the last column. Blobs are generated if empty")
	sparse    = flag.Bool("sparse", false, "load the CSV file as a sparse matrix")
	nClasses  = flag.Int("classes", 3, "number of blobs to generate")
	nPer      = flag.Int("n", 100, "points per blob")
	model     = flag.String("model", "svm", "base learner: svm or elm")
	hidden    = flag.Int("h", 60, "hidden units of the elm base learner")
	depth     = flag.Int("depth", 7, "number of layers")
	beta      = flag.Float64("beta", 0.1, "feedback blend coefficient")
	act       = flag.String("activation", "sigmoid", "inter-layer activation: sigmoid, tanh or rbf")
	recurrent = flag.Bool("recurrent", true, "accumulate feedback across layers")
	scale     = flag.Bool("scale", true, "rescale the input of every layer")
	usePrev   = flag.Bool("use-prev", false, "perturb the previous layer's input instead of the first")
	fitC      = flag.String("fit-c", "", `regularization search: "" (none) or "random"`)
	folds     = flag.Int("folds", 5, "number of folds")
	seed      = flag.Int64("seed", estimator.NoSeed, "random seed, negative to draw one")
	grid      = flag.Bool("grid", false, "grid search C and beta before the k-fold experiment")
	out       = flag.String("out", "", "write the result records to this CSV file")
	dot       = flag.String("dot", "", "fit once on all the data and write the layer graph to this file")
)

func loadData() (*dataset.Dataset, error) {
	if *csvFile != "" {
		return dataset.LoadCSV(*csvFile, *sparse)
	}
	r := rand.New(rand.NewSource(estimator.ResolveSeed(*seed)))
	d := dataset.Blobs(r, dataset.RingCenters(*nClasses, 2, 3), *nPer, 1)
	d.Name = fmt.Sprintf("%d blobs", *nClasses)
	return d, nil
}

func factory() (experiment.Factory, error) {
	switch *model {
	case "svm":
		return experiment.SVMLearner, nil
	case "elm":
		return experiment.ELMLearner(*hidden), nil
	}
	return nil, errors.Errorf("unknown model %q", *model)
}

func params() estimator.Params {
	p := estimator.Params{
		"depth":      *depth,
		"beta":       *beta,
		"activation": *act,
		"recurrent":  *recurrent,
		"scale":      *scale,
		"use_prev":   *usePrev,
		"seed":       *seed,
	}
	if *seed < 0 {
		p["seed"] = nil
	}
	return p
}

func main() {
	flag.Parse()
	data, err := loadData()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	newClf, err := factory()
	if err != nil {
		log.Fatal(err)
	}
	var fc interface{} = false
	if *fitC != "" {
		fc = *fitC
	}
	log.Printf("Loaded %s: %d samples, %d features, %d classes", data.Name, data.Len(), data.NDim(), data.NClass())

	var records []*experiment.Record
	p := params()
	if *grid {
		pw := progress.NewWriter()
		pw.SetMessageLength(40)
		pw.SetTrackerLength(15)
		pw.SetTrackerPosition(progress.PositionRight)
		pw.SetUpdateFrequency(100 * time.Millisecond)
		pw.Style().Options.PercentFormat = "%2.0f%%"
		go pw.Render()

		g := experiment.DefaultGrid()
		for k, v := range p {
			if k != "C" && k != "beta" {
				g[k] = []interface{}{v}
			}
		}
		gridRec, foldRec, err := experiment.FitOnDataset(data, newClf, g,
			experiment.Config{"fit_c": fc},
			experiment.Config{"n_folds": *folds, "fold_seed": seedOrNil()},
			pw)
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
		if err != nil {
			log.Fatalf("%+v", err)
		}
		experiment.RenderTable(os.Stdout, gridRec)
		experiment.RenderTable(os.Stdout, foldRec)
		records = append(records, gridRec, foldRec)
		p = gridRec.Results.BestParams
	} else {
		rec, err := experiment.KFold(data, experiment.Config{
			"experiment_type": "k-fold",
			"n_folds":         *folds,
			"fold_seed":       seedOrNil(),
			"params":          p,
			"store_clf":       false,
			"fit_c":           fc,
		}, newClf)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		experiment.RenderTable(os.Stdout, rec)
		records = append(records, rec)
	}

	if *out != "" {
		if err := experiment.Dump(*out, records...); err != nil {
			log.Fatal(err)
		}
	}

	if *dot != "" {
		clf, err := newClf(experiment.Config{"fit_c": fc}.WithFitC(p))
		if err != nil {
			log.Fatal(err)
		}
		if err := clf.Fit(data.X, data.Y); err != nil {
			log.Fatalf("%+v", err)
		}
		l := clf.(*r2.Learner)
		if err := os.WriteFile(*dot, []byte(l.ToDot()), 0644); err != nil {
			log.Fatal(err)
		}
		l.Log(os.Stderr)
	}
}

func seedOrNil() interface{} {
	if *seed < 0 {
		return nil
	}
	return *seed
}
