package experiment

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
)

var csvHeader = []string{"data_name", "experiment_type", "n_dim", "n_class", "mean_acc", "std", "best_score", "train_time", "test_time", "grid_time", "params"}

// WriteCSV writes one line per record.
func WriteCSV(w io.Writer, records ...*Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		typ, _ := r.Config["experiment_type"].(string)
		params := r.Results.BestParams
		if params == nil {
			params, _ = r.Config.params("params")
		}
		record := []string{
			r.Monitors.DataName,
			typ,
			strconv.Itoa(r.Monitors.NDim),
			strconv.Itoa(r.Monitors.NClass),
			strconv.FormatFloat(r.Results.MeanAcc, 'f', 4, 64),
			strconv.FormatFloat(r.Monitors.Std, 'f', 4, 64),
			strconv.FormatFloat(r.Results.BestScore, 'f', 4, 64),
			strconv.FormatFloat(totalSeconds(r.Monitors.TrainTime), 'f', 3, 64),
			strconv.FormatFloat(totalSeconds(r.Monitors.TestTime), 'f', 3, 64),
			strconv.FormatFloat(r.Monitors.GridTime.Seconds(), 'f', 3, 64),
			fmt.Sprintf("%v", params),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Dump writes the records to a CSV file, replacing it if it exists.
func Dump(filename string, records ...*Record) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, records...)
}

// RenderTable writes a human readable summary of the record to w.
func RenderTable(w io.Writer, r *Record) {
	m := r.Monitors
	if len(m.AccFold) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(fmt.Sprintf("%d-fold on %s (%d features, %d classes)", len(m.AccFold), m.DataName, m.NDim, m.NClass))
		t.AppendHeader(table.Row{"FOLD", "ACCURACY", "TRAIN", "TEST"})
		for i, acc := range m.AccFold {
			row := table.Row{i + 1, fmt.Sprintf("%.4f", acc), "", ""}
			if i < len(m.TrainTime) {
				row[2] = m.TrainTime[i].String()
			}
			if i < len(m.TestTime) {
				row[3] = m.TestTime[i].String()
			}
			t.AppendRow(row)
		}
		t.AppendFooter(table.Row{"MEAN", fmt.Sprintf("%.4f ± %.4f", r.Results.MeanAcc, m.Std), "", ""})
		t.Render()
	}

	if len(m.Combinations) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(fmt.Sprintf("Grid search on %s (%v)", m.DataName, m.GridTime))
		t.AppendHeader(table.Row{"PARAMS", "MEAN", "STDDEV"})
		for i, p := range m.Combinations {
			t.AppendRow(table.Row{fmt.Sprintf("%v", p), fmt.Sprintf("%.4f", m.MeanFoldScores[i]), fmt.Sprintf("%.4f", m.StdFoldScores[i])})
		}
		t.AppendSeparator()
		t.AppendRow(table.Row{"BEST", fmt.Sprintf("%.4f", r.Results.BestScore), ""})
		t.Render()
	}
}
