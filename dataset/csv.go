package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ReadCSV reads a dataset where every record holds the features followed by an integer label.
// A first record whose label does not parse is treated as a header. Records starting with '#' are skipped.
// When sparse is true the features are returned as a *CSR.
func ReadCSV(r io.Reader, name string, sparse bool) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var data []float64
	var Y []int
	cols := -1
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
		if len(rec) < 2 {
			return nil, errors.Errorf("%s:%d: need at least one feature and a label, got %d fields", name, line, len(rec))
		}
		label, err := strconv.Atoi(strings.TrimSpace(rec[len(rec)-1]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, errors.Wrapf(err, "%s:%d: label", name, line)
		}
		if cols < 0 {
			cols = len(rec) - 1
		}
		if len(rec)-1 != cols {
			return nil, errors.Errorf("%s:%d: expected %d features, got %d", name, line, cols, len(rec)-1)
		}
		for j, field := range rec[:cols] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d: feature %d", name, line, j)
			}
			data = append(data, v)
		}
		Y = append(Y, label)
	}
	if len(Y) == 0 {
		return nil, errors.Errorf("%s: no records", name)
	}

	var X mat.Matrix = mat.NewDense(len(Y), cols, data)
	if sparse {
		X = CSRFromDense(X)
	}
	return &Dataset{Name: name, X: X, Y: Y}, nil
}

// LoadCSV opens filename and reads it with ReadCSV. The dataset is named after the file.
func LoadCSV(filename string, sparse bool) (*Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return ReadCSV(f, filename, sparse)
}
