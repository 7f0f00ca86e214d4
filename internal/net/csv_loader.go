package net

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dataset holds parallel rows of training inputs and targets.
type Dataset struct {
	Samples [][]float64
	Labels  [][]float64
}

// LoadCSV loads data from a CSV file.
// labelCols specifies the indices of columns to be used as labels.
// All other columns are used as features.
// hasHeader skips the first line if true.
func LoadCSV(filename string, labelCols []int, hasHeader bool) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadCSV(file, labelCols, hasHeader)
}

// ReadCSV reads a dataset from r. See LoadCSV.
func ReadCSV(r io.Reader, labelCols []int, hasHeader bool) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	if len(records) == 0 {
		return nil, errors.Wrap(ErrNotEnoughTrainingData, "csv file is empty")
	}
	if hasHeader {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, errors.Wrap(ErrNotEnoughTrainingData, "csv file has no data rows")
	}

	return ParseRecords(records, labelCols)
}

// ParseRecords coerces string cells to floats and splits each row into
// features and labels. Labels keep the order given in labelCols. A cell
// that is not a number fails with ErrNumericParse.
func ParseRecords(records [][]string, labelCols []int) (*Dataset, error) {
	if len(records) == 0 {
		return &Dataset{}, nil
	}

	numCols := len(records[0])
	isLabelCol := make(map[int]bool)
	for _, col := range labelCols {
		if col < 0 || col >= numCols {
			return nil, errors.Wrapf(ErrInvalidOutputShape, "label column %d out of range [0, %d)", col, numCols)
		}
		isLabelCol[col] = true
	}

	samples := make([][]float64, len(records))
	labels := make([][]float64, len(records))

	for i, record := range records {
		if len(record) != numCols {
			return nil, errors.Wrapf(ErrInvalidInputShape,
				"inconsistent number of columns at row %d: got %d, want %d", i, len(record), numCols)
		}

		sampleRow := make([]float64, 0, numCols-len(isLabelCol))
		labelValues := make(map[int]float64, len(isLabelCol))

		for j, valStr := range record {
			val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
			if err != nil {
				return nil, errors.Wrapf(ErrNumericParse, "row %d, col %d: %q", i, j, valStr)
			}

			if isLabelCol[j] {
				labelValues[j] = val
			} else {
				sampleRow = append(sampleRow, val)
			}
		}

		labelRow := make([]float64, 0, len(labelCols))
		for _, col := range labelCols {
			labelRow = append(labelRow, labelValues[col])
		}

		samples[i] = sampleRow
		labels[i] = labelRow
	}

	return &Dataset{
		Samples: samples,
		Labels:  labels,
	}, nil
}

// Normalize performs min-max normalization on the samples, column by column.
// Constant columns become 0.
func (d *Dataset) Normalize() {
	if len(d.Samples) == 0 {
		return
	}

	numFeatures := len(d.Samples[0])
	min := make([]float64, numFeatures)
	max := make([]float64, numFeatures)
	copy(min, d.Samples[0])
	copy(max, d.Samples[0])

	for _, sample := range d.Samples {
		for i, val := range sample {
			if val < min[i] {
				min[i] = val
			}
			if val > max[i] {
				max[i] = val
			}
		}
	}

	for _, sample := range d.Samples {
		for i := range sample {
			diff := max[i] - min[i]
			if diff != 0 {
				sample[i] = (sample[i] - min[i]) / diff
			} else {
				sample[i] = 0
			}
		}
	}
}

// Split splits the dataset into two based on the given ratio (0.0 to 1.0).
// Returns two new Datasets (train, test) sharing the underlying rows.
func (d *Dataset) Split(ratio float64) (*Dataset, *Dataset) {
	if ratio <= 0 {
		return &Dataset{}, d
	}
	if ratio >= 1 {
		return d, &Dataset{}
	}

	splitIdx := int(float64(len(d.Samples)) * ratio)

	train := &Dataset{
		Samples: d.Samples[:splitIdx],
		Labels:  d.Labels[:splitIdx],
	}

	test := &Dataset{
		Samples: d.Samples[splitIdx:],
		Labels:  d.Labels[splitIdx:],
	}

	return train, test
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Samples) }
