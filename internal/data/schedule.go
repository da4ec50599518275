package data

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadSchedule reads a desired load schedule (MW per hour) from path.
//
// Supported formats, chosen by extension:
//   - .json: a flat array of numbers
//   - .csv: one value per row, first column; a non-numeric first row is
//     treated as a header
func LoadSchedule(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSONSchedule(f)
	case ".csv":
		return decodeCSVSchedule(f)
	default:
		return nil, fmt.Errorf("unsupported schedule format: %s", ext)
	}
}

func decodeJSONSchedule(r io.Reader) ([]float64, error) {
	var out []float64
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return out, nil
}

func decodeCSVSchedule(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []float64
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			if row == 0 {
				continue
			}
			return nil, fmt.Errorf("schedule row %d: %w", row+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
