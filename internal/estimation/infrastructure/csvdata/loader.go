// Package csvdata reads estimator training rows from CSV files.
package csvdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/security"
)

var ErrMissingColumn = errors.New("missing training column")

var featureColumns = []string{"past_score", "difficulty_level", "chapters", "days_left"}

// targetColumns lists accepted names for the hours column, in order of preference.
var targetColumns = []string{"study_hours", "recommended_hours"}

// LoadFile reads samples from the CSV file at path.
func LoadFile(path string) ([]domain.Sample, error) {
	f, err := security.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Load reads samples from r. The first row is a header; columns may appear in any order.
func Load(r io.Reader) ([]domain.Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := make([]int, 0, len(featureColumns)+1)
	for _, name := range featureColumns {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		cols = append(cols, i)
	}
	target := -1
	for _, name := range targetColumns {
		if i, ok := index[name]; ok {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, targetColumns[0])
	}
	cols = append(cols, target)

	var samples []domain.Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		var v [5]float64
		for j, c := range cols {
			if v[j], err = strconv.ParseFloat(strings.TrimSpace(rec[c]), 64); err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, header[c], err)
			}
		}
		s := domain.Sample{
			Features: domain.Features{
				PastScore:       v[0],
				DifficultyLevel: int(v[1]),
				Chapters:        int(v[2]),
				DaysLeft:        int(v[3]),
			},
			StudyHours: v[4],
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Write renders samples in the format Load reads.
func Write(w io.Writer, samples []domain.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string(nil), featureColumns...), targetColumns[0])); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			strconv.FormatFloat(s.PastScore, 'f', -1, 64),
			strconv.Itoa(s.DifficultyLevel),
			strconv.Itoa(s.Chapters),
			strconv.Itoa(s.DaysLeft),
			strconv.FormatFloat(s.StudyHours, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
