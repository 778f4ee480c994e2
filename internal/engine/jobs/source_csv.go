package jobs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// ErrDataNotFound is returned when the postings source does not exist.
var ErrDataNotFound = errors.New("postings data not found")

// ReadCSVFile reads raw rows from a CSV file on disk.
func ReadCSVFile(path string) ([]RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads raw rows from CSV text with a header row. Columns are
// matched by name; unknown columns are ignored and absent ones read as blank.
// Rows the CSV reader cannot parse are skipped.
func ReadCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var rows []RawRow
	skipped := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, rowFromCells(func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}))
	}
	if skipped > 0 {
		slog.Warn("csv: skipped unreadable rows", slog.Int("count", skipped))
	}
	return rows, nil
}

// rowFromCells assembles a RawRow from a column-name lookup.
func rowFromCells(cell func(col string) string) RawRow {
	return RawRow{
		Title:         cell(ColTitle),
		Company:       cell(ColCompany),
		Location:      cell(ColLocation),
		MinExperience: cell(ColMinExperience),
		MaxExperience: cell(ColMaxExperience),
		Experience:    cell(ColExperience),
		Posted:        cell(ColPosted),
		Description:   cell(ColDescription),
		Skills:        cell(ColSkills),
		SkillList:     cell(ColSkillList),
		SkillTypeList: cell(ColSkillTypeList),
	}
}
