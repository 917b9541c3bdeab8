// Package freqs reads the frequency table that feeds the guide layout.
//
// The table is a header-first delimited file. Two named columns are mapped
// onto [layout.Entry]; every other column is ignored. Row order is preserved
// and duplicate rows are kept.
//
//	Frequency,Station ID,Notes
//	88.1,Radio Electra,
//	94.5,BMIR,the big one
package freqs

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	rgerrors "github.com/matzehuels/radioguide/pkg/errors"
	"github.com/matzehuels/radioguide/pkg/layout"
)

const (
	DefaultFrequencyColumn = "Frequency"
	DefaultStationColumn   = "Station ID"
	DefaultDelimiter       = ','
)

// Columns names the header fields to read and the field delimiter.
// Zero values select the defaults.
type Columns struct {
	Frequency string
	Station   string
	Delimiter rune
}

// DefaultColumns returns the column names of the published frequency sheet.
func DefaultColumns() Columns {
	return Columns{
		Frequency: DefaultFrequencyColumn,
		Station:   DefaultStationColumn,
		Delimiter: DefaultDelimiter,
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Frequency == "" {
		c.Frequency = d.Frequency
	}
	if c.Station == "" {
		c.Station = d.Station
	}
	if c.Delimiter == 0 {
		c.Delimiter = d.Delimiter
	}
	return c
}

// Load reads the table at path.
func Load(path string, cols Columns) ([]layout.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rgerrors.WrapIO(err, "%s", path)
	}
	defer f.Close()

	return read(f, cols, path)
}

// Read parses a table from r. Records may have a varying number of fields
// as long as both configured columns are present.
func Read(r io.Reader, cols Columns) ([]layout.Entry, error) {
	return read(r, cols, "table")
}

func read(r io.Reader, cols Columns, name string) ([]layout.Entry, error) {
	cols = cols.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = cols.Delimiter
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidTable, "%s: empty, expected a header row", name)
	}
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidTable, err, "%s: parse header", name)
	}

	freqIdx, stationIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case cols.Frequency:
			freqIdx = i
		case cols.Station:
			stationIdx = i
		}
	}
	if freqIdx < 0 {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidTable, "%s: missing column %q", name, cols.Frequency)
	}
	if stationIdx < 0 {
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidTable, "%s: missing column %q", name, cols.Station)
	}

	var entries []layout.Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidTable, err, "%s: parse record", name)
		}
		entries = append(entries, layout.Entry{
			Frequency: field(rec, freqIdx),
			Station:   field(rec, stationIdx),
		})
	}
	return entries, nil
}

// field returns the trimmed value at i, or "" for a short record.
func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
