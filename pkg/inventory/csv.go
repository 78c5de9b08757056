package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zadonuts/donutdex/pkg/catalog"
	"github.com/zadonuts/donutdex/pkg/errors"
)

// CSV column headers accepted on import, after normalization. Column
// order does not matter; extra columns do.
const (
	headerName     = "berry_name"
	headerQuantity = "quantity"
)

// Skipped describes an import row whose berry name is not in the catalog.
// Suggestion holds the closest catalog name when one is near enough.
type Skipped struct {
	Row        int    `json:"row" yaml:"row"`
	Name       string `json:"name" yaml:"name"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// ReadCSV parses a berry_name,quantity file into entries ready for a bulk
// load. Malformed input fails the whole import: a missing or extra
// column, an empty name, or a quantity that is not a non-negative integer
// all reject the file. Rows naming berries outside the given catalog set
// are returned as skipped, with a typo suggestion where one is close,
// and do not fail the import. Duplicate names keep the last row.
func ReadCSV(r io.Reader, names []string) ([]Entry, []Skipped, error) {
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, errors.New(errors.ErrCodeInvalidRequest, "import file is empty")
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to read import header", err)
	}
	nameCol, qtyCol, err := headerColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var (
		entries []Entry
		skipped []Skipped
		row     = 1
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("malformed import row %d", row), err)
		}

		name := catalog.CanonicalName(record[nameCol])
		if name == "" {
			return nil, nil, errors.Newf(errors.ErrCodeInvalidRequest,
				"import row %d has an empty berry name", row)
		}

		qty, err := strconv.Atoi(strings.TrimSpace(record[qtyCol]))
		if err != nil {
			return nil, nil, errors.Newf(errors.ErrCodeInvalidRequest,
				"import row %d has a non-numeric quantity %q", row, record[qtyCol])
		}
		if qty < 0 {
			return nil, nil, errors.Newf(errors.ErrCodeInvalidRequest,
				"import row %d has a negative quantity %d", row, qty)
		}

		if _, ok := known[name]; !ok {
			s := Skipped{Row: row, Name: name}
			if hint, ok := Suggest(name, names); ok {
				s.Suggestion = hint
			}
			skipped = append(skipped, s)
			continue
		}

		entries = append(entries, Entry{Name: name, Quantity: qty})
	}

	return entries, skipped, nil
}

// WriteCSV writes entries as a berry_name,quantity file, using display
// casing for names so the output reads like the in-game labels.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{headerName, headerQuantity}); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for _, e := range entries {
		rec := []string{catalog.DisplayName(e.Name), strconv.Itoa(e.Quantity)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write export row for %q: %w", e.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// headerColumns resolves the two required column positions from a header
// row. Column names are matched case-insensitively with internal spaces
// treated as underscores, in any order.
func headerColumns(header []string) (nameCol, qtyCol int, err error) {
	if len(header) != 2 {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidRequest,
			"import header must have exactly the columns %s and %s, got %d columns",
			headerName, headerQuantity, len(header))
	}

	nameCol, qtyCol = -1, -1
	for i, col := range header {
		switch normalizeHeader(col) {
		case headerName:
			nameCol = i
		case headerQuantity:
			qtyCol = i
		}
	}
	if nameCol < 0 || qtyCol < 0 {
		return 0, 0, errors.Newf(errors.ErrCodeInvalidRequest,
			"import header must name the columns %s and %s, got %q",
			headerName, headerQuantity, strings.Join(header, ","))
	}
	return nameCol, qtyCol, nil
}

func normalizeHeader(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
