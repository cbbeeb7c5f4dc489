package csvmap

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Separator delimits the cells of a row.
const Separator = ';'

// Field declares one column of a record schema: its wire name, kind,
// whether an empty cell is allowed, and the accessors binding it to the
// record type. Get returns nil for an absent value; Set receives nil
// when an optional cell is empty.
type Field[T any] struct {
	Name     string
	Kind     Kind
	Optional bool
	Enum     *Enum
	Get      func(*T) interface{}
	Set      func(*T, interface{})
}

// RowError collects every field failure of a single rejected row. The
// row number counts from the top of the file, header included, so the
// first data row is row 2.
type RowError struct {
	File   string
	Row    int
	Errors []string
	Data   map[string]string
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s", e.File, e.Row, strings.Join(e.Errors, "; "))
}

// LoadRecords reads header-labeled delimited rows and converts each one
// into a record. Field errors within a row are accumulated into a single
// RowError and the row is excluded from the result; the other rows are
// unaffected. Only an unreadable source aborts the load.
func LoadRecords[T any](r io.Reader, fields []Field[T], renames map[string]string) ([]*T, []RowError, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}

	var records []*T
	var rowErrs []RowError

	for rowNum := 2; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, rowErrs, fmt.Errorf("reading row %d: %w", rowNum, err)
		}

		cell := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			if i, ok := cols[strings.ToUpper(name)]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rec := new(T)
		var errs []string
		for _, f := range fields {
			raw := cell(f.Name)
			if raw == "" {
				if alias, ok := renames[f.Name]; ok {
					raw = cell(alias)
				}
			}
			if raw == "" {
				if !f.Optional {
					errs = append(errs, fmt.Sprintf("%s: required value missing", f.Name))
					continue
				}
				f.Set(rec, nil)
				continue
			}
			v, err := Parse(raw, f.Kind, f.Enum)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", f.Name, err))
				continue
			}
			f.Set(rec, v)
		}

		if len(errs) > 0 {
			data := make(map[string]string, len(header))
			for name, i := range cols {
				if i < len(row) {
					data[name] = row[i]
				}
			}
			rowErrs = append(rowErrs, RowError{Row: rowNum, Errors: errs, Data: data})
			continue
		}
		records = append(records, rec)
	}
	return records, rowErrs, nil
}

// SaveRecords writes a header row of uppercased (optionally renamed)
// field names followed by one row per record with every cell quoted.
// Records are serialized in the order given; excluded fields are left
// out entirely. An empty record set still produces the header.
func SaveRecords[T any](w io.Writer, records []*T, fields []Field[T], renames map[string]string, exclude map[string]bool) error {
	bw := bufio.NewWriter(w)

	kept := make([]Field[T], 0, len(fields))
	for _, f := range fields {
		if !exclude[f.Name] {
			kept = append(kept, f)
		}
	}

	headers := make([]string, len(kept))
	for i, f := range kept {
		name := f.Name
		if alias, ok := renames[name]; ok {
			name = alias
		}
		headers[i] = quote(strings.ToUpper(name))
	}
	if _, err := bw.WriteString(strings.Join(headers, string(Separator)) + "\r\n"); err != nil {
		return err
	}

	cells := make([]string, len(kept))
	for _, rec := range records {
		for i, f := range kept {
			cells[i] = quote(Format(f.Get(rec)))
		}
		if _, err := bw.WriteString(strings.Join(cells, string(Separator)) + "\r\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
