package tabular

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gyeh/medload/internal/model"
)

// Reader streams RawRecords from a tabular input file.
type Reader interface {
	// Columns returns the header column names in file order.
	Columns() []string
	// Next returns the next record, or io.EOF when the input is exhausted.
	Next() (model.RawRecord, error)
	Close() error
}

// Open picks a reader by file extension: ".parquet" files are read as
// Parquet, everything else as comma-separated text.
func Open(path string) (Reader, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		r, err := OpenParquet(path)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	r, err := OpenCSV(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ReadAll drains r into a slice.
func ReadAll(r Reader) ([]model.RawRecord, error) {
	var out []model.RawRecord
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		out = append(out, rec)
	}
}
