package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/medload/internal/model"
)

// CSVReader streams a comma-separated file with a single header row.
type CSVReader struct {
	file    *os.File
	csv     *csv.Reader
	headers []string
	line    int64
}

// OpenCSV opens path and reads its header row.
func OpenCSV(path string) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("read header: file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	return &CSVReader{
		file:    file,
		csv:     reader,
		headers: append([]string(nil), headers...),
	}, nil
}

// Columns returns the header names.
func (r *CSVReader) Columns() []string {
	return r.headers
}

// Next returns the next data row. Missing trailing fields read as "".
func (r *CSVReader) Next() (model.RawRecord, error) {
	row, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return model.RawRecord{}, io.EOF
		}
		return model.RawRecord{}, fmt.Errorf("csv row %d: %w", r.line+1, err)
	}
	r.line++

	fields := make(map[string]string, len(r.headers))
	for i, h := range r.headers {
		if i < len(row) {
			fields[h] = row[i]
		} else {
			fields[h] = ""
		}
	}
	return model.RawRecord{Line: r.line, Fields: fields}, nil
}

// Close releases the underlying file.
func (r *CSVReader) Close() error {
	return r.file.Close()
}
