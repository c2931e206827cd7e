package tabular

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/medload/internal/model"
)

const parquetBatchSize = 256

// ParquetReader wraps a parquet GenericReader for streaming MedicalRecordRow records.
type ParquetReader struct {
	file   *os.File
	reader *parquet.GenericReader[model.MedicalRecordRow]
	cols   []string
	buf    []model.MedicalRecordRow
	n, pos int
	eof    bool
	line   int64
}

// OpenParquet opens a Parquet file and returns a streaming reader.
func OpenParquet(path string) (*ParquetReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	var cols []string
	for _, field := range pf.Schema().Fields() {
		cols = append(cols, field.Name())
	}

	return &ParquetReader{
		file:   f,
		reader: parquet.NewGenericReader[model.MedicalRecordRow](pf),
		cols:   cols,
		buf:    make([]model.MedicalRecordRow, parquetBatchSize),
	}, nil
}

// Columns returns the top-level column names from the file schema.
func (r *ParquetReader) Columns() []string {
	return r.cols
}

// NumRows returns the total number of rows in the Parquet file.
func (r *ParquetReader) NumRows() int64 {
	return r.reader.NumRows()
}

// Next returns the next row converted to a RawRecord.
func (r *ParquetReader) Next() (model.RawRecord, error) {
	for r.pos >= r.n {
		if r.eof {
			return model.RawRecord{}, io.EOF
		}
		n, err := r.reader.Read(r.buf)
		r.n, r.pos = n, 0
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return model.RawRecord{}, fmt.Errorf("read parquet rows: %w", err)
		}
	}
	row := &r.buf[r.pos]
	r.pos++
	r.line++
	return row.ToRawRecord(r.line), nil
}

// Close releases all resources.
func (r *ParquetReader) Close() error {
	if err := r.reader.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

// WriteParquet writes rows to a new Parquet file at path.
func WriteParquet(path string, rows []model.MedicalRecordRow) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer out.Close()

	w := parquet.NewGenericWriter[model.MedicalRecordRow](out)
	if _, err := w.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return out.Close()
}
