// mkfixture converts a healthcare CSV into a Parquet fixture, optionally
// keeping only the first N rows.
// Usage: go run ./cmd/mkfixture --in testdata/medical.csv --out testdata/medical.parquet --rows 200
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/medload/internal/model"
	"github.com/gyeh/medload/internal/tabular"
)

func main() {
	in := flag.String("in", "testdata/medical.csv", "input csv")
	out := flag.String("out", "testdata/medical.parquet", "output parquet")
	maxRows := flag.Int("rows", 0, "max rows to output (0 = all)")
	flag.Parse()

	reader, err := tabular.OpenCSV(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	defer reader.Close()

	if err := tabular.ValidateColumns(reader.Columns()); err != nil {
		fmt.Fprintf(os.Stderr, "validate input: %v\n", err)
		os.Exit(1)
	}

	var rows []model.MedicalRecordRow
	doctors := make(map[string]bool)
	hospitals := make(map[string]bool)
	for *maxRows == 0 || len(rows) < *maxRows {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			os.Exit(1)
		}
		row, err := model.MedicalRecordRowFromRaw(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "convert: %v\n", err)
			os.Exit(1)
		}
		doctors[row.Doctor] = true
		hospitals[row.Hospital] = true
		rows = append(rows, row)
	}

	if err := tabular.WriteParquet(*out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(rows), *out)
	fmt.Printf("  %-10s %d\n", "doctors", len(doctors))
	fmt.Printf("  %-10s %d\n", "hospitals", len(hospitals))
}
