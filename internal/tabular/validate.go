package tabular

import (
	"fmt"
	"strings"

	"github.com/gyeh/medload/internal/model"
)

// ValidateColumns checks that every required column is present. Names are
// exact-match, including case.
func ValidateColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, col := range model.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
