package normalize

import (
	"strings"

	"github.com/gyeh/medload/internal/model"
)

// EncodeCategory maps a categorical label to its integer code. Labels are
// matched case-sensitively after trimming surrounding whitespace.
func EncodeCategory(col model.CategoryColumn, label string) (int, error) {
	label = strings.TrimSpace(label)
	code, ok := col.Code(label)
	if !ok {
		return 0, &UnknownCategoryError{Column: col.Name, Label: label}
	}
	return code, nil
}
