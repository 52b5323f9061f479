package source

import (
	"encoding/csv"
	"strings"
)

// SplitCSV splits one CSV line. Double-quoted fields may contain commas and
// "" escapes; stray quotes inside unquoted fields are kept literally.
func SplitCSV(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.Read()
}
