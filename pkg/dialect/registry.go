package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/morphdict/pkg/core"
)

// names maps configuration names (and their aliases) to dialect tags.
var names = map[string]core.Dialect{
	"ipadic":       core.DialectIPADIC,
	"naist-jdic":   core.DialectIPADIC,
	"unidic":       core.DialectUniDic,
	"eunjeon":      core.DialectEunjeon,
	"eunjeondic":   core.DialectEunjeon,
	"mecab-ko-dic": core.DialectEunjeon,
	"ko-dic":       core.DialectEunjeon,
}

// Parse returns the dialect registered under name (case-insensitive).
func Parse(name string) (core.Dialect, error) {
	d, ok := names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%q (known: %s): %w", name, strings.Join(List(), ", "), core.ErrUnknownDialect)
	}
	return d, nil
}

// List returns all accepted dialect names (sorted).
func List() []string {
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
