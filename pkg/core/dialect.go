package core

// Dialect identifies the column layout of a lexicon source.
// The set is closed; every dialect maps into the same Record shape.
type Dialect int

const (
	// DialectIPADIC is the primary dialect (IPADIC style, 13 columns).
	DialectIPADIC Dialect = iota
	// DialectUniDic is the secondary dialect (UniDic style, 17+ columns).
	DialectUniDic
	// DialectEunjeon is the tertiary dialect (mecab-ko-dic style, 12 columns).
	DialectEunjeon
)

// String returns the configuration name of the dialect.
func (d Dialect) String() string {
	switch d {
	case DialectIPADIC:
		return "ipadic"
	case DialectUniDic:
		return "unidic"
	case DialectEunjeon:
		return "eunjeon"
	default:
		return "unknown"
	}
}
