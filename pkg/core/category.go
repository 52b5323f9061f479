package core

// DefaultCategory is the category of code points no range line assigns.
const DefaultCategory = "DEFAULT"

// CategoryDefinition holds the unknown-word rules for one character category.
type CategoryDefinition struct {
	Name string
	// Invoke forces unknown-word emission even where known words match.
	Invoke bool
	// Group merges consecutive characters of the category into one token.
	Group bool
	// Length is the maximum grouped-token length.
	Length int
}
