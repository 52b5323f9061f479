package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/morphdict/internal/artifact"
	"github.com/leapstack-labs/morphdict/internal/cli/output"
	"github.com/leapstack-labs/morphdict/pkg/charclass"
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Show the character category of each code point",
		Long: `Resolve every code point of the given text against the published
character category table, showing the rule a tokenizer would apply.`,
		Example: `  morphdict classify "東京タワー333"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			r := newRenderer(cmd, cfg)

			table, err := artifact.ReadCharClass(cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to read character table (run `morphdict build` first): %w", err)
			}
			return renderClassification(r, table, strings.Join(args, " "))
		},
	}
}

// CharOutput is the JSON shape of one classified code point.
type CharOutput struct {
	Char       string   `json:"char"`
	CodePoint  string   `json:"code_point"`
	Category   string   `json:"category"`
	Compatible []string `json:"compatible,omitempty"`
	Invoke     bool     `json:"invoke"`
	Group      bool     `json:"group"`
	Length     int      `json:"length"`
}

func classify(table *charclass.Table, text string) []CharOutput {
	var out []CharOutput
	for _, cp := range text {
		out = append(out, CharOutput{
			Char:       string(cp),
			CodePoint:  fmt.Sprintf("U+%04X", cp),
			Category:   table.Category(cp),
			Compatible: table.Compatible(cp),
			Invoke:     table.Invoke(cp),
			Group:      table.Group(cp),
			Length:     table.MaxLength(cp),
		})
	}
	return out
}

func renderClassification(r *output.Renderer, table *charclass.Table, text string) error {
	chars := classify(table, text)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(chars)
	}

	rows := make([][]any, 0, len(chars))
	for _, c := range chars {
		rows = append(rows, []any{c.Char, c.CodePoint, c.Category, strings.Join(c.Compatible, " "), c.Invoke, c.Group, c.Length})
	}
	r.Table([]string{"char", "code point", "category", "compatible", "invoke", "group", "length"}, rows)
	return nil
}
