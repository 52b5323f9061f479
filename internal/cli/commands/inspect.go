package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/morphdict/internal/artifact"
	"github.com/leapstack-labs/morphdict/internal/cli/output"
	"github.com/leapstack-labs/morphdict/pkg/core"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "inspect [surface...]",
		Short: "Show the published dictionary",
		Long: `Read the artifacts in the output directory and show the build manifest.

With surfaces as arguments, print every lexicon record with that surface.
With --category, print the unknown-word entries of a character category.`,
		Example: `  # Show the manifest
  morphdict inspect

  # Look up lexicon records
  morphdict inspect すもも もも

  # List the unknown-word entries for KANJI
  morphdict inspect --category KANJI`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)
			r := newRenderer(cmd, cfg)

			bundle, err := artifact.Read(cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to read artifacts (run `morphdict build` first): %w", err)
			}

			switch {
			case category != "":
				return renderUnknown(r, bundle, category)
			case len(args) > 0:
				return renderLookup(r, bundle, args)
			default:
				return renderManifest(r, &bundle.Manifest)
			}
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "List unknown-word entries of a character category")

	return cmd
}

func renderManifest(r *output.Renderer, m *artifact.Manifest) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(m)
	}
	r.Header(1, "Manifest")
	r.Table([]string{"field", "value"}, [][]any{
		{"build id", m.BuildID},
		{"created", m.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"dialect", m.Dialect},
		{"encoding", m.Encoding},
		{"unknown encoding", m.UnknownEncoding},
		{"normalize", m.Normalize},
		{"keep unnormalized", m.KeepUnnormalized},
		{"lexicon entries", m.LexiconEntries},
		{"lexicon bytes", m.LexiconBytes},
		{"unknown entries", m.UnknownEntries},
		{"connection matrix", fmt.Sprintf("%d × %d", m.ForwardSize, m.BackwardSize)},
		{"categories", m.Categories},
		{"diagnostics", m.Diagnostics},
	})
	return nil
}

// RecordOutput is the JSON shape of one dictionary record.
type RecordOutput struct {
	ID       int      `json:"id"`
	Surface  string   `json:"surface"`
	LeftID   int16    `json:"left_id"`
	RightID  int16    `json:"right_id"`
	Cost     int16    `json:"cost"`
	Features []string `json:"features"`
}

func toRecordOutput(id int, rec core.Record) (RecordOutput, error) {
	left, right, cost, err := rec.Costs()
	if err != nil {
		return RecordOutput{}, err
	}
	return RecordOutput{
		ID:       id,
		Surface:  rec.Surface(),
		LeftID:   left,
		RightID:  right,
		Cost:     cost,
		Features: append([]string(nil), rec.Features()...),
	}, nil
}

func renderRecords(r *output.Renderer, title string, records []RecordOutput) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(records)
	}
	r.Header(2, title)
	if len(records) == 0 {
		r.Println("(no entries)")
		return nil
	}
	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []any{
			rec.ID, rec.Surface, rec.LeftID, rec.RightID, rec.Cost,
			strings.Join(trimEmpty(rec.Features), ","),
		})
	}
	r.Table([]string{"id", "surface", "left", "right", "cost", "features"}, rows)
	return nil
}

// trimEmpty drops trailing empty slots.
func trimEmpty(fields []string) []string {
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

func renderLookup(r *output.Renderer, bundle *artifact.Bundle, surfaces []string) error {
	want := make(map[string]bool, len(surfaces))
	for _, s := range surfaces {
		want[s] = true
	}

	var records []RecordOutput
	for _, e := range bundle.Lexicon.Entries() {
		if !want[e.Surface] {
			continue
		}
		rec, err := bundle.Lexicon.Record(e.ID)
		if err != nil {
			return err
		}
		out, err := toRecordOutput(e.ID, rec)
		if err != nil {
			return err
		}
		records = append(records, out)
	}
	return renderRecords(r, "Lexicon: "+strings.Join(surfaces, " "), records)
}

func renderUnknown(r *output.Renderer, bundle *artifact.Bundle, category string) error {
	var records []RecordOutput
	for _, id := range bundle.Unknown.Entries(category) {
		rec, err := bundle.Unknown.Record(id)
		if err != nil {
			return err
		}
		out, err := toRecordOutput(id, rec)
		if err != nil {
			return err
		}
		records = append(records, out)
	}
	return renderRecords(r, "Unknown words: "+category, records)
}
