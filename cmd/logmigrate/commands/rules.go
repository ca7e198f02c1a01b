package commands

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/logmigrate/cmd/logmigrate/opts"
	"github.com/walteh/logmigrate/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in the order they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := RulesTable(text.NewDefaultRewriter())

			err := pterm.DefaultTable.
				WithHasHeader().
				WithWriter(opts.Out).
				WithData(data).
				Render()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// RulesTable returns one row per rule of r, with a header row first
func RulesTable(r *text.Rewriter) pterm.TableData {
	data := pterm.TableData{{"#", "Name", "Pattern", "Replacement"}}

	for i, rule := range r.Rules() {
		row := []string{strconv.Itoa(i + 1), rule.Name(), "", ""}
		switch rr := rule.(type) {
		case *text.RegexRule:
			row[2] = rr.Pattern.String()
			row[3] = rr.Template
		case *text.MarkerRule:
			row[2] = strings.Join(rr.Markers, " ")
			row[3] = "(removed)"
		}
		data = append(data, row)
	}

	return data
}
