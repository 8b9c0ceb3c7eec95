package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/roadmap/pkg/frame"
	"github.com/matzehuels/roadmap/pkg/pipeline"
)

// rowsCommand creates the rows command for printing the row stack.
func (c *CLI) rowsCommand() *cobra.Command {
	var (
		visibleOnly bool
		flags       engineFlags
	)

	cmd := &cobra.Command{
		Use:   "rows [items]",
		Short: "Print the row stack for a set of work items",
		Long: `Print the row stack for a set of work items.

Each row shows its collapse key, its label indented by nesting level, its
dates and whether the viewport culler marked it visible. Use the keys with
--collapse to fold epics ("E-12") or groups ("group:Backend").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger

			src, err := openSource(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer src.Close()

			prog := newProgress(c.Logger)
			items, err := src.Load(cmd.Context())
			if err != nil {
				return err
			}
			f, err := pipeline.Compute(items, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Laid out %d items", len(items)))

			writeRows(cmd.OutOrStdout(), f, visibleOnly)
			return nil
		},
	}

	cmd.Flags().BoolVar(&visibleOnly, "visible", false, "only print rows the culler marked visible")
	flags.register(cmd)

	return cmd
}

// writeRows renders the rows of f as a table.
func writeRows(w io.Writer, f *frame.Frame, visibleOnly bool) {
	var data [][]string
	for _, r := range f.Rows {
		if visibleOnly && !r.Visible {
			continue
		}
		seen := ""
		if r.Visible {
			seen = iconSuccess
		}
		data = append(data, []string{r.Key, rowLabel(r), r.Start, r.Target, seen})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Row", "Start", "Target", "Visible").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return s.Foreground(colorDim)
			}
			return s
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("%d rows, %d visible, height %.0fpx", f.Stats.Rows, f.Stats.Visible, f.Height)))
}

// rowLabel indents and decorates a row label by kind and collapse state.
func rowLabel(r frame.Row) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.Level))
	switch {
	case r.IsParent && r.Collapsed:
		b.WriteString(iconCollapsed + " ")
	case r.IsParent:
		b.WriteString(iconExpanded + " ")
	case r.Kind == "milestone":
		b.WriteString(iconMilestone + " ")
	}

	label := r.Label
	if r.Collapsed && r.ChildCount > 0 {
		label = fmt.Sprintf("%s (%d)", label, r.ChildCount)
	}
	b.WriteString(kindStyle(r.Kind).Render(label))
	return b.String()
}

func kindStyle(kind string) lipgloss.Style {
	switch kind {
	case "epic":
		return styleEpic
	case "milestone":
		return styleMilestone
	case "group":
		return styleGroup
	}
	return styleFeature
}
