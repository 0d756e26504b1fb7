package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/config"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the personas in the catalog, grouped by panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), cfg.Log.Level)

			cat := catalog.New(cfg.Catalog.Dir)
			ids, err := cat.AllPersonaIDs(ctx)
			if err != nil {
				return err
			}

			table := newPersonaTable(cmd.OutOrStdout())
			for _, panel := range cat.Panels() {
				for _, id := range ids[panel.Type] {
					p, err := cat.LoadPersona(ctx, id)
					if err != nil {
						clog.FromContext(ctx).With("persona", id).Warnf("skipping persona: %v", err)
						continue
					}
					_ = table.Append([]string{panel.DisplayName, p.ID, p.Name, p.Nickname, strings.Join(p.ExpertiseAreas, ", ")})
				}
			}
			if err := table.Render(); err != nil {
				return fmt.Errorf("rendering table: %w", err)
			}
			return nil
		},
	}
}

// newPersonaTable returns a markdown table writer for the persona listing.
func newPersonaTable(w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader([]string{"Panel", "ID", "Name", "Nickname", "Expertise"}),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
