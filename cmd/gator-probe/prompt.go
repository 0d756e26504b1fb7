package main

import (
	"fmt"

	"github.com/joestump/gator-probe/internal/catalog"
	"github.com/joestump/gator-probe/internal/config"
	"github.com/joestump/gator-probe/internal/prompt"
	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var panelType, style string

	cmd := &cobra.Command{
		Use:   "prompt <persona-id> <input>",
		Short: "Print the assembled system and user prompts without calling the model",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), cfg.Log.Level)

			if style == "" {
				style = cfg.Prompt.Style
			}
			s, err := prompt.ParseStyle(style)
			if err != nil {
				return err
			}

			assembler := prompt.New(catalog.New(cfg.Catalog.Dir), prompt.WithStyle(s))
			p, err := assembler.Assemble(ctx, args[0], args[1], panelType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# panel: %s\n\n## system\n\n%s\n\n## user\n\n%s\n", p.PanelType, p.SystemPrompt, p.UserPrompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&panelType, "panel", "", "panel type to use instead of inferring it from the persona")
	cmd.Flags().StringVar(&style, "style", "", "prompt style: standard or natural (default from config)")
	return cmd
}
