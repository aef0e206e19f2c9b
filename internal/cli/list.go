package cli

import (
	"fmt"

	"github.com/rook-computer/codeshot/internal/syntax"
	"github.com/rook-computer/codeshot/internal/theme"
	"github.com/spf13/cobra"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "list the available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range theme.Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages LANG...",
		Short: "check whether languages are supported",
		Long: `check whether languages are supported. Each LANG is printed with "yes" or "no".
The command fails when any of them is unsupported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			missing := 0
			for _, lang := range args {
				answer := green("yes")
				if !syntax.IsLanguageSupported(lang) {
					answer = red("no")
					missing++
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", lang, answer); err != nil {
					return err
				}
			}
			if missing > 0 {
				return fmt.Errorf("%d of %d languages unsupported", missing, len(args))
			}
			return nil
		},
	}
}
