package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaptrivia/internal/config"
)

var defaultsCmd = &cobra.Command{
	Use:       "defaults <game|questions>",
	Short:     "Print an embedded default YAML file",
	Long:      `Print the built-in game config or question bank, as a starting point for --config or --questions.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"game", "questions"},
	RunE: func(cmd *cobra.Command, args []string) error {
		data := config.GetDefaultYAML(args[0])
		if data == nil {
			return fmt.Errorf("unknown defaults %q (use game or questions)", args[0])
		}
		_, err := cmd.OutOrStdout().Write(data)
		return err
	},
}
