// flaptrivia is a Flappy Bird run interrupted by trivia questions, played in
// the terminal or over SSH.
//
// Usage:
//
//	flaptrivia play [mode]     - Play a mode, or pick one from the menu
//	flaptrivia list            - List available modes
//	flaptrivia questions       - Validate and list the question bank
//	flaptrivia defaults <name> - Print an embedded default YAML file
//	flaptrivia scores [mode]   - Show best scores and recent runs
//	flaptrivia serve           - Start SSH server for remote play
//	flaptrivia sim             - Run a headless autopilot session
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.flaptrivia/runs.db)
//	--config <path>      - Custom game config YAML
//	--questions <path>   - Custom question bank YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
	"github.com/vovakirdan/flaptrivia/internal/games/flappy"
)

var (
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagQuestions string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flaptrivia",
	Short: "Flaptrivia - flap through pipes, answer trivia, collect rewards",
	Long: `Flaptrivia is a Flappy Bird run that pauses every ten seconds for a
trivia question. Correct answers on reward questions earn rewards; five
rewards win the session. Wrong answers can be saved with a revival
challenge while credits last.

Available commands:
  play       - Play a mode (menu when no mode is given)
  list       - Show available modes
  questions  - Validate and list the question bank
  defaults   - Print embedded default YAML
  scores     - View best scores and recent runs
  serve      - Start SSH server for remote play
  sim        - Run a headless autopilot session

Examples:
  flaptrivia play
  flaptrivia play hard
  flaptrivia questions --questions ./my-questions.yaml
  flaptrivia serve --ssh :2222
  flaptrivia sim --mode lenient --policy wrong`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		if err := config.ValidateRuntime(core.RuntimeConfig{TickRate: flagFPS}); err != nil {
			return fmt.Errorf("invalid --fps: %w", err)
		}
		flappy.SetConfigPath(flagConfig)
		flappy.SetQuestionsPath(flagQuestions)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flaptrivia/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuestions, "questions", "", "Path to custom question bank YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play logs nowhere otherwise)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(defaultsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}
