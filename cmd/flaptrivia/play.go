package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flaptrivia/internal/audio/device"
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
	"github.com/vovakirdan/flaptrivia/internal/games/flappy"
	"github.com/vovakirdan/flaptrivia/internal/platform/tui"
	"github.com/vovakirdan/flaptrivia/internal/registry"
	"github.com/vovakirdan/flaptrivia/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play flaptrivia",
	Long: `Start a session in the given mode, or pick one from the menu.

Modes:
  lenient  - save point after every resolved question, pipe speed 2.5
  hard     - no save points: a failure restarts the run, pipe speed 3
  (simple and easy are accepted as aliases of lenient)

Controls:
  Space/Up   - Flap
  1-4 / A-D  - Pick an answer
  Enter      - Continue past a result
  X/Bksp     - Give up the revival challenge
  P/Esc      - Pause
  R          - Back to a fresh run (paused or after victory)
  Ctrl+S     - Screenshot to ~/.flaptrivia/screenshots
  Q/Ctrl+C   - Quit

Examples:
  flaptrivia play
  flaptrivia play hard
  flaptrivia play --mute --config ./my-game.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger("flaptrivia", true)
	if err != nil {
		return err
	}
	defer closeLog()
	flappy.SetLogger(logger)

	sink := device.Open(!flagMute, logger)
	if sp, ok := sink.(*device.Speaker); ok {
		defer sp.Close()
	}
	flappy.SetSink(sink)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	session := uuid.NewString()

	if len(args) == 1 {
		mode, err := config.ParseMode(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'flaptrivia list')", err)
		}
		return playMode(string(mode), store, cfg, session, logger)
	}
	return runMenuLoop(store, cfg, session, logger)
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func playMode(id string, store *storage.Store, cfg core.RuntimeConfig, session string, logger *log.Logger) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	logger.Info("run started", "mode", id, "seed", cfg.Seed)
	return tui.Run(game, store, cfg, tui.WithSession(session), tui.WithLogger(logger))
}

// runMenuLoop alternates between the mode picker, the run history and
// games until the player quits.
func runMenuLoop(store *storage.Store, cfg core.RuntimeConfig, session string, logger *log.Logger) error {
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playMode(result.GameID, store, cfg, session, logger); err != nil {
			logger.Error("game failed", "mode", result.GameID, "err", err)
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
