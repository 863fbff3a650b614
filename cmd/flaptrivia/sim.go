package main

import (
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/flaptrivia/internal/audio"
	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
	"github.com/vovakirdan/flaptrivia/internal/games/flappy"
	"github.com/vovakirdan/flaptrivia/internal/storage"
)

var (
	flagSimMode   string
	flagSimTicks  int
	flagSimPolicy string
	flagSimSave   bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Run a session without a terminal: an autopilot flaps through the
pipes and answers questions by policy until victory, until every question
is resolved, or until the tick limit. Prints the final snapshot as YAML.

Policies:
  correct  - always answer correctly
  wrong    - always answer wrong (spends revival credits)
  first    - always pick the first displayed option

Examples:
  flaptrivia sim
  flaptrivia sim --mode hard --policy wrong --seed 42
  flaptrivia sim --ticks 3600 --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", string(config.DefaultMode), "Mode to simulate")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 60*60*5, "Maximum ticks to simulate")
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", string(flappy.AnswerCorrect), "Answer policy: correct, wrong, first")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the finished run in the database")
}

// SimReport is the YAML document printed by sim.
type SimReport struct {
	Seed     int64           `yaml:"seed"`
	Policy   string          `yaml:"policy"`
	Outcome  string          `yaml:"outcome"`
	Final    flappy.Snapshot `yaml:"final"`
	Cues     map[string]int  `yaml:"cues"`
	Collided int             `yaml:"collisions"`
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger("flaptrivia-sim", false)
	if err != nil {
		return err
	}
	defer closeLog()

	mode, err := config.ParseMode(flagSimMode)
	if err != nil {
		return err
	}
	policy, err := flappy.ParseAnswerPolicy(flagSimPolicy)
	if err != nil {
		return err
	}

	rec := &audio.Recorder{}
	flappy.SetSink(rec)
	flappy.SetLogger(logger)

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = seed

	report := simulate(flappy.New(mode), rc, flappy.NewAutopilot(policy), flagSimTicks)
	report.Seed = seed
	report.Policy = string(policy)
	report.Cues = map[string]int{}
	for _, c := range rec.Cues {
		report.Cues[c.String()]++
	}
	logger.Info("simulation finished", "mode", mode, "outcome", report.Outcome, "ticks", report.Final.Tick)

	if flagSimSave {
		if err := saveSimRun(report); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

// simulate drives g with ap for at most maxTicks ticks.
func simulate(g *flappy.Game, rc core.RuntimeConfig, ap flappy.Autopilot, maxTicks int) SimReport {
	g.Reset(rc)
	m := g.Machine()

	report := SimReport{Outcome: "tick limit"}
	for i := 0; i < maxTicks; i++ {
		res := g.Step(ap.Input(m))
		if res.Died {
			report.Collided++
		}
		if res.State.Victory {
			report.Outcome = "victory"
			break
		}
		if m.UntilNextQuestion() < 0 && m.State() == flappy.StatePlaying && m.Popup() == flappy.PopupNone {
			report.Outcome = "questions exhausted"
			break
		}
	}
	report.Final = g.Snapshot()
	return report
}

func saveSimRun(r SimReport) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.SaveRun(storage.Run{
		Session:  "sim",
		Mode:     r.Final.Mode,
		Score:    r.Final.Score,
		Rewards:  len(r.Final.Rewards),
		Answered: len(r.Final.Answered),
		Deaths:   r.Final.Deaths,
		Victory:  r.Outcome == "victory",
		Duration: time.Duration(r.Final.ElapsedMs) * time.Millisecond,
	})
	return err
}
