package flappy

// Snapshot captures the observable game state for determinism testing and
// the headless simulator.
type Snapshot struct {
	Tick       uint64  `yaml:"tick"`
	Mode       string  `yaml:"mode"`
	State      string  `yaml:"state"`
	Popup      string  `yaml:"popup"`
	Score      int     `yaml:"score"`
	ElapsedMs  int64   `yaml:"elapsed_ms"`
	BirdY      float64 `yaml:"bird_y"`
	Velocity   float64 `yaml:"velocity"`
	Pipes      int     `yaml:"pipes"`
	Answered   []int   `yaml:"answered"`
	Rewards    []int   `yaml:"rewards"`
	Credits    int     `yaml:"credits"`
	SavePoints int     `yaml:"save_points"`
	Deaths     int     `yaml:"deaths"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	m := g.machine
	if m == nil {
		return Snapshot{Mode: string(g.mode)}
	}
	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		State:      m.State().String(),
		Popup:      m.Popup().String(),
		Score:      m.Score(),
		ElapsedMs:  int64(m.Elapsed()),
		BirdY:      m.Bird().Y,
		Velocity:   m.Bird().Velocity,
		Pipes:      len(m.Pipes()),
		Answered:   m.Answered(),
		Rewards:    m.Rewards(),
		Credits:    m.Credits(),
		SavePoints: m.SavePoints(),
		Deaths:     m.Deaths(),
	}
}
