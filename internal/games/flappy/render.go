package flappy

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/flaptrivia/internal/config"
	"github.com/vovakirdan/flaptrivia/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GroundChar    = '═'
	DirtChar      = '░'
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	m := g.machine
	if m == nil || dst.Width() < 10 || dst.Height() < 6 {
		return
	}

	v := newViewport(m, dst)
	v.drawGround(dst)
	for _, p := range m.Pipes() {
		v.drawPipe(dst, p, m.Config().Obstacles.Width)
	}
	v.drawBird(dst, m.Bird())
	drawHUD(dst, m, g.mode)

	switch m.State() {
	case StateVictory:
		drawVictory(dst, m)
		return
	case StatePaused:
		if m.Popup() == PopupNone {
			drawPanel(dst, "PAUSED", core.ColorWhite, []string{"[P] resume   [R] restart"})
			return
		}
	}
	drawPopup(dst, m)
}

// viewport maps playfield units onto screen cells.
type viewport struct {
	scaleX, scaleY float64
	groundRow      int
}

func newViewport(m *Machine, dst *core.Screen) viewport {
	pf := m.Config().Playfield
	v := viewport{
		scaleX: float64(dst.Width()) / pf.Width,
		scaleY: float64(dst.Height()-hudRows) / pf.Height,
	}
	v.groundRow = v.row(pf.GroundY())
	return v
}

func (v viewport) col(x float64) int {
	return int(x * v.scaleX)
}

func (v viewport) row(y float64) int {
	return hudRows + int(y*v.scaleY)
}

func (v viewport) drawGround(dst *core.Screen) {
	dst.DrawHLine(0, v.groundRow, dst.Width(), GroundChar, core.ColorGreen)
	for y := v.groundRow + 1; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), DirtChar, core.ColorOrange)
	}
}

func (v viewport) drawPipe(dst *core.Screen, p Pipe, width float64) {
	x0 := v.col(p.X)
	x1 := core.Max(x0+1, v.col(p.X+width))
	top := v.row(p.TopHeight)
	bottom := v.row(p.BottomY)

	for x := x0; x < x1; x++ {
		for y := hudRows; y < top; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if top > hudRows {
			dst.SetColored(x, top-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := bottom; y < v.groundRow; y++ {
			dst.SetColored(x, y, PipeChar, core.ColorGreen)
		}
		if bottom < v.groundRow {
			dst.SetColored(x, bottom, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

func (v viewport) drawBird(dst *core.Screen, b Bird) {
	glyph := '>'
	switch {
	case b.Rotation < -0.2:
		glyph = '/'
	case b.Rotation > 0.6:
		glyph = '\\'
	}
	x, y := v.col(b.X), v.row(b.Y)
	dst.SetColored(x-1, y, '@', core.ColorBrightYellow)
	dst.SetColored(x, y, glyph, core.ColorYellow)
}

func drawHUD(dst *core.Screen, m *Machine, mode config.Mode) {
	secs := int(m.Elapsed() / 1000)
	next := "done"
	if until := m.UntilNextQuestion(); until >= 0 {
		next = fmt.Sprintf("%ds", int(until+999)/1000)
	}
	hud := fmt.Sprintf(" Score %d | %02d:%02d | Q %d/%d next %s | Pills %d | Rewards %d/%d | %s ",
		m.Score(), secs/60, secs%60,
		len(m.Answered()), m.Bank().Len(), next,
		m.Credits(),
		len(m.Rewards()), m.Config().Trivia.RewardTarget,
		strings.ToUpper(string(mode)),
	)
	dst.DrawTextColored(0, 0, hud, core.ColorCyan)
}

func drawPopup(dst *core.Screen, m *Machine) {
	switch m.Popup() {
	case PopupQuestion:
		q, opts, _ := m.OpenQuestion()
		lines := wrap(q.Prompt, panelTextWidth(dst))
		lines = append(lines, "")
		for i, o := range opts {
			lines = append(lines, fmt.Sprintf("[%d] %s", i+1, o.Text))
		}
		lines = append(lines, "", "Answer with 1 or 2")
		drawPanel(dst, titleOr(q.Title, "Question"), core.ColorMagenta, lines)

	case PopupReveal:
		drawPanel(dst, "Correct!", core.ColorGreen, []string{"Checking for a reward..."})

	case PopupReward:
		q, _ := m.LastReward()
		lines := wrap(q.Reward, panelTextWidth(dst))
		lines = append(lines, "", fmt.Sprintf("Rewards %d/%d", len(m.Rewards()), m.Config().Trivia.RewardTarget), "[Enter] continue")
		drawPanel(dst, "REWARD!", core.ColorBrightYellow, lines)

	case PopupNoReward:
		drawPanel(dst, "Correct!", core.ColorGreen, []string{"No reward behind this one.", "", "[Enter] continue"})

	case PopupRevival:
		c, used := m.RevivalOptions()
		lines := []string{fmt.Sprintf("Wrong answer. Revival pills left: %d", m.Credits()), ""}
		lines = append(lines, wrap(c.Prompt, panelTextWidth(dst))...)
		lines = append(lines, "")
		for i, o := range c.Options {
			line := fmt.Sprintf("[%d] %s", i+1, o.Text)
			if used[i] {
				line += " (used)"
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", "[Backspace] give up")
		drawPanel(dst, "Revival pill", core.ColorBrightMagenta, lines)

	case PopupCountdown:
		word := "READY"
		if m.Countdown() == CountdownGo {
			word = "GO!"
		}
		drawPanel(dst, word, core.ColorBrightYellow, nil)
	}
}

func drawVictory(dst *core.Screen, m *Machine) {
	lines := []string{
		fmt.Sprintf("All %d rewards collected!", len(m.Rewards())),
		fmt.Sprintf("Score %d  |  Questions %d/%d", m.Score(), len(m.Answered()), m.Bank().Len()),
		"",
	}
	for _, id := range m.Rewards() {
		if q, ok := m.Bank().ByID(id); ok {
			lines = append(lines, "* "+q.Reward)
		}
	}
	lines = append(lines, "", "[R] play again   [Q] quit")
	drawPanel(dst, "VICTORY", core.ColorBrightYellow, lines)
}

func panelTextWidth(dst *core.Screen) int {
	return core.Max(10, dst.Width()-8)
}

// drawPanel draws a bordered message box in the center of the screen.
func drawPanel(dst *core.Screen, title string, c core.Color, lines []string) {
	inner := textWidth(title)
	for _, l := range lines {
		inner = core.Max(inner, textWidth(l))
	}
	boxW := core.Min(inner+4, dst.Width())
	boxH := core.Min(len(lines)+4, dst.Height())
	if len(lines) == 0 {
		boxH = 3
	}
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	box := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)
	dst.DrawTextColored(boxX+(boxW-textWidth(title))/2, boxY+1, title, c)
	for i, l := range lines {
		y := boxY + 3 + i
		if y >= box.Bottom()-1 {
			break
		}
		dst.DrawText(boxX+2, y, l)
	}
}

func titleOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(s) {
		if cur.Len() > 0 && textWidth(cur.String())+1+textWidth(word) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
