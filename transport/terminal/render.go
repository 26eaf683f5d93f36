package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/wricardo/blockfall/game/engine"
)

// Layout, in screen cells. Each board cell is drawn two columns wide.
const (
	boardLeft = 1
	boardTop  = 1
	cellWidth = 2
	panelGap  = 3
)

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmpty   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleBanner  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleOver    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleHelp    = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var kindColors = map[engine.Kind]tcell.Color{
	engine.KindI: tcell.ColorAqua,
	engine.KindO: tcell.ColorYellow,
	engine.KindT: tcell.ColorPurple,
	engine.KindS: tcell.ColorGreen,
	engine.KindZ: tcell.ColorRed,
	engine.KindJ: tcell.ColorBlue,
	engine.KindL: tcell.ColorOrange,
}

var helpLines = []string{
	"←/A  →/D  move",
	"↓/S       down",
	"↑/W       rotate",
	"Space     pause",
	"R         restart",
	"Q/Esc     quit",
}

// Renderer draws game state snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw clears the screen, draws the whole game and shows it
func (r *Renderer) Draw(state *engine.GameState) {
	r.screen.Clear()
	if state != nil {
		r.drawBoard(state)
		r.drawPanel(state)
	}
	r.screen.Show()
}

// BoardOrigin returns the screen position of board cell (0,0)
func BoardOrigin() (x, y int) {
	return boardLeft + 1, boardTop + 1
}

func (r *Renderer) drawBoard(state *engine.GameState) {
	w, h := state.Board.Width(), state.Board.Height()
	right := boardLeft + 1 + w*cellWidth
	bottom := boardTop + 1 + h

	for x := boardLeft + 1; x < right; x++ {
		r.screen.SetContent(x, boardTop, '─', nil, styleBorder)
		r.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardTop + 1; y < bottom; y++ {
		r.screen.SetContent(boardLeft, y, '│', nil, styleBorder)
		r.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(boardLeft, boardTop, '┌', nil, styleBorder)
	r.screen.SetContent(right, boardTop, '┐', nil, styleBorder)
	r.screen.SetContent(boardLeft, bottom, '└', nil, styleBorder)
	r.screen.SetContent(right, bottom, '┘', nil, styleBorder)

	for y, row := range state.Board {
		for x, v := range row {
			r.drawCell(x, y, v)
		}
	}

	if state.Active != nil && !state.GameOver {
		for _, c := range state.Active.Cells() {
			if c.Y >= 0 && c.Y < h && c.X >= 0 && c.X < w {
				r.drawCell(c.X, c.Y, engine.Cell(state.Active.Kind))
			}
		}
	}
}

func (r *Renderer) drawCell(x, y int, v engine.Cell) {
	ox, oy := BoardOrigin()
	sx, sy := ox+x*cellWidth, oy+y

	if v == engine.Empty {
		r.screen.SetContent(sx, sy, ' ', nil, styleEmpty)
		r.screen.SetContent(sx+1, sy, '·', nil, styleEmpty)
		return
	}

	style := styleDefault.Foreground(kindColors[engine.Kind(v)])
	r.screen.SetContent(sx, sy, '█', nil, style)
	r.screen.SetContent(sx+1, sy, '█', nil, style)
}

func (r *Renderer) drawPanel(state *engine.GameState) {
	px := boardLeft + 2 + state.Board.Width()*cellWidth + panelGap
	y := boardTop

	r.drawText(px, y, "NEXT", styleLabel)
	if state.Next != nil {
		style := styleDefault.Foreground(kindColors[state.Next.Kind])
		for dy, line := range engine.RenderPreview(state.Next) {
			for dx, ch := range line {
				if ch != ' ' {
					r.screen.SetContent(px+dx*cellWidth, y+1+dy, '█', nil, style)
					r.screen.SetContent(px+dx*cellWidth+1, y+1+dy, '█', nil, style)
				}
			}
		}
	}

	y += 4
	r.drawText(px, y, fmt.Sprintf("Score  %d", state.Score), styleLabel)
	r.drawText(px, y+1, fmt.Sprintf("Lines  %d", state.Lines), styleLabel)
	r.drawText(px, y+2, fmt.Sprintf("Level  %d", state.Level), styleLabel)
	if state.RulesetName != "" {
		r.drawText(px, y+3, state.RulesetName, styleHelp)
	}

	y += 5
	switch state.Phase() {
	case engine.PhaseGameOver:
		r.drawText(px, y, "GAME OVER", styleOver)
		r.drawText(px, y+1, "Space/R to play again", styleHelp)
	case engine.PhasePaused:
		r.drawText(px, y, "PAUSED", styleBanner)
		r.drawText(px, y+1, "Space to resume", styleHelp)
	case engine.PhaseNotStarted:
		r.drawText(px, y, "Press Space to start", styleBanner)
	default:
		if state.Message != "" {
			r.drawText(px, y, state.Message, styleDefault)
		}
	}

	y += 3
	for i, line := range helpLines {
		r.drawText(px, y+i, line, styleHelp)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
