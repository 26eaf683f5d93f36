package engine

// Cell is a single board cell value: 0 is empty, 1..7 identify the piece kind that locked it.
type Cell uint8

// Empty marks an unoccupied board cell.
const Empty Cell = 0

const (
	// Classic board dimensions
	DefaultWidth  = 10
	DefaultHeight = 20

	// Ruleset validation bounds
	MinBoardWidth  = 4
	MaxBoardWidth  = 40
	MinBoardHeight = 4
	MaxBoardHeight = 60

	// Classic progression
	DefaultLinesPerLevel = 10
	DefaultBaseGravityMs = 1000
	DefaultGravityStepMs = 50
	DefaultMinGravityMs  = 50
)

// DefaultLineScores is the classic base score table indexed by lines cleared in one lock.
var DefaultLineScores = []int{0, 100, 300, 500, 800}

// Grid is a rotation state of a piece: rows of cell values, 0 meaning no block.
type Grid [][]Cell

// Width returns the number of columns in the grid's first row.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows in the grid.
func (g Grid) Height() int {
	return len(g)
}

// Board is the fixed-size field of locked cells, row-major with row 0 at the top.
type Board [][]Cell

// NewBoard allocates an empty board.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Board) Height() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y, row := range b {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Position represents x,y coordinates on the board
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is a falling piece: its kind, the index into that kind's rotation list,
// and the board offset of the rotation grid's top-left corner.
type Piece struct {
	Kind     Kind     `json:"kind"`
	Rotation int      `json:"rotation"`
	Pos      Position `json:"pos"`
}

// Grid returns the rotation grid the piece currently occupies.
func (p Piece) Grid() Grid {
	states := RotationStates(p.Kind)
	return states[p.Rotation%len(states)]
}

// Cells returns the absolute board coordinates of the piece's occupied cells.
func (p Piece) Cells() []Position {
	grid := p.Grid()
	cells := make([]Position, 0, 4)
	for py, row := range grid {
		for px, v := range row {
			if v != Empty {
				cells = append(cells, Position{X: p.Pos.X + px, Y: p.Pos.Y + py})
			}
		}
	}
	return cells
}

// Ruleset describes the board size and the scoring/progression tables of a game.
type Ruleset struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	Width         int    `json:"width" yaml:"width"`
	Height        int    `json:"height" yaml:"height"`
	LineScores    []int  `json:"line_scores" yaml:"line_scores"`
	LinesPerLevel int    `json:"lines_per_level" yaml:"lines_per_level"`
	BaseGravityMs int    `json:"base_gravity_ms" yaml:"base_gravity_ms"`
	GravityStepMs int    `json:"gravity_step_ms" yaml:"gravity_step_ms"`
	MinGravityMs  int    `json:"min_gravity_ms" yaml:"min_gravity_ms"`
	Seed          int64  `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 seeds from the clock
}

// Phase is the session state machine position.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseRunning    Phase = "running"
	PhasePaused     Phase = "paused"
	PhaseGameOver   Phase = "game_over"
)

// GameState represents the complete session state
type GameState struct {
	Board             Board  `json:"board"`
	Active            *Piece `json:"active,omitempty"`
	Next              *Piece `json:"next,omitempty"`
	Score             int    `json:"score"`
	Lines             int    `json:"lines"`
	Level             int    `json:"level"`
	Running           bool   `json:"running"`
	Paused            bool   `json:"paused"`
	GameOver          bool   `json:"game_over"`
	GravityIntervalMs int    `json:"gravity_interval_ms"`
	PiecesSpawned     int    `json:"pieces_spawned"`
	RulesetName       string `json:"ruleset_name"`
	Message           string `json:"message"`
}

// Clone returns a deep copy suitable for handing to renderers.
func (gs *GameState) Clone() *GameState {
	out := *gs
	out.Board = gs.Board.Clone()
	if gs.Active != nil {
		a := *gs.Active
		out.Active = &a
	}
	if gs.Next != nil {
		n := *gs.Next
		out.Next = &n
	}
	return &out
}

// Phase reports the state machine position this state is in
func (gs *GameState) Phase() Phase {
	switch {
	case gs.GameOver:
		return PhaseGameOver
	case gs.Running && gs.Paused:
		return PhasePaused
	case gs.Running:
		return PhaseRunning
	default:
		return PhaseNotStarted
	}
}

// TickResult reports what a single gravity tick did.
type TickResult struct {
	Moved        bool `json:"moved"`
	Locked       bool `json:"locked"`
	LinesCleared int  `json:"lines_cleared"`
	ScoreDelta   int  `json:"score_delta"`
	LevelUp      bool `json:"level_up"`
	GameOver     bool `json:"game_over"`
}
