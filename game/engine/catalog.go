package engine

import (
	"fmt"
	"strings"
)

// Kind identifies one of the seven pieces. Its numeric value is also the cell value the piece locks with.
type Kind uint8

const (
	KindI Kind = iota + 1
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

var kindNames = [KindCount + 1]string{"", "I", "O", "T", "S", "Z", "J", "L"}

// rotationTable holds the ordered rotation grids for each kind; rotation 0 is the spawn orientation.
var rotationTable = [KindCount + 1][]Grid{
	KindI: {
		{{1, 1, 1, 1}},
	},
	KindO: {
		{{2, 2},
			{2, 2}},
	},
	KindT: {
		{{0, 3, 0},
			{3, 3, 3}},
		{{3, 0},
			{3, 3},
			{3, 0}},
		{{3, 3, 3},
			{0, 3, 0}},
		{{0, 3},
			{3, 3},
			{0, 3}},
	},
	KindS: {
		{{0, 4, 4},
			{4, 4, 0}},
		{{4, 0},
			{4, 4},
			{0, 4}},
	},
	KindZ: {
		{{5, 5, 0},
			{0, 5, 5}},
		{{0, 5},
			{5, 5},
			{5, 0}},
	},
	KindJ: {
		{{6, 0, 0},
			{6, 6, 6}},
		{{6, 6},
			{6, 0},
			{6, 0}},
		{{6, 6, 6},
			{0, 0, 6}},
		{{0, 6},
			{0, 6},
			{6, 6}},
	},
	KindL: {
		{{0, 0, 7},
			{7, 7, 7}},
		{{7, 0},
			{7, 0},
			{7, 7}},
		{{7, 7, 7},
			{7, 0, 0}},
		{{7, 7},
			{0, 7},
			{0, 7}},
	},
}

// Kinds returns all piece kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}
}

// Valid reports whether k names a catalog piece.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind as its letter.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid piece kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind letter.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a letter (case-insensitive) into a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if kindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// RotationStates returns the ordered rotation grids for a kind.
// The returned grids are shared catalog data and must not be modified.
func RotationStates(kind Kind) []Grid {
	if !kind.Valid() {
		return nil
	}
	return rotationTable[kind]
}

// SpawnOffset returns the spawn position of a kind on a board of the given width:
// horizontally centered on rotation 0, at the top row.
func SpawnOffset(kind Kind, boardWidth int) (x, y int) {
	states := RotationStates(kind)
	if len(states) == 0 {
		return 0, 0
	}
	return boardWidth/2 - states[0].Width()/2, 0
}

// NewPiece creates a kind in its spawn orientation and position.
func NewPiece(kind Kind, boardWidth int) *Piece {
	x, y := SpawnOffset(kind, boardWidth)
	return &Piece{Kind: kind, Rotation: 0, Pos: Position{X: x, Y: y}}
}
