package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationStates_Counts(t *testing.T) {
	expected := map[Kind]int{
		KindI: 1,
		KindO: 1,
		KindT: 4,
		KindS: 2,
		KindZ: 2,
		KindJ: 4,
		KindL: 4,
	}

	for kind, count := range expected {
		assert.Len(t, RotationStates(kind), count, "rotation count for %s", kind)
	}
}

func TestRotationStates_FourCellsOfKindValue(t *testing.T) {
	for _, kind := range Kinds() {
		for rot, grid := range RotationStates(kind) {
			cells := 0
			for _, row := range grid {
				assert.Len(t, row, grid.Width(), "%s rotation %d is ragged", kind, rot)
				for _, v := range row {
					if v == Empty {
						continue
					}
					cells++
					assert.Equal(t, Cell(kind), v, "%s rotation %d holds a foreign value", kind, rot)
				}
			}
			assert.Equal(t, 4, cells, "%s rotation %d", kind, rot)
		}
	}
}

func TestRotationStates_InvalidKind(t *testing.T) {
	assert.Nil(t, RotationStates(0))
	assert.Nil(t, RotationStates(Kind(42)))
}

func TestSpawnOffset(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		wantX int
	}{
		{KindI, 10, 3},
		{KindO, 10, 4},
		{KindT, 10, 4},
		{KindS, 10, 4},
		{KindL, 10, 4},
		{KindI, 4, 0},
		{KindT, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			x, y := SpawnOffset(tt.kind, tt.width)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, 0, y)
		})
	}
}

func TestNewPiece(t *testing.T) {
	p := NewPiece(KindJ, DefaultWidth)
	assert.Equal(t, KindJ, p.Kind)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, Position{X: 4, Y: 0}, p.Pos)
	assert.ElementsMatch(t, []Position{{4, 0}, {4, 1}, {5, 1}, {6, 1}}, p.Cells())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("t")
	require.NoError(t, err)
	assert.Equal(t, KindT, k)

	k, err = ParseKind(" L ")
	require.NoError(t, err)
	assert.Equal(t, KindL, k)

	_, err = ParseKind("X")
	assert.Error(t, err)
}

func TestKind_JSON(t *testing.T) {
	data, err := json.Marshal(Piece{Kind: KindS, Rotation: 1, Pos: Position{X: 2, Y: 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"S","rotation":1,"pos":{"x":2,"y":3}}`, string(data))

	var p Piece
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"Z","rotation":0,"pos":{"x":1,"y":0}}`), &p))
	assert.Equal(t, KindZ, p.Kind)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"Q"}`), &p))
}
