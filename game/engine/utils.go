package engine

// CountFilledCells counts the occupied cells on a board
func CountFilledCells(board Board) int {
	count := 0
	for _, row := range board {
		for _, v := range row {
			if v != Empty {
				count++
			}
		}
	}
	return count
}

// ColumnHeights returns, per column, the height of the highest occupied cell measured from the floor.
func ColumnHeights(board Board) []int {
	heights := make([]int, board.Width())
	for x := range heights {
		for y := 0; y < board.Height(); y++ {
			if board[y][x] != Empty {
				heights[x] = board.Height() - y
				break
			}
		}
	}
	return heights
}

// CellRune maps a cell value to its display letter, '.' for empty.
func CellRune(v Cell) rune {
	k := Kind(v)
	if !k.Valid() {
		return '.'
	}
	return rune(kindNames[k][0])
}

// RenderRows draws the board with the active piece overlaid, one string per row.
// The active piece is drawn in lower case so it can be told apart from locked cells.
func RenderRows(state *GameState) []string {
	rows := make([][]rune, state.Board.Height())
	for y, row := range state.Board {
		rows[y] = make([]rune, len(row))
		for x, v := range row {
			rows[y][x] = CellRune(v)
		}
	}

	if state.Active != nil && !state.GameOver {
		for _, c := range state.Active.Cells() {
			if c.Y >= 0 && c.Y < len(rows) && c.X >= 0 && c.X < len(rows[c.Y]) {
				rows[c.Y][c.X] = CellRune(Cell(state.Active.Kind)) + ('a' - 'A')
			}
		}
	}

	out := make([]string, len(rows))
	for y, row := range rows {
		out[y] = string(row)
	}
	return out
}

// RenderPreview draws a piece's spawn orientation, one string per row.
func RenderPreview(p *Piece) []string {
	if p == nil {
		return nil
	}
	grid := RotationStates(p.Kind)[0]
	out := make([]string, grid.Height())
	for y, row := range grid {
		line := make([]rune, len(row))
		for x, v := range row {
			if v == Empty {
				line[x] = ' '
			} else {
				line[x] = CellRune(v)
			}
		}
		out[y] = string(line)
	}
	return out
}
