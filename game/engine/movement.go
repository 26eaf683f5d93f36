package engine

// IsValidPlacement reports whether grid can sit on board with its top-left corner at (offsetX, offsetY).
// Cells above row 0 are exempt from the occupancy check but still bounded horizontally.
func IsValidPlacement(board Board, offsetX, offsetY int, grid Grid) bool {
	width, height := board.Width(), board.Height()
	for py, row := range grid {
		for px, v := range row {
			if v == Empty {
				continue
			}
			x, y := offsetX+px, offsetY+py
			if x < 0 || x >= width || y >= height {
				return false
			}
			if y >= 0 && board[y][x] != Empty {
				return false
			}
		}
	}
	return true
}

// CanPlace checks whether piece fits on the state's board.
func (gs *GameState) CanPlace(p Piece) bool {
	return IsValidPlacement(gs.Board, p.Pos.X, p.Pos.Y, p.Grid())
}

// MovePiece shifts the active piece by (dx, dy) if the target placement is valid.
func (gs *GameState) MovePiece(dx, dy int) bool {
	if gs.Active == nil {
		return false
	}

	candidate := *gs.Active
	candidate.Pos.X += dx
	candidate.Pos.Y += dy
	if !gs.CanPlace(candidate) {
		return false
	}

	gs.Active.Pos = candidate.Pos
	return true
}

// RotatePiece advances the active piece to its next rotation state in place.
// There is no kick search: a colliding rotation is simply refused.
func (gs *GameState) RotatePiece() bool {
	if gs.Active == nil {
		return false
	}

	states := RotationStates(gs.Active.Kind)
	candidate := *gs.Active
	candidate.Rotation = (gs.Active.Rotation + 1) % len(states)
	if !gs.CanPlace(candidate) {
		return false
	}

	gs.Active.Rotation = candidate.Rotation
	return true
}

// LockPiece writes the active piece's cells into the board.
// Cells above the top row are dropped; the spawn check that follows detects the resulting game over.
func (gs *GameState) LockPiece() {
	if gs.Active == nil {
		return
	}

	grid := gs.Active.Grid()
	for py, row := range grid {
		for px, v := range row {
			if v == Empty {
				continue
			}
			x, y := gs.Active.Pos.X+px, gs.Active.Pos.Y+py
			if y >= 0 {
				gs.Board[y][x] = v
			}
		}
	}
}

// ClearFullLines removes every full row, inserting empty rows at the top, and returns how many were removed.
func (gs *GameState) ClearFullLines() int {
	cleared := 0
	width := gs.Board.Width()

	for y := gs.Board.Height() - 1; y >= 0; y-- {
		if !rowFull(gs.Board[y]) {
			continue
		}

		copy(gs.Board[1:y+1], gs.Board[0:y])
		gs.Board[0] = make([]Cell, width)
		cleared++
		// the row that slid into y has not been examined yet
		y++
	}

	return cleared
}

func rowFull(row []Cell) bool {
	for _, v := range row {
		if v == Empty {
			return false
		}
	}
	return true
}
