// path: internal/render/svg.go

// Package render draws board positions as SVG diagrams.
package render

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/PracplayLLC/chess-app/internal/game"
)

const squareSize = 40

const (
	lightFill = "fill:#f0d9b5"
	darkFill  = "fill:#b58863"
	pieceText = "font-size:30px;text-anchor:middle"
)

// WriteBoard writes an SVG diagram of the position to w, White's side at
// the bottom.
func WriteBoard(w io.Writer, board game.BoardState) {
	canvas := svg.New(w)
	canvas.Start(8*squareSize, 8*squareSize)

	for rank := 8; rank >= 1; rank-- {
		for file := byte('a'); file <= 'h'; file++ {
			x := int(file-'a') * squareSize
			y := (8 - rank) * squareSize

			fill := lightFill
			if (int(file-'a')+rank)%2 == 1 {
				fill = darkFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)

			if pc := board.SquareContents(game.TranslateToBit(file, rank)); pc != game.NoPiece {
				canvas.Text(x+squareSize/2, y+squareSize-9, glyph(pc), pieceText)
			}
		}
	}
	canvas.End()
}

func glyph(pc game.Piece) string {
	white := pc.Side() == game.White
	switch pc.Kind() {
	case game.King:
		if white {
			return "♔"
		}
		return "♚"
	case game.Queen:
		if white {
			return "♕"
		}
		return "♛"
	case game.Rook:
		if white {
			return "♖"
		}
		return "♜"
	case game.Bishop:
		if white {
			return "♗"
		}
		return "♝"
	case game.Knight:
		if white {
			return "♘"
		}
		return "♞"
	case game.Pawn:
		if white {
			return "♙"
		}
		return "♟"
	}
	return ""
}
