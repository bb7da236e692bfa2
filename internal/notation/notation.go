// path: internal/notation/notation.go

// Package notation converts between move text and structured moves. It
// accepts plain coordinate form ("e2e4", "e2-e4", "e7e8q") and algebraic
// form ("e4", "Nf3", "exd5", "Nbd2", "e8=Q"), and renders applied moves
// back to algebraic text.
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PracplayLLC/chess-app/internal/game"
)

// ErrBadNotation reports move text that cannot be resolved against the
// current position: malformed syntax, no matching piece, or ambiguity.
var ErrBadNotation = errors.New("bad notation")

// ParseMove resolves text into a structured move for the side to move in g.
// It never mutates g and never checks the resulting move for full legality
// beyond what source resolution requires.
func ParseMove(g *game.Game, text string) (game.Move, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimRight(s, "+#")
	if s == "" {
		return game.Move{}, fmt.Errorf("%w: empty move text", ErrBadNotation)
	}
	if mv, ok := parseCoordinate(s); ok {
		return mv, nil
	}
	return parseAlgebraic(g, s)
}

// Move is the text-form entry point: parse failures map to InvalidInput
// without touching game state, anything parseable is handed to g.Move.
func Move(g *game.Game, text string) game.ErrorCondition {
	mv, err := ParseMove(g, text)
	if err != nil {
		return game.InvalidInput
	}
	return g.Move(mv)
}

func parseCoordinate(s string) (game.Move, bool) {
	if len(s) >= 5 && s[2] == '-' {
		s = s[:2] + s[3:]
	}
	if len(s) != 4 && len(s) != 5 {
		return game.Move{}, false
	}
	mv := game.Move{
		FromFile: s[0], FromRank: int(s[1] - '0'),
		ToFile: s[2], ToRank: int(s[3] - '0'),
	}
	if !game.IsValidSquare(mv.FromFile, mv.FromRank) || !game.IsValidSquare(mv.ToFile, mv.ToRank) {
		return game.Move{}, false
	}
	if len(s) == 5 {
		mv.Promotion = promotionKind(s[4])
		if mv.Promotion == game.NoPiece {
			return game.Move{}, false
		}
	}
	return mv, true
}

func parseAlgebraic(g *game.Game, s string) (game.Move, error) {
	mv := game.Move{}

	if i := strings.IndexByte(s, '='); i >= 0 {
		if i != len(s)-2 {
			return mv, fmt.Errorf("%w: %q", ErrBadNotation, s)
		}
		mv.Promotion = promotionKind(s[len(s)-1])
		if mv.Promotion == game.NoPiece {
			return mv, fmt.Errorf("%w: unknown promotion in %q", ErrBadNotation, s)
		}
		s = s[:i]
		if s == "" {
			return mv, fmt.Errorf("%w: promotion without a move", ErrBadNotation)
		}
	}

	kind := game.Pawn
	if k := kindForLetter(s[0]); k != game.NoPiece {
		kind = k
		s = s[1:]
	}

	if len(s) < 2 {
		return mv, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	mv.ToFile, mv.ToRank = s[len(s)-2], int(s[len(s)-1]-'0')
	if !game.IsValidSquare(mv.ToFile, mv.ToRank) {
		return mv, fmt.Errorf("%w: bad destination in %q", ErrBadNotation, s)
	}

	hint := s[:len(s)-2]
	capture := strings.HasSuffix(hint, "x")
	hint = strings.TrimSuffix(hint, "x")

	var hintFile byte
	var hintRank int
	for i := 0; i < len(hint); i++ {
		switch c := hint[i]; {
		case c >= 'a' && c <= 'h':
			hintFile = c
		case c >= '1' && c <= '8':
			hintRank = int(c - '0')
		default:
			return mv, fmt.Errorf("%w: %q", ErrBadNotation, s)
		}
	}

	// Pawn pushes stay on their file; pawn captures must name it.
	if kind == game.Pawn {
		if capture && hintFile == 0 {
			return mv, fmt.Errorf("%w: pawn capture without source file in %q", ErrBadNotation, s)
		}
		if !capture {
			hintFile = mv.ToFile
		}
	}

	board := g.Board()
	dest := game.TranslateToBit(mv.ToFile, mv.ToRank)
	sources := board.SidePieces(g.GetTurn()) & board.KindPieces(kind)

	var matches []game.Square
	for _, sq := range game.TranslateToSquares(sources) {
		if hintFile != 0 && sq.File() != hintFile {
			continue
		}
		if hintRank != 0 && sq.Rank() != hintRank {
			continue
		}
		if game.GenerateMovesForPiece(board, game.TranslateToBit(sq.File(), sq.Rank()))&dest != 0 {
			matches = append(matches, sq)
		}
	}

	switch len(matches) {
	case 0:
		return mv, fmt.Errorf("%w: no piece can play %q", ErrBadNotation, s)
	case 1:
		mv.FromFile, mv.FromRank = matches[0].File(), matches[0].Rank()
		return mv, nil
	default:
		return mv, fmt.Errorf("%w: %q is ambiguous", ErrBadNotation, s)
	}
}

// Format renders an applied move in algebraic form. before is the position
// the move was played from; status is the attack state it produced.
func Format(before game.BoardState, mv game.Move, status game.AttackState) string {
	from := game.TranslateToBit(mv.FromFile, mv.FromRank)
	to := game.TranslateToBit(mv.ToFile, mv.ToRank)
	kind := before.SquareContents(from).Kind()
	capture := before.Occupied()&to != 0

	var sb strings.Builder
	dest := fmt.Sprintf("%c%d", mv.ToFile, mv.ToRank)

	if kind == game.Pawn || kind == game.NoPiece {
		if capture {
			sb.WriteByte(mv.FromFile)
			sb.WriteByte('x')
		}
		sb.WriteString(dest)
	} else {
		sb.WriteByte(letterForKind(kind))
		sb.WriteString(disambiguator(before, mv, kind, to))
		if capture {
			sb.WriteByte('x')
		}
		sb.WriteString(dest)
	}

	if mv.Promotion != game.NoPiece {
		sb.WriteByte('=')
		sb.WriteByte(letterForKind(mv.Promotion.Kind()))
	}

	switch status {
	case game.AttackCheckmate:
		sb.WriteByte('#')
	case game.AttackCheck:
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguator returns the minimal source hint needed when another piece of
// the same kind and color could also reach the destination.
func disambiguator(before game.BoardState, mv game.Move, kind game.Piece, to game.Bitboard) string {
	from := game.TranslateToBit(mv.FromFile, mv.FromRank)
	side := before.SquareContents(from).Side()
	peers := before.SidePieces(side) & before.KindPieces(kind) &^ from

	sameFile, sameRank, rivals := false, false, false
	for _, sq := range game.TranslateToSquares(peers) {
		if game.GenerateMovesForPiece(before, game.TranslateToBit(sq.File(), sq.Rank()))&to == 0 {
			continue
		}
		rivals = true
		if sq.File() == mv.FromFile {
			sameFile = true
		}
		if sq.Rank() == mv.FromRank {
			sameRank = true
		}
	}

	switch {
	case !rivals:
		return ""
	case !sameFile:
		return string(mv.FromFile)
	case !sameRank:
		return fmt.Sprintf("%d", mv.FromRank)
	default:
		return fmt.Sprintf("%c%d", mv.FromFile, mv.FromRank)
	}
}

func kindForLetter(c byte) game.Piece {
	switch c {
	case 'K':
		return game.King
	case 'Q':
		return game.Queen
	case 'R':
		return game.Rook
	case 'B':
		return game.Bishop
	case 'N':
		return game.Knight
	}
	return game.NoPiece
}

func letterForKind(kind game.Piece) byte {
	switch kind.Kind() {
	case game.King:
		return 'K'
	case game.Queen:
		return 'Q'
	case game.Rook:
		return 'R'
	case game.Bishop:
		return 'B'
	case game.Knight:
		return 'N'
	}
	return '?'
}

func promotionKind(c byte) game.Piece {
	switch c {
	case 'q', 'Q':
		return game.Queen
	case 'r', 'R':
		return game.Rook
	case 'b', 'B':
		return game.Bishop
	case 'n', 'N':
		return game.Knight
	}
	return game.NoPiece
}
