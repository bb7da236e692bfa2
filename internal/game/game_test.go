// path: internal/game/game_test.go
package game

import (
	"errors"
	"testing"
)

func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, mv := range moves {
		m := Move{FromFile: mv[0], FromRank: int(mv[1] - '0'), ToFile: mv[2], ToRank: int(mv[3] - '0')}
		if ec := g.Move(m); ec != NoError {
			t.Fatalf("move %s rejected: %v", mv, ec)
		}
	}
}

func TestNewGameDefaults(t *testing.T) {
	g := NewGame()

	if g.GetTurn() != White {
		t.Fatalf("turn = %v, want white", g.GetTurn())
	}
	if g.Status() != AttackNone {
		t.Fatalf("status = %v, want none", g.Status())
	}
	if g.Board() != InitialBoardState() {
		t.Fatal("board is not the initial position")
	}
	if len(g.History()) != 0 {
		t.Fatalf("history length = %d, want 0", len(g.History()))
	}
}

func TestMoveRotatesTurn(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "e2e4")
	if g.GetTurn() != Black {
		t.Fatalf("turn after one ply = %v, want black", g.GetTurn())
	}
	playMoves(t, g, "e7e5")
	if g.GetTurn() != White {
		t.Fatalf("turn after two plies = %v, want white", g.GetTurn())
	}
}

func TestMoveErrorConditions(t *testing.T) {
	tests := []struct {
		name string
		mv   Move
		want ErrorCondition
	}{
		{
			name: "off-board source",
			mv:   Move{FromFile: 'i', FromRank: 2, ToFile: 'e', ToRank: 4},
			want: InvalidSquare,
		},
		{
			name: "off-board destination",
			mv:   Move{FromFile: 'e', FromRank: 2, ToFile: 'e', ToRank: 9},
			want: InvalidSquare,
		},
		{
			name: "empty source square",
			mv:   Move{FromFile: 'e', FromRank: 4, ToFile: 'e', ToRank: 5},
			want: MustMoveOwnPiece,
		},
		{
			name: "opponent piece on source",
			mv:   Move{FromFile: 'e', FromRank: 7, ToFile: 'e', ToRank: 5},
			want: MustMoveOwnPiece,
		},
		{
			name: "own piece on destination",
			mv:   Move{FromFile: 'b', FromRank: 1, ToFile: 'd', ToRank: 2},
			want: CantTakeOwnPiece,
		},
		{
			name: "unreachable destination",
			mv:   Move{FromFile: 'e', FromRank: 2, ToFile: 'e', ToRank: 5},
			want: InvalidMovement,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			if ec := g.Move(tt.mv); ec != tt.want {
				t.Fatalf("Move(%v) = %v, want %v", tt.mv, ec, tt.want)
			}
			if g.Board() != InitialBoardState() {
				t.Fatal("rejected move changed the board")
			}
			if g.GetTurn() != White {
				t.Fatal("rejected move rotated the turn")
			}
			if len(g.History()) != 0 {
				t.Fatal("rejected move touched the history")
			}
		})
	}
}

func TestCheckAndEscape(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "e2e4", "e7e5", "d1h5", "b8c6", "h5f7")

	if g.Status() != AttackCheck {
		t.Fatalf("status after Qxf7+ = %v, want check", g.Status())
	}

	playMoves(t, g, "e8f7")
	if g.Status() != AttackNone {
		t.Fatalf("status after Kxf7 = %v, want none", g.Status())
	}
	if g.Board().KindPieces(Queen)&TranslateToBit('d', 8) == 0 {
		t.Fatal("expected only the black queen to remain")
	}
}

func TestScholarsMate(t *testing.T) {
	g := NewGame()
	playMoves(t, g, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")

	if g.Status() != AttackCheckmate {
		t.Fatalf("status = %v, want checkmate", g.Status())
	}
	if g.GetTurn() != Black {
		t.Fatalf("turn = %v, want black (the mated side)", g.GetTurn())
	}
}

func TestStalemate(t *testing.T) {
	state := place(t, map[string]Piece{
		"a8": Black | King,
		"c8": White | King,
		"b1": White | Queen,
	})
	g := NewGame(WithPosition(state, White))

	playMoves(t, g, "b1b6")
	if g.Status() != AttackStalemate {
		t.Fatalf("status = %v, want stalemate", g.Status())
	}
}

func TestNoStalemateWhenOnlyEscapeIsPushSquare(t *testing.T) {
	// Black's king can step to a7, the square in front of the white pawn.
	// The pawn's push reach must not count as an attack there.
	state := place(t, map[string]Piece{
		"a8": Black | King,
		"a6": White | Pawn,
		"b1": White | Rook,
		"h1": White | King,
	})
	g := NewGame(WithPosition(state, Black))

	if g.Status() != AttackNone {
		t.Fatalf("status = %v, want none", g.Status())
	}
	moves, err := g.GetValidMoves('a', 8)
	if err != nil {
		t.Fatalf("GetValidMoves: %v", err)
	}
	if len(moves) != 1 || moves[0].String() != "a7" {
		t.Fatalf("king moves = %v, want [a7]", moves)
	}

	playMoves(t, g, "a8a7")
	if g.Status() != AttackNone {
		t.Fatalf("status after Ka7 = %v, want none", g.Status())
	}
}

func TestDrawByRepetition(t *testing.T) {
	g := NewGame()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	for i := 0; i < 2; i++ {
		playMoves(t, g, shuffle...)
		if g.Status() != AttackNone {
			t.Fatalf("status after %d shuffles = %v, want none", i+1, g.Status())
		}
	}

	playMoves(t, g, shuffle...)
	if g.Status() != AttackDrawByRepetition {
		t.Fatalf("status after third repetition = %v, want draw by repetition", g.Status())
	}
}

func TestDrawByInactivity(t *testing.T) {
	g := NewGame(WithDrawLimits(6, 100))
	playMoves(t, g, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6")

	if g.Status() != AttackDrawByInactivity {
		t.Fatalf("status = %v, want draw by inactivity", g.Status())
	}
}

func TestHistoryResetsOnIrreversibleMoves(t *testing.T) {
	g := NewGame()

	playMoves(t, g, "g1f3", "g8f6")
	if n := len(g.History()); n != 2 {
		t.Fatalf("history after knight moves = %d, want 2", n)
	}

	playMoves(t, g, "e2e4")
	if n := len(g.History()); n != 1 {
		t.Fatalf("history after pawn move = %d, want 1", n)
	}

	playMoves(t, g, "f6e4")
	if n := len(g.History()); n != 1 {
		t.Fatalf("history after capture = %d, want 1", n)
	}
}

func TestPromotion(t *testing.T) {
	state := place(t, map[string]Piece{
		"e1": White | King,
		"e8": Black | King,
		"a7": White | Pawn,
	})
	g := NewGame(WithPosition(state, White))

	ec := g.Move(Move{FromFile: 'a', FromRank: 7, ToFile: 'a', ToRank: 8, Promotion: Queen})
	if ec != NoError {
		t.Fatalf("promotion rejected: %v", ec)
	}

	pc, err := g.GetSquareContents('a', 8)
	if err != nil {
		t.Fatalf("read a8: %v", err)
	}
	if pc != White|Queen {
		t.Fatalf("a8 = %v, want white queen", pc)
	}
	if g.Status() != AttackCheck {
		t.Fatalf("status = %v, want check along the back rank", g.Status())
	}
}

func TestGetValidMoves(t *testing.T) {
	g := NewGame()

	moves, err := g.GetValidMoves('e', 2)
	if err != nil {
		t.Fatalf("GetValidMoves: %v", err)
	}
	if len(moves) != 2 || moves[0].String() != "e3" || moves[1].String() != "e4" {
		t.Fatalf("moves from e2 = %v, want [e3 e4]", moves)
	}

	moves, err = g.GetValidMoves('e', 4)
	if err != nil {
		t.Fatalf("GetValidMoves on empty square: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("moves from empty square = %v, want none", moves)
	}

	if _, err := g.GetValidMoves('z', 4); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("error = %v, want ErrInvalidOperation", err)
	}
	if _, err := g.GetSquareContents('a', 0); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("error = %v, want ErrInvalidOperation", err)
	}
}
