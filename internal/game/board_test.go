// path: internal/game/board_test.go
package game

import "testing"

// place builds a position from coordinate->piece pairs. Coordinates are in
// the usual "e2" form.
func place(t *testing.T, pieces map[string]Piece) BoardState {
	t.Helper()
	var b BoardState
	for coord, pc := range pieces {
		if len(coord) != 2 {
			t.Fatalf("bad coordinate %q", coord)
		}
		file, rank := coord[0], int(coord[1]-'0')
		if !IsValidSquare(file, rank) {
			t.Fatalf("bad coordinate %q", coord)
		}
		b = b.PlacePiece(TranslateToBit(file, rank), pc)
	}
	return b
}

func TestInitialBoardState(t *testing.T) {
	b := InitialBoardState()

	tests := []struct {
		coord string
		want  Piece
	}{
		{"a1", White | Rook},
		{"b1", White | Knight},
		{"c1", White | Bishop},
		{"d1", White | Queen},
		{"e1", White | King},
		{"h2", White | Pawn},
		{"a8", Black | Rook},
		{"d8", Black | Queen},
		{"e8", Black | King},
		{"c7", Black | Pawn},
		{"e4", NoPiece},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.coord, func(t *testing.T) {
			got := b.SquareContents(TranslateToBit(tt.coord[0], int(tt.coord[1]-'0')))
			if got != tt.want {
				t.Fatalf("contents of %s = %v, want %v", tt.coord, got, tt.want)
			}
		})
	}

	if n := len(b.Occupied().Squares()); n != 32 {
		t.Fatalf("occupied squares = %d, want 32", n)
	}
	if b.SidePieces(White) != 0xFFFF {
		t.Fatalf("white pieces = %#x, want 0xffff", uint64(b.SidePieces(White)))
	}
}

func TestMovePiece(t *testing.T) {
	b := InitialBoardState()
	from := TranslateToBit('e', 2)
	to := TranslateToBit('e', 4)

	next := b.MovePiece(from, to)

	if next.SquareContents(from) != NoPiece {
		t.Fatalf("source square still occupied: %v", next.SquareContents(from))
	}
	if got := next.SquareContents(to); got != White|Pawn {
		t.Fatalf("destination = %v, want white pawn", got)
	}
	// The receiver is a value; the original must be untouched.
	if b.SquareContents(from) != White|Pawn {
		t.Fatal("original board mutated")
	}
}

func TestMovePieceCaptureClearsDefender(t *testing.T) {
	b := place(t, map[string]Piece{
		"e1": White | King,
		"e8": Black | King,
		"d4": White | Rook,
		"d7": Black | Pawn,
	})

	next := b.MovePiece(TranslateToBit('d', 4), TranslateToBit('d', 7))

	if got := next.SquareContents(TranslateToBit('d', 7)); got != White|Rook {
		t.Fatalf("d7 = %v, want white rook", got)
	}
	if next.SidePieces(Black) != TranslateToBit('e', 8) {
		t.Fatalf("black pieces = %#x, want only e8", uint64(next.SidePieces(Black)))
	}
	if !next.KindPieces(Pawn).Empty() {
		t.Fatal("captured pawn still present in pawn mask")
	}
}

func TestSetPieceChangesKindKeepsColor(t *testing.T) {
	b := place(t, map[string]Piece{
		"e1": White | King,
		"e8": Black | King,
		"a8": White | Pawn,
	})
	sq := TranslateToBit('a', 8)

	next := b.SetPiece(sq, Queen)

	if got := next.SquareContents(sq); got != White|Queen {
		t.Fatalf("a8 = %v, want white queen", got)
	}
	if !next.KindPieces(Pawn).Empty() {
		t.Fatal("pawn mask still set after promotion")
	}
}

func TestBoardStateEquality(t *testing.T) {
	a := InitialBoardState()
	b := InitialBoardState()
	if a != b {
		t.Fatal("identical positions compare unequal")
	}

	c := a.MovePiece(TranslateToBit('g', 1), TranslateToBit('f', 3))
	if a == c {
		t.Fatal("distinct positions compare equal")
	}
	// Moving the knight back restores structural equality.
	d := c.MovePiece(TranslateToBit('f', 3), TranslateToBit('g', 1))
	if a != d {
		t.Fatal("round-trip position compares unequal")
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	for rank := 1; rank <= 8; rank++ {
		for file := byte('a'); file <= 'h'; file++ {
			bit := TranslateToBit(file, rank)
			if bit.Empty() {
				t.Fatalf("no bit for %c%d", file, rank)
			}
			sqs := TranslateToSquares(bit)
			if len(sqs) != 1 {
				t.Fatalf("%c%d mapped to %d squares", file, rank, len(sqs))
			}
			if sqs[0].File() != file || sqs[0].Rank() != rank {
				t.Fatalf("%c%d round-tripped to %s", file, rank, sqs[0])
			}
		}
	}

	if !TranslateToBit('i', 4).Empty() {
		t.Fatal("file i produced a bit")
	}
	if !TranslateToBit('a', 9).Empty() {
		t.Fatal("rank 9 produced a bit")
	}
	if IsValidSquare('`', 1) || IsValidSquare('a', 0) {
		t.Fatal("out-of-range coordinate reported valid")
	}
}
