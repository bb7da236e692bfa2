// path: internal/game/types.go
// Package game implements the core chess rules engine: bitboard position
// snapshots, move generation with king-safety filtering, and the per-game
// state machine that tracks turn, status, and draw history.
package game

// Piece is a bit-flag set describing a square's contents. An occupied
// square's value combines exactly one color flag with one kind flag.
type Piece uint8

const (
	King Piece = 1 << iota
	Queen
	Rook
	Bishop
	Knight
	Pawn
	White
	Black

	NoPiece Piece = 0
)

// Kind strips the color flags.
func (p Piece) Kind() Piece { return p &^ (White | Black) }

// Side strips the kind flags.
func (p Piece) Side() Piece { return p & (White | Black) }

// Opposite returns the other color, or NoPiece when p carries no color flag.
func (p Piece) Opposite() Piece {
	switch p.Side() {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoPiece
	}
}

// String renders the piece as its FEN letter, uppercase for White.
func (p Piece) String() string {
	var letter byte
	switch p.Kind() {
	case King:
		letter = 'k'
	case Queen:
		letter = 'q'
	case Rook:
		letter = 'r'
	case Bishop:
		letter = 'b'
	case Knight:
		letter = 'n'
	case Pawn:
		letter = 'p'
	default:
		return "-"
	}
	if p.Side() == White {
		letter -= 'a' - 'A'
	}
	return string(letter)
}

// Move names a source square, a destination square, and an optional
// promotion piece kind (NoPiece when the move promotes nothing).
type Move struct {
	FromFile  byte  `json:"fromFile"`
	FromRank  int   `json:"fromRank"`
	ToFile    byte  `json:"toFile"`
	ToRank    int   `json:"toRank"`
	Promotion Piece `json:"promotion"`
}

// String renders the coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := string([]byte{m.FromFile, byte('0' + m.FromRank), m.ToFile, byte('0' + m.ToRank)})
	if m.Promotion != NoPiece {
		s += m.Promotion.Kind().String()
	}
	return s
}

// AttackState is the game's derived status, recomputed after every
// successful move. Exactly one value holds at a time.
type AttackState uint8

const (
	AttackNone AttackState = iota
	AttackCheck
	AttackCheckmate
	AttackStalemate
	AttackDrawByInactivity
	AttackDrawByRepetition
)

func (a AttackState) String() string {
	switch a {
	case AttackNone:
		return "none"
	case AttackCheck:
		return "check"
	case AttackCheckmate:
		return "checkmate"
	case AttackStalemate:
		return "stalemate"
	case AttackDrawByInactivity:
		return "draw by inactivity"
	case AttackDrawByRepetition:
		return "draw by repetition"
	default:
		return "?"
	}
}

// ErrorCondition reports why a move was rejected. NoError signals success;
// any other value leaves the game untouched.
type ErrorCondition uint8

const (
	NoError ErrorCondition = iota
	InvalidInput
	InvalidSquare
	MustMoveOwnPiece
	CantTakeOwnPiece
	InvalidMovement
)

func (c ErrorCondition) String() string {
	switch c {
	case NoError:
		return "none"
	case InvalidInput:
		return "invalid input"
	case InvalidSquare:
		return "invalid square"
	case MustMoveOwnPiece:
		return "must move own piece"
	case CantTakeOwnPiece:
		return "cant take own piece"
	case InvalidMovement:
		return "invalid movement"
	default:
		return "?"
	}
}
