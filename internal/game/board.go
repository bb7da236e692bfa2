// path: internal/game/board.go
package game

// BoardState is an immutable snapshot of piece placement. Each category is
// one occupancy mask; a set bit appears in exactly one kind mask and one
// color mask. The zero value is an empty board. Every transformation returns
// a new snapshot, and two snapshots compare equal iff all masks match.
type BoardState struct {
	white   Bitboard
	black   Bitboard
	kings   Bitboard
	queens  Bitboard
	rooks   Bitboard
	bishops Bitboard
	knights Bitboard
	pawns   Bitboard
	all     Bitboard
}

// InitialBoardState returns the standard starting position.
func InitialBoardState() BoardState {
	b := BoardState{
		white:   0x000000000000FFFF,
		black:   0xFFFF000000000000,
		kings:   0x10 | 0x10<<56,
		queens:  0x08 | 0x08<<56,
		rooks:   0x81 | 0x81<<56,
		bishops: 0x24 | 0x24<<56,
		knights: 0x42 | 0x42<<56,
		pawns:   0xFF00 | 0xFF00<<40,
	}
	b.all = b.white | b.black
	return b
}

func (b *BoardState) masks() [8]*Bitboard {
	return [8]*Bitboard{&b.white, &b.black, &b.kings, &b.queens, &b.rooks, &b.bishops, &b.knights, &b.pawns}
}

// MovePiece moves whatever occupies from to to, removing any captured piece
// at to from the opponent's masks. from and to are single-bit masks.
func (b BoardState) MovePiece(from, to Bitboard) BoardState {
	next := b
	for _, m := range next.masks() {
		*m &^= to
		if *m&from != 0 {
			*m = (*m &^ from) | to
		}
	}
	next.all = next.white | next.black
	return next
}

// SetPiece replaces the piece kind at sq while preserving its color. Used
// for promotion.
func (b BoardState) SetPiece(sq Bitboard, kind Piece) BoardState {
	next := b
	next.kings &^= sq
	next.queens &^= sq
	next.rooks &^= sq
	next.bishops &^= sq
	next.knights &^= sq
	next.pawns &^= sq
	switch kind.Kind() {
	case King:
		next.kings |= sq
	case Queen:
		next.queens |= sq
	case Rook:
		next.rooks |= sq
	case Bishop:
		next.bishops |= sq
	case Knight:
		next.knights |= sq
	case Pawn:
		next.pawns |= sq
	}
	return next
}

// PlacePiece puts p on sq, replacing whatever was there. PlacePiece with
// NoPiece clears the square. Intended for position setup.
func (b BoardState) PlacePiece(sq Bitboard, p Piece) BoardState {
	next := b
	for _, m := range next.masks() {
		*m &^= sq
	}
	if p.Side() == White {
		next.white |= sq
	}
	if p.Side() == Black {
		next.black |= sq
	}
	switch p.Kind() {
	case King:
		next.kings |= sq
	case Queen:
		next.queens |= sq
	case Rook:
		next.rooks |= sq
	case Bishop:
		next.bishops |= sq
	case Knight:
		next.knights |= sq
	case Pawn:
		next.pawns |= sq
	}
	next.all = next.white | next.black
	return next
}

// SquareContents returns the color and kind flags occupying the single-bit
// mask sq, or NoPiece for an empty square.
func (b BoardState) SquareContents(sq Bitboard) Piece {
	var p Piece
	if b.white&sq != 0 {
		p |= White
	}
	if b.black&sq != 0 {
		p |= Black
	}
	if b.kings&sq != 0 {
		p |= King
	}
	if b.queens&sq != 0 {
		p |= Queen
	}
	if b.rooks&sq != 0 {
		p |= Rook
	}
	if b.bishops&sq != 0 {
		p |= Bishop
	}
	if b.knights&sq != 0 {
		p |= Knight
	}
	if b.pawns&sq != 0 {
		p |= Pawn
	}
	return p
}

// Occupied returns the union of both colors' pieces.
func (b BoardState) Occupied() Bitboard { return b.all }

// SidePieces returns the occupancy mask for the given color flag.
func (b BoardState) SidePieces(side Piece) Bitboard {
	switch side.Side() {
	case White:
		return b.white
	case Black:
		return b.black
	default:
		return 0
	}
}

// KindPieces returns the occupancy mask for the given kind flag, both colors.
func (b BoardState) KindPieces(kind Piece) Bitboard {
	switch kind.Kind() {
	case King:
		return b.kings
	case Queen:
		return b.queens
	case Rook:
		return b.rooks
	case Bishop:
		return b.bishops
	case Knight:
		return b.knights
	case Pawn:
		return b.pawns
	default:
		return 0
	}
}
