// path: internal/game/movegen.go
package game

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections = [...]moveDelta{
		{dr: 1, df: 0},
		{dr: -1, df: 0},
		{dr: 0, df: 1},
		{dr: 0, df: -1},
	}
	bishopDirections = [...]moveDelta{
		{dr: 1, df: 1},
		{dr: 1, df: -1},
		{dr: -1, df: 1},
		{dr: -1, df: -1},
	}
	knightOffsets = [...]moveDelta{
		{dr: 2, df: 1},
		{dr: 1, df: 2},
		{dr: -1, df: 2},
		{dr: -2, df: 1},
		{dr: -2, df: -1},
		{dr: -1, df: -2},
		{dr: 1, df: -2},
		{dr: 2, df: -1},
	}
	kingOffsets = [...]moveDelta{
		{dr: 1, df: 0}, {dr: 1, df: 1}, {dr: 0, df: 1}, {dr: -1, df: 1},
		{dr: -1, df: 0}, {dr: -1, df: -1}, {dr: 0, df: -1}, {dr: 1, df: -1},
	}
)

// GenerateStandardMoves computes the pseudo-legal reach of every piece in
// pieces: movement and capture squares under piece rules, with no
// king-safety filtering. Squares in exclude are removed from the result.
// The union answers "which squares does this set of pieces attack".
func GenerateStandardMoves(b BoardState, pieces, exclude Bitboard) Bitboard {
	var reach Bitboard
	bb := pieces & b.all
	var sq Square
	for !bb.Empty() {
		sq, bb = bb.PopLSB()
		reach |= pieceReach(b, sq)
	}
	return reach &^ exclude
}

// GenerateMoves computes the legal reach of every piece in pieces: the
// pseudo-legal reach minus any destination that would leave the mover's own
// king attacked. Every candidate is verified by replaying it against a
// hypothetical state and recomputing the opponent's standard reach in full.
// opponentReach (the opponent's standard reach against the current state) is
// accepted so callers that already hold the attack map for check detection
// can pass it along. Standard reach includes pawn pushes, which are not
// attacks, so it must never prune candidates directly; the replay is the
// sole filter.
func GenerateMoves(b BoardState, pieces, opponentReach Bitboard) Bitboard {
	var legal Bitboard
	bb := pieces & b.all
	var sq Square
	for !bb.Empty() {
		sq, bb = bb.PopLSB()
		legal |= legalReach(b, sq)
	}
	return legal
}

// GenerateMovesForPiece computes the legal reach of the single piece on the
// single-bit mask sq. An empty square yields an empty reach.
func GenerateMovesForPiece(b BoardState, sq Bitboard) Bitboard {
	p := b.SquareContents(sq)
	if p == NoPiece {
		return 0
	}
	opponent := b.SidePieces(p.Opposite())
	return GenerateMoves(b, sq, GenerateStandardMoves(b, opponent, 0))
}

func legalReach(b BoardState, from Square) Bitboard {
	p := b.SquareContents(BB(from))
	raw := pieceReach(b, from)
	side := p.Side()
	fromBB := BB(from)
	var legal Bitboard
	raw.Iter(func(to Square) {
		hyp := b.MovePiece(fromBB, BB(to))
		reply := GenerateStandardMoves(hyp, hyp.SidePieces(side.Opposite()), 0)
		if reply&hyp.kings&hyp.SidePieces(side) == 0 {
			legal = legal.Add(to)
		}
	})
	return legal
}

func pieceReach(b BoardState, sq Square) Bitboard {
	p := b.SquareContents(BB(sq))
	switch p.Kind() {
	case Pawn:
		return pawnReach(b, sq, p.Side())
	case Knight:
		return offsetReach(b, sq, p.Side(), knightOffsets[:])
	case King:
		return offsetReach(b, sq, p.Side(), kingOffsets[:])
	case Bishop:
		return slideReach(b, sq, p.Side(), bishopDirections[:])
	case Rook:
		return slideReach(b, sq, p.Side(), rookDirections[:])
	case Queen:
		return slideReach(b, sq, p.Side(), rookDirections[:]) |
			slideReach(b, sq, p.Side(), bishopDirections[:])
	default:
		return 0
	}
}

func pawnReach(b BoardState, sq Square, side Piece) Bitboard {
	var reach Bitboard
	rank := int(sq) >> 3
	file := int(sq) & 7
	dir, startRank := 1, 1
	if side == Black {
		dir, startRank = -1, 6
	}

	if fwd, ok := squareAt(rank+dir, file); ok && !b.all.Has(fwd) {
		reach = reach.Add(fwd)
		if rank == startRank {
			if dbl, ok := squareAt(rank+2*dir, file); ok && !b.all.Has(dbl) {
				reach = reach.Add(dbl)
			}
		}
	}

	enemy := b.SidePieces(side.Opposite())
	for _, df := range []int{-1, 1} {
		if target, ok := squareAt(rank+dir, file+df); ok && enemy.Has(target) {
			reach = reach.Add(target)
		}
	}
	return reach
}

func offsetReach(b BoardState, sq Square, side Piece, deltas []moveDelta) Bitboard {
	var reach Bitboard
	rank := int(sq) >> 3
	file := int(sq) & 7
	own := b.SidePieces(side)

	for _, delta := range deltas {
		if target, ok := squareAt(rank+delta.dr, file+delta.df); ok && !own.Has(target) {
			reach = reach.Add(target)
		}
	}
	return reach
}

func slideReach(b BoardState, sq Square, side Piece, directions []moveDelta) Bitboard {
	var reach Bitboard
	startRank := int(sq) >> 3
	startFile := int(sq) & 7
	own := b.SidePieces(side)

	for _, delta := range directions {
		rank := startRank + delta.dr
		file := startFile + delta.df
		for {
			target, ok := squareAt(rank, file)
			if !ok {
				break
			}
			if !b.all.Has(target) {
				reach = reach.Add(target)
				rank += delta.dr
				file += delta.df
				continue
			}
			if !own.Has(target) {
				reach = reach.Add(target)
			}
			break
		}
	}
	return reach
}
