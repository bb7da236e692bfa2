// path: internal/game/game.go
package game

import "fmt"

// Draw-detection defaults: the game is drawn once this many reversible
// half-moves accumulate without a capture or pawn move, or once the same
// position recurs this many times among them.
const (
	DefaultInactivityLimit = 50
	DefaultRepetitionLimit = 3
)

// Game is the mutable session around immutable BoardState snapshots. It owns
// the current position, the side to move, the derived attack status, and the
// history of positions since the last irreversible move. A Game is not safe
// for concurrent mutation.
type Game struct {
	state   BoardState
	turn    Piece
	status  AttackState
	history []BoardState

	inactivityLimit int
	repetitionLimit int
}

// NewGame starts a game from the standard position with White to move.
func NewGame(options ...func(*Game)) *Game {
	g := &Game{
		state:           InitialBoardState(),
		turn:            White,
		inactivityLimit: DefaultInactivityLimit,
		repetitionLimit: DefaultRepetitionLimit,
	}
	for _, opt := range options {
		opt(g)
	}
	g.updateStatus()
	return g
}

// WithDrawLimits overrides the inactivity and repetition thresholds.
func WithDrawLimits(inactivity, repetition int) func(*Game) {
	return func(g *Game) {
		g.inactivityLimit = inactivity
		g.repetitionLimit = repetition
	}
}

// WithPosition starts the game from an arbitrary position. turn names the
// side to move; anything but Black means White.
func WithPosition(state BoardState, turn Piece) func(*Game) {
	return func(g *Game) {
		g.state = state
		if turn.Side() == Black {
			g.turn = Black
		} else {
			g.turn = White
		}
	}
}

// Move validates and applies mv, returning NoError on success. On any other
// condition the game is left exactly as it was. A successful move updates
// the board, the draw history, the attack status, and rotates the turn.
func (g *Game) Move(mv Move) ErrorCondition {
	if !IsValidSquare(mv.FromFile, mv.FromRank) || !IsValidSquare(mv.ToFile, mv.ToRank) {
		return InvalidSquare
	}
	from := TranslateToBit(mv.FromFile, mv.FromRank)
	to := TranslateToBit(mv.ToFile, mv.ToRank)
	own := g.state.SidePieces(g.turn)
	if own&from == 0 {
		return MustMoveOwnPiece
	}
	if own&to != 0 {
		return CantTakeOwnPiece
	}
	if GenerateMovesForPiece(g.state, from)&to == 0 {
		return InvalidMovement
	}

	capture := g.state.all&to != 0
	pawnMove := g.state.pawns&from != 0

	next := g.state.MovePiece(from, to)
	if mv.Promotion != NoPiece {
		next = next.SetPiece(to, mv.Promotion)
	}

	// Captures and pawn moves cannot be undone by later play, so the
	// positions before them can never recur.
	if capture || pawnMove {
		g.history = g.history[:0]
	}
	g.history = append(g.history, next)

	g.state = next
	g.turn = g.turn.Opposite()
	g.updateStatus()
	return NoError
}

func (g *Game) updateStatus() {
	defenders := g.state.SidePieces(g.turn)
	attackReach := GenerateStandardMoves(g.state, g.state.SidePieces(g.turn.Opposite()), 0)
	inCheck := attackReach&g.state.kings&defenders != 0
	hasMove := !GenerateMoves(g.state, defenders, attackReach).Empty()

	switch {
	case inCheck && !hasMove:
		g.status = AttackCheckmate
	case inCheck:
		g.status = AttackCheck
	case !hasMove:
		g.status = AttackStalemate
	case len(g.history) >= g.inactivityLimit:
		g.status = AttackDrawByInactivity
	case g.repetitions(g.state) >= g.repetitionLimit:
		g.status = AttackDrawByRepetition
	default:
		g.status = AttackNone
	}
}

func (g *Game) repetitions(state BoardState) int {
	n := 0
	for _, past := range g.history {
		if past == state {
			n++
		}
	}
	return n
}

// GetTurn returns the color flag of the side to move.
func (g *Game) GetTurn() Piece { return g.turn }

// Status returns the attack state derived from the last applied move.
func (g *Game) Status() AttackState { return g.status }

// Board returns the current position snapshot.
func (g *Game) Board() BoardState { return g.state }

// History returns the positions recorded since the last irreversible move,
// oldest first.
func (g *Game) History() []BoardState {
	out := make([]BoardState, len(g.history))
	copy(out, g.history)
	return out
}

// GetSquareContents returns the piece flags on the named square.
func (g *Game) GetSquareContents(file byte, rank int) (Piece, error) {
	if !IsValidSquare(file, rank) {
		return NoPiece, fmt.Errorf("%w: no square %c%d", ErrInvalidOperation, file, rank)
	}
	return g.state.SquareContents(TranslateToBit(file, rank)), nil
}

// GetValidMoves returns the legal destinations for the piece on the named
// square, ascending bit order. An empty square yields an empty list.
func (g *Game) GetValidMoves(file byte, rank int) ([]Square, error) {
	if !IsValidSquare(file, rank) {
		return nil, fmt.Errorf("%w: no square %c%d", ErrInvalidOperation, file, rank)
	}
	return TranslateToSquares(GenerateMovesForPiece(g.state, TranslateToBit(file, rank))), nil
}
