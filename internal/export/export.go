// path: internal/export/export.go

// Package export records games as replayable move lists and writes them in
// a PGN-like text form.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/PracplayLLC/chess-app/internal/game"
	"github.com/PracplayLLC/chess-app/internal/notation"
)

// Tag is a named header pair, emitted as [Name "Value"].
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Ply is one recorded half-move: the structured move that was applied, its
// rendered text, and the attack state it produced.
type Ply struct {
	Move   game.Move `json:"move"`
	Text   string    `json:"text"`
	Status string    `json:"status"`
}

// Record is the serializable form of a recorded game. Start is "black" when
// the game began with Black to move, empty otherwise.
type Record struct {
	Tags   []Tag  `json:"tags,omitempty"`
	Start  string `json:"start,omitempty"`
	Plies  []Ply  `json:"plies"`
	Result string `json:"result"`
}

// Recorder wraps a Game and records every move applied through it.
type Recorder struct {
	game  *game.Game
	start game.Piece
	tags  []Tag
	plies []Ply
}

// NewRecorder records moves played on g from its current position onward.
func NewRecorder(g *game.Game) *Recorder {
	return &Recorder{game: g, start: g.GetTurn()}
}

// Game returns the wrapped game.
func (r *Recorder) Game() *game.Game { return r.game }

// SetTag sets a header pair, replacing an existing tag of the same name.
func (r *Recorder) SetTag(name, value string) {
	for i := range r.tags {
		if r.tags[i].Name == name {
			r.tags[i].Value = value
			return
		}
	}
	r.tags = append(r.tags, Tag{Name: name, Value: value})
}

// Move applies mv to the wrapped game and records it on success. Rejected
// moves record nothing.
func (r *Recorder) Move(mv game.Move) game.ErrorCondition {
	before := r.game.Board()
	if ec := r.game.Move(mv); ec != game.NoError {
		return ec
	}
	status := r.game.Status()
	r.plies = append(r.plies, Ply{
		Move:   mv,
		Text:   notation.Format(before, mv, status),
		Status: status.String(),
	})
	return game.NoError
}

// MoveText parses and applies a move given in text form.
func (r *Recorder) MoveText(text string) game.ErrorCondition {
	mv, err := notation.ParseMove(r.game, text)
	if err != nil {
		return game.InvalidInput
	}
	return r.Move(mv)
}

// Record snapshots the recorded game.
func (r *Recorder) Record() Record {
	rec := Record{
		Tags:   append([]Tag(nil), r.tags...),
		Plies:  append([]Ply(nil), r.plies...),
		Result: r.result(),
	}
	if r.start == game.Black {
		rec.Start = "black"
	}
	return rec
}

// result derives the PGN result token from the game's terminal status. After
// checkmate the side to move is the mated side.
func (r *Recorder) result() string {
	switch r.game.Status() {
	case game.AttackCheckmate:
		if r.game.GetTurn() == game.Black {
			return "1-0"
		}
		return "0-1"
	case game.AttackStalemate, game.AttackDrawByInactivity, game.AttackDrawByRepetition:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// WriteTo writes the tag pairs, a blank line, and the numbered movetext
// wrapped at 80 columns.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	return r.Record().WriteTo(w)
}

const movetextWidth = 80

// WriteTo implements io.WriterTo over the snapshot.
func (rec Record) WriteTo(w io.Writer) (int64, error) {
	var total int64
	emit := func(s string) error {
		n, err := io.WriteString(w, s)
		total += int64(n)
		return err
	}

	for _, tag := range rec.Tags {
		if err := emit(fmt.Sprintf("[%s %q]\n", tag.Name, tag.Value)); err != nil {
			return total, err
		}
	}
	if len(rec.Tags) > 0 {
		if err := emit("\n"); err != nil {
			return total, err
		}
	}

	var line strings.Builder
	for _, tok := range rec.movetext() {
		switch {
		case line.Len() == 0:
			line.WriteString(tok)
		case line.Len()+1+len(tok) > movetextWidth:
			if err := emit(line.String() + "\n"); err != nil {
				return total, err
			}
			line.Reset()
			line.WriteString(tok)
		default:
			line.WriteByte(' ')
			line.WriteString(tok)
		}
	}
	if line.Len() > 0 {
		if err := emit(line.String() + "\n"); err != nil {
			return total, err
		}
	}
	return total, nil
}

// movetext returns the token stream: move numbers before White's plies, a
// "N..." marker when the record opens on Black's turn, and the result token.
func (rec Record) movetext() []string {
	tokens := make([]string, 0, len(rec.Plies)*2+1)
	num := 1
	for i, ply := range rec.Plies {
		whitePly := (i%2 == 0) == (rec.Start != "black")
		switch {
		case whitePly:
			tokens = append(tokens, fmt.Sprintf("%d.", num))
		case i == 0:
			tokens = append(tokens, fmt.Sprintf("%d...", num))
		}
		tokens = append(tokens, ply.Text)
		if !whitePly {
			num++
		}
	}
	return append(tokens, rec.Result)
}

// Replay applies a record's structured moves to a fresh standard game and
// returns it. Records captured from custom starting positions cannot be
// replayed this way.
func Replay(rec Record) (*game.Game, error) {
	if rec.Start == "black" {
		return nil, fmt.Errorf("replay: record does not start from the standard position")
	}
	g := game.NewGame()
	for i, ply := range rec.Plies {
		if ec := g.Move(ply.Move); ec != game.NoError {
			return nil, fmt.Errorf("replay: ply %d (%s): %s", i+1, ply.Move, ec)
		}
	}
	return g, nil
}
