// path: internal/httpx/server.go
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PracplayLLC/chess-app/internal/export"
	"github.com/PracplayLLC/chess-app/internal/game"
	"github.com/PracplayLLC/chess-app/internal/render"
	"github.com/PracplayLLC/chess-app/internal/store"
)

// Server wires the HTTP layer to a recorded game session and the optional
// saved-game store.
type Server struct {
	sessionMu sync.Mutex
	recorder  *export.Recorder
	store     *store.Store
	srvMu     sync.Mutex
	srv       *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server around a fresh game. st may be nil, which
// disables the persistence endpoints.
func NewServer(st *store.Store) *Server {
	return &Server{
		recorder: export.NewRecorder(game.NewGame()),
		store:    st,
	}
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// routes configures the ServeMux with the JSON, export, and diagram APIs.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// JSON APIs
	mux.HandleFunc("/api/state", s.withJSON(s.handleState))
	mux.HandleFunc("/api/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/moves", s.withJSON(s.handleMoves))
	mux.HandleFunc("/api/reset", s.withJSON(s.handleReset))
	mux.HandleFunc("/api/games", s.withJSON(s.handleGames))
	mux.HandleFunc("/api/games/save", s.withJSON(s.handleSave))
	mux.HandleFunc("/api/games/load", s.withJSON(s.handleLoad))
	mux.HandleFunc("/api/games/delete", s.withJSON(s.handleDelete))

	// Non-JSON surfaces
	mux.HandleFunc("/api/export", s.handleExport)
	mux.HandleFunc("/api/board.svg", s.handleBoard)

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// ---- views ----

type pieceView struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

type stateView struct {
	Turn    string      `json:"turn"`
	Status  string      `json:"status"`
	Pieces  []pieceView `json:"pieces"`
	History int         `json:"history"`
}

// stateLocked snapshots the session; callers hold sessionMu.
func (s *Server) stateLocked() stateView {
	g := s.recorder.Game()
	board := g.Board()

	view := stateView{
		Turn:    sideName(g.GetTurn()),
		Status:  g.Status().String(),
		History: len(g.History()),
	}
	for _, sq := range board.Occupied().Squares() {
		pc := board.SquareContents(game.TranslateToBit(sq.File(), sq.Rank()))
		view.Pieces = append(view.Pieces, pieceView{Square: sq.String(), Piece: pc.String()})
	}
	return view
}

func sideName(p game.Piece) string {
	if p.Side() == game.Black {
		return "black"
	}
	return "white"
}

// ---- API: state ----

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.sessionMu.Lock()
	view := s.stateLocked()
	s.sessionMu.Unlock()
	writeJSON(w, map[string]any{"state": view})
}

// ---- API: move ----

type moveBody struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
	Text      string `json:"text"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defer r.Body.Close()
	var body moveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	var ec game.ErrorCondition
	if text := strings.TrimSpace(body.Text); text != "" {
		ec = s.recorder.MoveText(text)
	} else {
		mv, ok := parseMoveBody(body)
		if !ok {
			writeError(w, http.StatusBadRequest, game.InvalidInput.String())
			return
		}
		ec = s.recorder.Move(mv)
	}
	if ec != game.NoError {
		writeError(w, http.StatusBadRequest, ec.String())
		return
	}
	writeJSON(w, map[string]any{"state": s.stateLocked()})
}

func parseMoveBody(body moveBody) (game.Move, bool) {
	from, ok := parseSquare(body.From)
	if !ok {
		return game.Move{}, false
	}
	to, ok := parseSquare(body.To)
	if !ok {
		return game.Move{}, false
	}
	mv := game.Move{
		FromFile: from.File(), FromRank: from.Rank(),
		ToFile: to.File(), ToRank: to.Rank(),
	}
	if promotion := strings.TrimSpace(body.Promotion); promotion != "" {
		kind, ok := parsePromotion(promotion)
		if !ok {
			return game.Move{}, false
		}
		mv.Promotion = kind
	}
	return mv, true
}

func parseSquare(s string) (game.Square, bool) {
	coord := strings.ToLower(strings.TrimSpace(s))
	if len(coord) != 2 || !game.IsValidSquare(coord[0], int(coord[1]-'0')) {
		return 0, false
	}
	sqs := game.TranslateToSquares(game.TranslateToBit(coord[0], int(coord[1]-'0')))
	return sqs[0], true
}

func parsePromotion(s string) (game.Piece, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "q", "queen":
		return game.Queen, true
	case "r", "rook":
		return game.Rook, true
	case "b", "bishop":
		return game.Bishop, true
	case "n", "knight":
		return game.Knight, true
	default:
		return game.NoPiece, false
	}
}

// ---- API: moves for a square ----

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sq, ok := parseSquare(r.URL.Query().Get("square"))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid square")
		return
	}

	s.sessionMu.Lock()
	moves, err := s.recorder.Game().GetValidMoves(sq.File(), sq.Rank())
	s.sessionMu.Unlock()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid square")
		return
	}

	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	writeJSON(w, map[string]any{"square": sq.String(), "moves": out})
}

// ---- API: reset ----

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.Body != nil {
		r.Body.Close()
	}
	s.sessionMu.Lock()
	s.recorder = export.NewRecorder(game.NewGame())
	view := s.stateLocked()
	s.sessionMu.Unlock()
	writeJSON(w, map[string]any{"state": view})
}

// ---- API: export ----

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	applyAPISecurityHeaders(w.Header())
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessionMu.Lock()
	rec := s.recorder.Record()
	s.sessionMu.Unlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := rec.WriteTo(w); err != nil {
		log.Printf("export write: %v", err)
	}
}

// ---- API: board diagram ----

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	applyAPISecurityHeaders(w.Header())
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.sessionMu.Lock()
	board := s.recorder.Game().Board()
	s.sessionMu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	render.WriteBoard(w, board)
}

// ---- API: saved games ----

type gameIDBody struct {
	ID string `json:"id"`
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "persistence disabled")
		return false
	}
	return true
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireStore(w) {
		return
	}
	summaries, err := s.store.List()
	if err != nil {
		log.Printf("list games: %v", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, map[string]any{"games": summaries})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireStore(w) {
		return
	}
	defer r.Body.Close()
	var body gameIDBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.ID) == "" {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	id := strings.TrimSpace(body.ID)

	s.sessionMu.Lock()
	rec := s.recorder.Record()
	s.sessionMu.Unlock()

	if err := s.store.Save(id, rec); err != nil {
		log.Printf("save game %q: %v", id, err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, map[string]string{"id": id})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireStore(w) {
		return
	}
	defer r.Body.Close()
	var body gameIDBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.ID) == "" {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	id := strings.TrimSpace(body.ID)

	if err := s.store.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Printf("delete game %q: %v", id, err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	writeJSON(w, map[string]string{"id": id})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireStore(w) {
		return
	}
	defer r.Body.Close()
	var body gameIDBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.ID) == "" {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	id := strings.TrimSpace(body.ID)

	rec, err := s.store.Load(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		log.Printf("load game %q: %v", id, err)
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}

	// Rebuild the session by replaying the stored plies through a fresh
	// recorder so later exports carry the full move list.
	recorder := export.NewRecorder(game.NewGame())
	for _, tag := range rec.Tags {
		recorder.SetTag(tag.Name, tag.Value)
	}
	for _, ply := range rec.Plies {
		if ec := recorder.Move(ply.Move); ec != game.NoError {
			log.Printf("load game %q: ply %s rejected: %v", id, ply.Move, ec)
			writeError(w, http.StatusInternalServerError, "stored game does not replay")
			return
		}
	}

	s.sessionMu.Lock()
	s.recorder = recorder
	view := s.stateLocked()
	s.sessionMu.Unlock()
	writeJSON(w, map[string]any{"id": id, "state": view})
}
