// Package elo maintains persistent ELO ratings for the models in the arena.
package elo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-arena/internal/fileutil"
)

// K-factor tiers: new players move fast, established players move slowly.
const (
	KNewPlayer    = 40 // under 30 games
	KNormal       = 20 // under 100 games
	KEstablished  = 10
	DefaultRating = 1500
)

// Rating is one model's standing. Field names are the on-disk JSON contract.
type Rating struct {
	Model       string `json:"model"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
}

// Service is the single writer for ratings. All mutation funnels through its
// mutex, so concurrent matches can report results safely.
type Service struct {
	mu      sync.Mutex
	ratings map[string]*Rating

	path   string
	clock  quartz.Clock
	logger *log.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock injects the clock used for save-retry backoff.
func WithClock(clk quartz.Clock) ServiceOption {
	return func(s *Service) { s.clock = clk }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a rating service persisting to the given path. An
// existing ratings file is loaded; a missing one starts empty.
func NewService(path string, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		ratings: map[string]*Rating{},
		path:    path,
		clock:   quartz.NewReal(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read ratings: %w", err)
	}
	var records []Rating
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse ratings %s: %w", s.path, err)
	}
	for i := range records {
		r := records[i]
		s.ratings[r.Model] = &r
	}
	return nil
}

// Get returns the model's rating, creating a fresh one at the default rating
// if the model is unseen.
func (s *Service) Get(model string) Rating {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.get(model)
}

func (s *Service) get(model string) *Rating {
	r, ok := s.ratings[model]
	if !ok {
		r = &Rating{Model: model, Rating: DefaultRating}
		s.ratings[model] = r
	}
	return r
}

// RecordMatch updates both players' ratings for a decided match and persists
// the result. For a draw pass draw=true; winner/loser order then only picks
// which record is returned first.
func (s *Service) RecordMatch(winner, loser string, draw bool) (winnerRating, loserRating int) {
	s.mu.Lock()
	w := s.get(winner)
	l := s.get(loser)

	expectedW := expectedScore(w.Rating, l.Rating)
	expectedL := expectedScore(l.Rating, w.Rating)

	scoreW, scoreL := 1.0, 0.0
	if draw {
		scoreW, scoreL = 0.5, 0.5
	}

	kW := kFactor(w.GamesPlayed)
	kL := kFactor(l.GamesPlayed)

	w.Rating = int(math.Round(float64(w.Rating) + float64(kW)*(scoreW-expectedW)))
	l.Rating = int(math.Round(float64(l.Rating) + float64(kL)*(scoreL-expectedL)))
	w.GamesPlayed++
	l.GamesPlayed++
	if draw {
		w.Draws++
		l.Draws++
	} else {
		w.Wins++
		l.Losses++
	}
	winnerRating, loserRating = w.Rating, l.Rating
	s.mu.Unlock()

	s.Save()
	return winnerRating, loserRating
}

// Leaderboard returns all ratings sorted by rating descending, model name
// breaking ties for stable output.
func (s *Service) Leaderboard() []Rating {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := make([]Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		board = append(board, *r)
	}
	sort.Slice(board, func(i, j int) bool {
		if board[i].Rating != board[j].Rating {
			return board[i].Rating > board[j].Rating
		}
		return board[i].Model < board[j].Model
	})
	return board
}

// WinProbability returns the expected score of a against b.
func (s *Service) WinProbability(a, b string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return expectedScore(s.get(a).Rating, s.get(b).Rating)
}

// Save writes the ratings atomically. Transient failures are retried with
// backoff; a final failure is logged rather than returned, because a rating
// hiccup must not abort a tournament in flight.
func (s *Service) Save() {
	s.mu.Lock()
	board := make([]Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		board = append(board, *r)
	}
	s.mu.Unlock()

	sort.Slice(board, func(i, j int) bool { return board[i].Model < board[j].Model })
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		s.logger.Error("marshal ratings", "err", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.logger.Error("create ratings dir", "err", err)
		return
	}

	delay := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			timer := s.clock.NewTimer(delay)
			<-timer.C
			delay *= 2
		}
		if err = fileutil.WriteFileAtomic(s.path, data, 0o644); err == nil {
			return
		}
	}
	s.logger.Warn("failed to persist ratings", "path", s.path, "err", err)
}

// expectedScore is the standard ELO expectation:
// E_a = 1 / (1 + 10^((R_b - R_a) / 400)).
func expectedScore(ratingA, ratingB int) float64 {
	return 1 / (1 + math.Pow(10, float64(ratingB-ratingA)/400))
}

func kFactor(gamesPlayed int) int {
	switch {
	case gamesPlayed < 30:
		return KNewPlayer
	case gamesPlayed < 100:
		return KNormal
	default:
		return KEstablished
	}
}
