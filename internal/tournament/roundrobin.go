package tournament

import (
	"context"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-arena/internal/elo"
	"github.com/lox/holdem-arena/internal/randutil"
)

// Standing is one model's aggregate line in a round-robin tournament.
// Per-match tokens and cost are split evenly between the two participants.
type Standing struct {
	Model       string  `json:"model"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Ties        int     `json:"ties"`
	Profit      int     `json:"profit"`
	HandsPlayed int     `json:"hands_played"`
	Tokens      int     `json:"tokens"`
	Cost        float64 `json:"cost"`
	Rating      int     `json:"rating"`
}

// RoundRobinResult is the outcome of a full bracket.
type RoundRobinResult struct {
	Models      []string       `json:"models"`
	Matches     []*MatchResult `json:"matches"`
	Standings   []Standing     `json:"standings"`
	TotalHands  int            `json:"total_hands"`
	TotalTokens int            `json:"total_tokens"`
	TotalCost   float64        `json:"total_cost"`
	Status      Status         `json:"status"`
}

// RoundRobin plays every pairing of the given models once. Matches run
// concurrently up to the configured parallelism; ratings are committed to the
// ELO service as each match completes.
type RoundRobin struct {
	models      []string
	cfg         Config
	factory     AgentFactory
	ratings     *elo.Service
	parallelism int
	logger      *log.Logger
	onMatch     func(completed, total int, result *MatchResult)
}

// RoundRobinOption configures a RoundRobin.
type RoundRobinOption func(*RoundRobin)

// WithParallelism caps the number of matches in flight at once.
func WithParallelism(n int) RoundRobinOption {
	return func(t *RoundRobin) {
		if n > 0 {
			t.parallelism = n
		}
	}
}

// WithRatings attaches an ELO service; match outcomes are recorded as they
// complete.
func WithRatings(s *elo.Service) RoundRobinOption {
	return func(t *RoundRobin) { t.ratings = s }
}

// WithRoundRobinLogger sets the logger.
func WithRoundRobinLogger(logger *log.Logger) RoundRobinOption {
	return func(t *RoundRobin) { t.logger = logger }
}

// WithOnMatch registers a callback invoked as each match finishes, with a
// running count of completed matches.
func WithOnMatch(fn func(completed, total int, result *MatchResult)) RoundRobinOption {
	return func(t *RoundRobin) { t.onMatch = fn }
}

// NewRoundRobin creates a bracket over the given models.
func NewRoundRobin(models []string, cfg Config, factory AgentFactory, opts ...RoundRobinOption) *RoundRobin {
	t := &RoundRobin{
		models:      models,
		cfg:         cfg,
		factory:     factory,
		parallelism: 1,
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("component", "round-robin")
	return t
}

// Pairings returns every model pairing in deterministic order.
func (t *RoundRobin) Pairings() [][2]string {
	var pairs [][2]string
	for i := 0; i < len(t.models); i++ {
		for j := i + 1; j < len(t.models); j++ {
			pairs = append(pairs, [2]string{t.models[i], t.models[j]})
		}
	}
	return pairs
}

// Run plays the bracket. A failed match is recorded in the results without
// an ELO commit and the remaining matches continue.
func (t *RoundRobin) Run(ctx context.Context) (*RoundRobinResult, error) {
	pairs := t.Pairings()
	results := make([]*MatchResult, len(pairs))

	var (
		mu        sync.Mutex
		completed int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.parallelism)
	for i, pair := range pairs {
		g.Go(func() error {
			cfg := t.cfg
			cfg.Seed = randutil.Derive(t.cfg.Seed, int64(i))
			match := NewHeadsUp(pair[0], pair[1], cfg, t.factory,
				WithHeadsUpLogger(t.logger))

			mr, err := match.Run(ctx)
			if err != nil {
				t.logger.Error("match failed", "model1", pair[0], "model2", pair[1], "err", err)
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = mr
			completed++
			if mr.Status == StatusCompleted && t.ratings != nil {
				t.recordRating(mr)
			}
			if t.onMatch != nil {
				t.onMatch(completed, len(pairs), mr)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return t.tally(results), nil
}

func (t *RoundRobin) recordRating(mr *MatchResult) {
	switch mr.Winner {
	case mr.Model1:
		t.ratings.RecordMatch(mr.Model1, mr.Model2, false)
	case mr.Model2:
		t.ratings.RecordMatch(mr.Model2, mr.Model1, false)
	default:
		t.ratings.RecordMatch(mr.Model1, mr.Model2, true)
	}
}

func (t *RoundRobin) tally(results []*MatchResult) *RoundRobinResult {
	out := &RoundRobinResult{
		Models:  t.models,
		Matches: results,
		Status:  StatusCompleted,
	}

	byModel := map[string]*Standing{}
	for _, model := range t.models {
		byModel[model] = &Standing{Model: model}
	}

	for _, mr := range results {
		if mr == nil {
			continue
		}
		if mr.Status != StatusCompleted {
			out.Status = mr.Status
		}
		out.TotalHands += mr.HandsPlayed
		out.TotalTokens += mr.TotalTokens
		out.TotalCost += mr.TotalCost

		s1, s2 := byModel[mr.Model1], byModel[mr.Model2]
		s1.Profit += mr.Model1Profit
		s2.Profit += mr.Model2Profit
		s1.HandsPlayed += mr.HandsPlayed
		s2.HandsPlayed += mr.HandsPlayed
		s1.Tokens += mr.TotalTokens / 2
		s2.Tokens += mr.TotalTokens / 2
		s1.Cost += mr.TotalCost / 2
		s2.Cost += mr.TotalCost / 2

		switch mr.Winner {
		case mr.Model1:
			s1.Wins++
			s2.Losses++
		case mr.Model2:
			s2.Wins++
			s1.Losses++
		default:
			s1.Ties++
			s2.Ties++
		}
	}

	for _, model := range t.models {
		s := byModel[model]
		if t.ratings != nil {
			s.Rating = t.ratings.Get(model).Rating
		}
		out.Standings = append(out.Standings, *s)
	}
	sort.SliceStable(out.Standings, func(i, j int) bool {
		return out.Standings[i].Profit > out.Standings[j].Profit
	})
	return out
}
