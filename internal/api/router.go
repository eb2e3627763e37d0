// Package api serves the EV engine over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lox/bjev/internal/chart"
	"github.com/lox/bjev/internal/ev"
	"github.com/lox/bjev/internal/rules"
	"github.com/lox/bjev/internal/shoe"
)

const (
	maxBodyBytes = 64 << 10

	// maxSplitDepth bounds request overrides; each extra re-split multiplies
	// the search tree.
	maxSplitDepth = 3
)

// Server answers EV queries against a base configuration that requests may
// override.
type Server struct {
	config rules.Config
	logger *log.Logger
}

// New creates a server.
func New(config rules.Config, logger *log.Logger) *Server {
	return &Server{config: config, logger: logger}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Get("/api/rules", s.handleRules)
	r.Post("/api/ev", s.handleEV)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type rulesOverride struct {
	Allowed          []string `json:"allowed,omitempty"`
	MaxSplitDepth    *int     `json:"max_split_depth,omitempty"`
	DoubleAfterSplit *bool    `json:"double_after_split,omitempty"`
	DealerHitsSoft17 *bool    `json:"dealer_hits_soft_17,omitempty"`
	CanHitSplitAces  *bool    `json:"can_hit_split_aces,omitempty"`
}

type evRequest struct {
	Player  []string       `json:"player"`
	Dealer  []string       `json:"dealer"`
	Decks   *int           `json:"decks,omitempty"`
	Removed []string       `json:"removed,omitempty"`
	Rules   *rulesOverride `json:"rules,omitempty"`
	Chart   string         `json:"chart,omitempty"`
}

type evResponse struct {
	Player  string             `json:"player"`
	Dealer  string             `json:"dealer"`
	Best    string             `json:"best"`
	EV      map[string]float64 `json:"ev"`
	Allowed []string           `json:"allowed"`
}

type rulesResponse struct {
	Decks            int      `json:"decks"`
	Allowed          []string `json:"allowed"`
	MaxSplitDepth    int      `json:"max_split_depth"`
	DoubleAfterSplit bool     `json:"double_after_split"`
	DealerHitsSoft17 bool     `json:"dealer_hits_soft_17"`
	CanHitSplitAces  bool     `json:"can_hit_split_aces"`
	ErrorTolerance   float64  `json:"error_tolerance"`
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rs := s.config.Rules
	writeJSON(w, http.StatusOK, rulesResponse{
		Decks:            s.config.Decks,
		Allowed:          actionNames(rs.Allowed),
		MaxSplitDepth:    rs.MaxSplitDepth,
		DoubleAfterSplit: rs.DoubleAfterSplit,
		DealerHitsSoft17: rs.DealerHitsSoft17,
		CanHitSplitAces:  rs.CanHitSplitAces,
		ErrorTolerance:   rs.ErrorTolerance,
	})
}

func (s *Server) handleEV(w http.ResponseWriter, r *http.Request) {
	var req evRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	cfg, strategy, pos, err := s.resolve(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := r.Context().Err(); err != nil {
		s.logger.Debug("Client gone before search", "error", err)
		return
	}
	solver := ev.NewSolver(cfg.Rules, strategy)
	res := pos.Evaluate(solver)
	if err := r.Context().Err(); err != nil {
		s.logger.Debug("Client gone during search", "error", err)
		return
	}
	allowed := ev.Legal(pos.Hand, pos.Dealer, cfg.Rules)

	resp := evResponse{
		Player:  pos.Hand.String(),
		Dealer:  pos.Dealer.String(),
		Best:    res.Best.String(),
		EV:      make(map[string]float64),
		Allowed: actionNames(allowed),
	}
	for _, a := range allowed.List() {
		resp.EV[a.String()] = res.EV[a]
	}

	stats := solver.Stats()
	s.logger.Info("Evaluated",
		"player", resp.Player,
		"dealer", resp.Dealer,
		"decks", cfg.Decks,
		"best", resp.Best,
		"decisions", stats.Decisions,
		"dealer_nodes", stats.DealerNodes)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) resolve(req evRequest) (rules.Config, chart.Strategy, ev.Position, error) {
	cfg := s.config
	if req.Decks != nil {
		cfg.Decks = *req.Decks
	}
	if o := req.Rules; o != nil {
		if o.Allowed != nil {
			set, err := rules.ParseActionSet(o.Allowed)
			if err != nil {
				return cfg, chart.Strategy{}, ev.Position{}, err
			}
			cfg.Rules.Allowed = set
		}
		if o.MaxSplitDepth != nil {
			if *o.MaxSplitDepth > maxSplitDepth {
				return cfg, chart.Strategy{}, ev.Position{}, fmt.Errorf("max_split_depth %d exceeds %d", *o.MaxSplitDepth, maxSplitDepth)
			}
			cfg.Rules.MaxSplitDepth = *o.MaxSplitDepth
		}
		if o.DoubleAfterSplit != nil {
			cfg.Rules.DoubleAfterSplit = *o.DoubleAfterSplit
		}
		if o.DealerHitsSoft17 != nil {
			cfg.Rules.DealerHitsSoft17 = *o.DealerHitsSoft17
		}
		if o.CanHitSplitAces != nil {
			cfg.Rules.CanHitSplitAces = *o.CanHitSplitAces
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, chart.Strategy{}, ev.Position{}, err
	}

	strategy := chart.Optimal()
	if strings.TrimSpace(req.Chart) != "" {
		c, err := chart.Parse(strings.NewReader(req.Chart))
		if err != nil {
			return cfg, chart.Strategy{}, ev.Position{}, fmt.Errorf("chart: %w", err)
		}
		strategy = chart.Follow(c)
	}

	player, err := parseCards("player", req.Player)
	if err != nil {
		return cfg, chart.Strategy{}, ev.Position{}, err
	}
	dealer, err := parseCards("dealer", req.Dealer)
	if err != nil {
		return cfg, chart.Strategy{}, ev.Position{}, err
	}
	removed, err := parseCards("removed", req.Removed)
	if err != nil {
		return cfg, chart.Strategy{}, ev.Position{}, err
	}

	pos, err := ev.NewPosition(cfg.Decks, player, dealer, removed)
	if err != nil {
		return cfg, chart.Strategy{}, ev.Position{}, err
	}
	return cfg, strategy, pos, nil
}

func parseCards(field string, cards []string) ([]shoe.Rank, error) {
	ranks := make([]shoe.Rank, 0, len(cards))
	for _, c := range cards {
		r, err := shoe.ParseRank(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
		ranks = append(ranks, r)
	}
	return ranks, nil
}

func actionNames(set rules.ActionSet) []string {
	names := []string{}
	for _, a := range set.List() {
		names = append(names, a.String())
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
