package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/llm"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

var (
	// ErrDisabled is returned when no LLM provider is configured.
	ErrDisabled = errors.New("coach: no LLM provider configured")

	// ErrNoAnswers is returned for a session without answers.
	ErrNoAnswers = errors.New("coach: session has no answers")
)

// Service turns a finished quiz into conversation starters for a parent.
// Starters is synchronous; Request/Consume run it in the background for the
// TUI, keeping at most one result.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger

	mu      sync.Mutex
	pending []string
	err     error
	ready   bool
}

// NewService returns a coach. A nil provider yields a Service whose calls
// fail with ErrDisabled.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Enabled reports whether a provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

type startersOutput struct {
	Starters []string `json:"starters"`
}

// Starters asks the provider for StarterCount questions about session.
func (s *Service) Starters(ctx context.Context, session quiz.Session) ([]string, error) {
	if s.provider == nil {
		return nil, ErrDisabled
	}
	if len(session.Answers) == 0 {
		return nil, ErrNoAnswers
	}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "coach-starters")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(session)),
		Schema:      StartersSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("conversation starters: %w", err)
	}

	var out startersOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse starters response: %w", err)
	}

	starters := make([]string, 0, StarterCount)
	for _, q := range out.Starters {
		if q = strings.TrimSpace(q); q != "" {
			starters = append(starters, q)
		}
		if len(starters) == StarterCount {
			break
		}
	}
	if len(starters) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("no starters returned")}
	}
	s.log.Debug("generated conversation starters",
		zap.String("session", session.ID), zap.Int("count", len(starters)))
	return starters, nil
}

// Request starts Starters in the background, replacing any unconsumed result.
func (s *Service) Request(ctx context.Context, session quiz.Session) {
	s.mu.Lock()
	s.pending, s.err, s.ready = nil, nil, false
	s.mu.Unlock()

	go func() {
		starters, err := s.Starters(ctx, session)
		if err != nil {
			s.log.Warn("conversation starters failed", zap.String("session", session.ID), zap.Error(err))
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending, s.err, s.ready = starters, err, true
	}()
}

// Result is the outcome of a background Request.
type Result struct {
	Starters []string
	Err      error
}

// Consume returns the background result once it is ready and clears it.
// ok is false while the request is still running.
func (s *Service) Consume() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return Result{}, false
	}
	r := Result{Starters: s.pending, Err: s.err}
	s.pending, s.err, s.ready = nil, nil, false
	return r, true
}
