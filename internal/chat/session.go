// Package chat implements the query session: the single-flight request cycle,
// the summary preference sub-dialog and the conversation log it maintains.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/regchat/internal/errors"
	"github.com/diogo/regchat/internal/logging"
	"github.com/diogo/regchat/internal/models"
)

// Gateway sends a query to the backend
type Gateway interface {
	SubmitQuery(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error)
}

// State is how a query cycle ended
type State int

const (
	StateAwaitingPreference State = iota + 1
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateAwaitingPreference:
		return "awaiting_preference"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports the end of one query cycle
type Outcome struct {
	State      State
	Query      string
	Preference models.Preference
	// Entry is the prompt or assistant message appended when the cycle settled
	Entry EntryID
	// Err is set when State is StateFailed
	Err error
}

// Session runs query cycles against a Gateway. At most one cycle is in flight;
// submissions made meanwhile are dropped with ErrBusy.
type Session struct {
	id      string
	gateway Gateway
	input   InputSurface
	log     *Log
	logger  *zap.Logger
	timeout time.Duration

	mu        sync.Mutex
	busy      bool
	completed int
	wg        sync.WaitGroup
}

// Option configures a Session
type Option func(*Session)

// WithInput sets the surface holding the user's pending text
func WithInput(input InputSurface) Option {
	return func(s *Session) {
		if input != nil {
			s.input = input
		}
	}
}

// WithLogger sets the logger used for cycle diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logging.OrNop(logger)
	}
}

// WithTimeout bounds each gateway call. Zero leaves calls bounded only by the
// caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.timeout = timeout
	}
}

// WithLog makes the session append to an existing log
func WithLog(log *Log) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSession creates an idle session
func NewSession(gateway Gateway, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		gateway: gateway,
		input:   nopInput{},
		log:     NewLog(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	return s
}

// ID returns the session's correlation ID
func (s *Session) ID() string {
	return s.id
}

// Log returns the conversation log
func (s *Session) Log() *Log {
	return s.log
}

// Busy reports whether a cycle is in flight
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// CompletedQueries returns how many cycles produced an answer
func (s *Session) CompletedQueries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Wait blocks until the in-flight cycle, if any, has settled
func (s *Session) Wait() {
	s.wg.Wait()
}

// Submit starts a query cycle. An empty query or a busy session returns
// ErrEmptyQuery or ErrBusy without any side effect. With PreferenceNone the
// query is also appended as a user message.
//
// The returned channel yields one Outcome after the cycle has settled and the
// session is idle again, then closes.
func (s *Session) Submit(ctx context.Context, query string, pref models.Preference) (<-chan Outcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierrors.ErrEmptyQuery
	}
	if pref != models.PreferenceNone && !pref.IsChoice() {
		return nil, apierrors.ErrInvalidPreference
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.logger.Debug("submission dropped while busy")
		return nil, apierrors.ErrBusy
	}
	s.busy = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.input.Clear()
	if pref == models.PreferenceNone {
		s.log.Append(UserEntry(query))
	}
	typing := s.log.Append(TypingEntry())

	s.logger.Info("query submitted",
		zap.String("query", query),
		zap.String("preference", string(pref)))

	out := make(chan Outcome, 1)
	go func() {
		defer s.wg.Done()
		defer close(out)

		start := time.Now()
		outcome := s.run(ctx, typing, query, pref)
		s.finish()

		fields := []zap.Field{
			zap.String("state", outcome.State.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if outcome.Err != nil {
			s.logger.Warn("query failed", append(fields, zap.Error(outcome.Err))...)
		} else {
			s.logger.Info("query settled", fields...)
		}
		out <- outcome
	}()
	return out, nil
}

// run performs the gateway call and applies its result to the log
func (s *Session) run(ctx context.Context, typing EntryID, query string, pref models.Preference) Outcome {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.gateway.SubmitQuery(ctx, query, pref)
	if err == nil && resp == nil {
		err = apierrors.ErrInvalidResponse
	}

	s.log.Remove(typing)
	outcome := Outcome{Query: query, Preference: pref}

	switch {
	case err != nil:
		outcome.State = StateFailed
		outcome.Err = err
		outcome.Entry = s.log.Append(AssistantEntry(models.Message{Content: models.ErrorReply}))

	case resp.NeedsPreference():
		prompted := resp.Query
		if prompted == "" {
			prompted = query
		}
		outcome.State = StateAwaitingPreference
		outcome.Query = prompted
		outcome.Entry = s.log.Append(PromptEntry(prompted, resp.RelevantRules))

	default:
		outcome.State = StateCompleted
		outcome.Entry = s.log.Append(AssistantEntry(resp.AssistantMessage()))
		s.mu.Lock()
		s.completed++
		s.mu.Unlock()
	}
	return outcome
}

// finish returns the session to idle and hands focus back to the input
func (s *Session) finish() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
	s.input.Focus()
}

// ResolvePreference answers the preference prompt promptID with choice. The
// prompt is removed and its query resubmitted without a new user message.
func (s *Session) ResolvePreference(ctx context.Context, promptID EntryID, choice models.Preference) (<-chan Outcome, error) {
	if !choice.IsChoice() {
		return nil, apierrors.ErrInvalidPreference
	}

	prompt, ok := s.log.Get(promptID)
	if !ok || prompt.Kind != EntryPreferencePrompt {
		return nil, fmt.Errorf("%w: %d", apierrors.ErrUnknownPrompt, promptID)
	}

	s.log.Remove(promptID)
	s.input.SetText(prompt.Query)
	return s.Submit(ctx, prompt.Query, choice)
}

// PickExample submits one of the example queries
func (s *Session) PickExample(ctx context.Context, text string) (<-chan Outcome, error) {
	return s.pick(ctx, text)
}

// PickFollowUp submits a suggested follow-up question
func (s *Session) PickFollowUp(ctx context.Context, text string) (<-chan Outcome, error) {
	return s.pick(ctx, text)
}

// PickCategory submits the question derived from a category key
func (s *Session) PickCategory(ctx context.Context, category string) (<-chan Outcome, error) {
	return s.pick(ctx, CategoryQuery(category))
}

func (s *Session) pick(ctx context.Context, text string) (<-chan Outcome, error) {
	s.input.SetText(text)
	return s.Submit(ctx, text, models.PreferenceNone)
}

// CategoryQuery returns the question asked when a category is picked
func CategoryQuery(category string) string {
	return fmt.Sprintf(models.CategoryPromptTemplate, category)
}
