package chat

import (
	"context"
	"sync"

	"github.com/diogo/regchat/internal/models"
)

type gatewayCall struct {
	query string
	pref  models.Preference
}

type gatewayReply struct {
	resp *models.QueryResponse
	err  error
}

// fakeGateway returns queued replies in order. When release is set, each call
// waits for a value on it (or for its context to end) before replying.
type fakeGateway struct {
	mu      sync.Mutex
	calls   []gatewayCall
	replies []gatewayReply
	release chan struct{}
	started chan struct{}
}

func newFakeGateway(replies ...gatewayReply) *fakeGateway {
	return &fakeGateway{replies: replies}
}

// blocking makes every call wait for unblock
func (g *fakeGateway) blocking() *fakeGateway {
	g.release = make(chan struct{})
	g.started = make(chan struct{}, 8)
	return g
}

func (g *fakeGateway) unblock() {
	g.release <- struct{}{}
}

func (g *fakeGateway) SubmitQuery(ctx context.Context, query string, pref models.Preference) (*models.QueryResponse, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{query: query, pref: pref})
	g.mu.Unlock()

	if g.release != nil {
		g.started <- struct{}{}
		select {
		case <-g.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.replies) == 0 {
		return &models.QueryResponse{Response: "ok"}, nil
	}
	reply := g.replies[0]
	g.replies = g.replies[1:]
	return reply.resp, reply.err
}

func (g *fakeGateway) recorded() []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gatewayCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// recordingInput logs every call made on it
type recordingInput struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingInput) SetText(text string) { r.record("set:" + text) }
func (r *recordingInput) Clear()              { r.record("clear") }
func (r *recordingInput) Focus()              { r.record("focus") }

func (r *recordingInput) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingInput) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

func answer(text string, rules ...models.RuleCitation) gatewayReply {
	return gatewayReply{resp: &models.QueryResponse{Response: text, RelevantRules: rules}}
}

func askPreference(query string) gatewayReply {
	return gatewayReply{resp: &models.QueryResponse{AskSummaryPreference: true, Query: query}}
}

func failure(err error) gatewayReply {
	return gatewayReply{err: err}
}

// kinds summarizes a log snapshot for comparisons
func kinds(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Kind.String()
		if e.Kind == EntryMessage {
			out[i] = string(e.Message.Role)
		}
	}
	return out
}
