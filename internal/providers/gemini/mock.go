package gemini

import (
	"context"
	"sync"

	"github.com/example/maintenance-agent/internal/models"
)

// MockClient is used when no real provider is configured and in tests.
// Queued responses and errors are consumed in order; once the script is
// exhausted it answers with a fixed text turn.
type MockClient struct {
	mu     sync.Mutex
	script []scriptStep

	// Calls records the history passed to each Generate call.
	Calls [][]models.Turn
}

type scriptStep struct {
	resp *Response
	err  error
}

// QueueResponse appends a scripted response.
func (m *MockClient) QueueResponse(resp *Response) {
	m.mu.Lock()
	m.script = append(m.script, scriptStep{resp: resp})
	m.mu.Unlock()
}

// QueueText appends a scripted plain-text model reply.
func (m *MockClient) QueueText(text string) {
	m.QueueResponse(&Response{Candidates: []models.Turn{models.ModelTurn(text)}})
}

// QueueFunctionCall appends a scripted tool-call reply.
func (m *MockClient) QueueFunctionCall(name string, args map[string]any) {
	fc := models.FunctionCall{Name: name, Args: args}
	m.QueueResponse(&Response{
		Candidates:    []models.Turn{{Role: models.RoleModel, Parts: []models.Part{{FunctionCall: &fc}}}},
		FunctionCalls: []models.FunctionCall{fc},
	})
}

// QueueError appends a scripted failure.
func (m *MockClient) QueueError(err error) {
	m.mu.Lock()
	m.script = append(m.script, scriptStep{err: err})
	m.mu.Unlock()
}

func (m *MockClient) Generate(ctx context.Context, history []models.Turn) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make([]models.Turn, len(history))
	copy(snap, history)
	m.Calls = append(m.Calls, snap)
	if len(m.script) == 0 {
		return &Response{Candidates: []models.Turn{
			models.ModelTurn("No language model is configured. Set GEMINI_API_KEY to enable the assistant."),
		}}, nil
	}
	step := m.script[0]
	m.script = m.script[1:]
	if step.err != nil {
		return nil, step.err
	}
	return step.resp, nil
}
