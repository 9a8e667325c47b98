package orchestrator

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/maintenance-agent/internal/models"
	"github.com/example/maintenance-agent/internal/providers/gemini"
	"github.com/example/maintenance-agent/internal/tools"
	"github.com/example/maintenance-agent/internal/transcript"
)

// Apology is the only failure text a user ever sees.
const Apology = "Sorry, I encountered an error. Please try again."

// ErrBusy is returned when a turn is already in flight.
var ErrBusy = errors.New("a turn is already in flight")

// Loop drives one user message through the conversation state machine:
// append the user turn, call the model, honor at most one requested tool
// call, feed the result back, and commit the completed turn atomically.
type Loop struct {
	Model    gemini.Client
	Registry *tools.Registry
	Log      *transcript.Log

	// Timeout bounds the whole turn, model calls included. Zero means
	// no deadline.
	Timeout time.Duration

	mu   sync.Mutex
	busy bool
}

// Busy reports whether a turn is in flight. The UI suspends input
// submission while true.
func (l *Loop) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

func (l *Loop) setBusy(b bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b && l.busy {
		return false
	}
	l.busy = b
	return true
}

// Send runs one full turn for the given user text. Blank input is a no-op.
// Only one turn may be in flight at a time; a second call returns ErrBusy.
// Model and tool failures never escape: the turn ends with the apology
// reply appended to the pre-turn transcript instead.
func (l *Loop) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !l.setBusy(true) {
		return ErrBusy
	}
	defer l.setBusy(false)

	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	// The user turn is committed immediately so it renders while the model
	// is thinking. Everything after it is staged and committed atomically.
	userTurn := models.UserTurn(text)
	l.Log.Append(userTurn)
	base := l.Log.Snapshot()
	working := base

	resp, err := l.Model.Generate(ctx, working)
	if err != nil {
		l.fail(base, "model call", err)
		return nil
	}
	working = append(working, resp.First())

	if len(resp.FunctionCalls) > 0 {
		// Only the first requested call is honored.
		if len(resp.FunctionCalls) > 1 {
			log.Printf("orchestrator: model requested %d tool calls, honoring the first", len(resp.FunctionCalls))
		}
		call := resp.FunctionCalls[0]

		result, err := l.Registry.Invoke(ctx, call)
		if err != nil {
			l.fail(base, "tool "+call.Name, err)
			return nil
		}
		working = append(working, models.ToolTurn(call.Name, result.AsMap()))

		final, err := l.Model.Generate(ctx, working)
		if err != nil {
			l.fail(base, "follow-up model call", err)
			return nil
		}
		working = append(working, final.First())
	}

	l.Log.Replace(working)
	return nil
}

// fail discards the staged turns and commits the apology on top of the
// pre-turn transcript.
func (l *Loop) fail(base []models.Turn, stage string, err error) {
	log.Printf("orchestrator: %s failed: %v", stage, err)
	l.Log.Replace(append(base, models.ModelTurn(Apology)))
}
