package transcript

import "github.com/example/maintenance-agent/internal/models"

// Project derives the display chat log from a turn sequence. User turns
// contribute their first part's text; model turns contribute their first
// text-bearing part, if any (a tool-call-only model turn renders nothing);
// tool turns never render. Order is preserved.
func Project(turns []models.Turn) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case models.RoleUser:
			if len(turn.Parts) > 0 {
				out = append(out, models.ChatMessage{Sender: "user", Text: turn.Parts[0].Text})
			}
		case models.RoleModel:
			if text, ok := turn.FirstText(); ok {
				out = append(out, models.ChatMessage{Sender: "ai", Text: text})
			}
		}
	}
	return out
}

// ChatMessages projects the current transcript. Recomputed in full on
// every call rather than maintained incrementally.
func (l *Log) ChatMessages() []models.ChatMessage {
	return Project(l.Snapshot())
}
