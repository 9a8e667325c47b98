package models

// TaskStatus values use the exact wire strings the UI and the model see.
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// Statuses lists every valid status, in display order. Used for enum
// constraints in tool declarations and for input validation.
func Statuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// ValidStatus reports whether s is one of the known status strings.
func ValidStatus(s string) bool {
	for _, v := range Statuses() {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Task is a single maintenance task. IDs are caller-assigned and unique
// across the live task set; Date is the ISO calendar date of creation.
type Task struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssignedTo  string     `json:"assignedTo"`
	Date        string     `json:"date"`
}

// Role attributes a transcript turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
	RoleTool  Role = "tool"
)

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse carries a tool's structured result back to the model.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Part is one element of a turn: exactly one of Text, FunctionCall or
// FunctionResponse is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// TextPart builds a plain text part.
func TextPart(s string) Part { return Part{Text: s} }

// Turn is one entry in the conversation transcript.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
}

// UserTurn builds a single-text user turn.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{TextPart(text)}}
}

// ModelTurn builds a single-text model turn.
func ModelTurn(text string) Turn {
	return Turn{Role: RoleModel, Parts: []Part{TextPart(text)}}
}

// ToolTurn builds the tool-result turn that follows a honored function call.
func ToolTurn(name string, response map[string]any) Turn {
	return Turn{Role: RoleTool, Parts: []Part{{
		FunctionResponse: &FunctionResponse{Name: name, Response: response},
	}}}
}

// FirstText returns the first text-bearing part of a turn, if any.
func (t Turn) FirstText() (string, bool) {
	for _, p := range t.Parts {
		if p.Text != "" {
			return p.Text, true
		}
	}
	return "", false
}

// ChatMessage is the display projection of a turn. Derived, never persisted.
type ChatMessage struct {
	Sender string `json:"sender"` // "user" or "ai"
	Text   string `json:"text"`
}

// ToolResult is the structured outcome every tool handler returns. Validation
// failures set Success=false and are fed back to the model, never raised.
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TaskID  int    `json:"taskId,omitempty"`
	Tasks   []Task `json:"tasks,omitempty"`
	File    string `json:"file,omitempty"`
}

// AsMap renders the result in the map form the function-response part carries.
func (r ToolResult) AsMap() map[string]any {
	m := map[string]any{
		"success": r.Success,
		"message": r.Message,
	}
	if r.TaskID != 0 {
		m["taskId"] = r.TaskID
	}
	if r.Tasks != nil {
		m["tasks"] = r.Tasks
	}
	if r.File != "" {
		m["file"] = r.File
	}
	return m
}
