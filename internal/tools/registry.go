package tools

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"

	"github.com/example/maintenance-agent/internal/models"
)

// Param declares one tool parameter. Declaration order matters: the model
// supplies arguments by name, but handlers receive them bound in this order.
type Param struct {
	Name        string
	Type        genai.Type
	Description string
	Required    bool
	Enum        []string
}

// Tool pairs a declaration with its local handler. The declaration sent to
// the model and the binding used on invocation come from the same Params
// slice, so the two can never drift apart.
type Tool struct {
	Name        string
	Description string
	Params      []Param

	// run receives one value per declared parameter, in declaration order;
	// optional parameters that were not supplied are nil.
	run func(ctx context.Context, args []any) (models.ToolResult, error)
}

// UnknownToolError is returned when the model names a tool outside the
// registered set. Fatal to the turn.
type UnknownToolError struct {
	Name string
}

func (e UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Registry is the closed set of tools the model may invoke.
type Registry struct {
	order []string
	tools map[string]Tool
}

func newRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: map[string]Tool{}}
	for _, t := range tools {
		r.order = append(r.order, t.Name)
		r.tools[t.Name] = t
	}
	return r
}

// Declarations renders the registry as the function declarations sent with
// every model call.
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		props := map[string]*genai.Schema{}
		var required []string
		for _, p := range t.Params {
			props[p.Name] = &genai.Schema{
				Type:        p.Type,
				Description: p.Description,
				Enum:        p.Enum,
			}
			if p.Required {
				required = append(required, p.Name)
			}
		}
		out = append(out, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   required,
			},
		})
	}
	return out
}

// Invoke binds the call's arguments in declared parameter order and runs the
// handler. An unregistered name returns UnknownToolError; argument problems
// come back as unsuccessful ToolResults so the model can explain them.
func (r *Registry) Invoke(ctx context.Context, call models.FunctionCall) (models.ToolResult, error) {
	t, ok := r.tools[call.Name]
	if !ok {
		return models.ToolResult{}, UnknownToolError{Name: call.Name}
	}
	args := make([]any, len(t.Params))
	for i, p := range t.Params {
		v, present := call.Args[p.Name]
		if !present || v == nil {
			if p.Required {
				return models.ToolResult{
					Success: false,
					Message: fmt.Sprintf("Missing required parameter '%s' for %s.", p.Name, t.Name),
				}, nil
			}
			continue
		}
		bound, err := bindValue(p, v)
		if err != nil {
			return models.ToolResult{Success: false, Message: err.Error()}, nil
		}
		args[i] = bound
	}
	return t.run(ctx, args)
}

// bindValue coerces a model-supplied argument to the declared type. Numbers
// arrive as float64 from JSON decoding.
func bindValue(p Param, v any) (any, error) {
	switch p.Type {
	case genai.TypeNumber, genai.TypeInteger:
		switch n := v.(type) {
		case float64:
			return int(n), nil
		case int:
			return n, nil
		case int64:
			return int(n), nil
		}
		return nil, fmt.Errorf("Parameter '%s' must be a number.", p.Name)
	case genai.TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("Parameter '%s' must be a string.", p.Name)
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return nil, fmt.Errorf("Parameter '%s' must be one of: %v.", p.Name, p.Enum)
		}
		return s, nil
	}
	return v, nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// optInt reads an optional bound int argument.
func optInt(v any) (int, bool) {
	n, ok := v.(int)
	return n, ok
}

// optString reads an optional bound string argument.
func optString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
