package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/example/maintenance-agent/internal/models"
)

// RealClient talks to the Gemini API through the genai SDK.
type RealClient struct {
	model *genai.GenerativeModel
}

// New builds a Gemini-backed client carrying the tool declarations and the
// system instruction on every call.
func New(ctx context.Context, apiKey, modelName string, decls []*genai.FunctionDeclaration) (*RealClient, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	m := c.GenerativeModel(modelName)
	m.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	return &RealClient{model: m}, nil
}

// NewFromEnv wires a RealClient from GEMINI_API_KEY (or GOOGLE_API_KEY),
// falling back to the mock when no key is configured.
func NewFromEnv(ctx context.Context, decls []*genai.FunctionDeclaration) Client {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		log.Printf("gemini: no API key configured, using mock client")
		return &MockClient{}
	}
	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = DefaultModel
	}
	c, err := New(ctx, apiKey, modelName, decls)
	if err != nil {
		log.Printf("gemini: %v, using mock client", err)
		return &MockClient{}
	}
	return c
}

// Generate replays the transcript as chat history and sends the final turn.
func (r *RealClient) Generate(ctx context.Context, history []models.Turn) (*Response, error) {
	if len(history) == 0 {
		return nil, errors.New("empty history")
	}
	cs := r.model.StartChat()
	cs.History = toContents(history[:len(history)-1])
	last := history[len(history)-1]
	resp, err := cs.SendMessage(ctx, toParts(last.Parts)...)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return fromResponse(resp), nil
}

func toContents(turns []models.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		out = append(out, &genai.Content{Role: wireRole(t.Role), Parts: toParts(t.Parts)})
	}
	return out
}

// wireRole maps transcript roles to the genai wire roles; tool-result turns
// travel under the "function" role.
func wireRole(r models.Role) string {
	if r == models.RoleTool {
		return "function"
	}
	return string(r)
}

func toParts(parts []models.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		switch {
		case p.FunctionCall != nil:
			out = append(out, genai.FunctionCall{Name: p.FunctionCall.Name, Args: p.FunctionCall.Args})
		case p.FunctionResponse != nil:
			out = append(out, genai.FunctionResponse{Name: p.FunctionResponse.Name, Response: p.FunctionResponse.Response})
		default:
			out = append(out, genai.Text(p.Text))
		}
	}
	return out
}

func fromResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	for i, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		turn := models.Turn{Role: models.RoleModel}
		for _, part := range cand.Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				turn.Parts = append(turn.Parts, models.TextPart(string(v)))
			case genai.FunctionCall:
				fc := models.FunctionCall{Name: v.Name, Args: v.Args}
				turn.Parts = append(turn.Parts, models.Part{FunctionCall: &fc})
				if i == 0 {
					out.FunctionCalls = append(out.FunctionCalls, fc)
				}
			}
		}
		out.Candidates = append(out.Candidates, turn)
	}
	return out
}
