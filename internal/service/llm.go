package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/mockmate/internal/util"
	"google.golang.org/genai"
)

// TextGenerator returns the raw text a model produced for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ObjectRequest struct {
	Prompt string
	System string
	Schema *genai.Schema
}

// StructuredGenerator decodes the model output into out. It returns an error
// unless the output decodes and passes out's validate tags.
type StructuredGenerator interface {
	GenerateObject(ctx context.Context, req ObjectRequest, out any) error
}

// decodeObject is the shared conformance check for every provider.
func decodeObject(text string, out any) error {
	text = stripCodeFence(text)
	if text == "" {
		return fmt.Errorf("model returned an empty object")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("model output is not valid JSON: %w", err)
	}
	if err := util.ValidateStruct(out); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// schemaInstruction spells the schema out for providers without native
// schema support.
func schemaInstruction(system string, schema *genai.Schema) (string, error) {
	if schema == nil {
		return system, nil
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return fmt.Sprintf("%s\nThe JSON object must conform to this JSON schema:\n%s", system, string(b)), nil
}
