package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/llm"
	"github.com/nexosr/career-engine/internal/metrics"
	"github.com/nexosr/career-engine/internal/model"
	"github.com/nexosr/career-engine/internal/validator"
)

const schemaName = "career_report"

// ModelConfig configures the reasoning model client.
type ModelConfig = llm.Config

// ModelSource asks an OpenAI-compatible chat-completions endpoint for a
// report using a strict JSON schema derived from model.Report.
type ModelSource struct {
	client   *llm.Client
	schema   *jsonschema.Definition
	validate *validator.Validator
}

// NewModelSource builds a ModelSource with its own client. It fails only if
// the report schema cannot be generated.
func NewModelSource(cfg ModelConfig, m *metrics.Metrics, log zerolog.Logger) (*ModelSource, error) {
	return NewModelSourceWithClient(llm.New(cfg, m, log))
}

// NewModelSourceWithClient builds a ModelSource on a shared client.
func NewModelSourceWithClient(client *llm.Client) (*ModelSource, error) {
	schema, err := reportSchema()
	if err != nil {
		return nil, fmt.Errorf("generate report schema: %w", err)
	}
	return &ModelSource{
		client:   client,
		schema:   schema,
		validate: validator.Default(),
	}, nil
}

func reportSchema() (*jsonschema.Definition, error) {
	schema, err := jsonschema.GenerateSchemaForType(model.Report{})
	if err != nil {
		return nil, err
	}
	if paths, ok := schema.Properties["career_paths"]; ok {
		paths.Description = fmt.Sprintf("Exactly %d career paths, best match first", model.CareerPathCount)
		schema.Properties["career_paths"] = paths
	}
	return schema, nil
}

// Generate calls the model. Any failure comes back wrapped in
// apperr.ErrExternalModelUnavailable.
func (s *ModelSource) Generate(ctx context.Context, req Request) (model.Report, error) {
	content, err := s.client.Complete(ctx, openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: s.schema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return model.Report{}, apperr.Wrap(apperr.CodeExternalModelUnavailable, err)
	}

	rep, err := s.parse(content)
	if err != nil {
		return model.Report{}, apperr.Wrap(apperr.CodeExternalModelUnavailable, err)
	}
	return rep, nil
}

func (s *ModelSource) parse(content string) (model.Report, error) {
	var rep model.Report
	if err := json.Unmarshal([]byte(llm.StripFences(content)), &rep); err != nil {
		return model.Report{}, fmt.Errorf("decode report: %w", err)
	}
	if err := s.validate.Validate(rep); err != nil {
		return model.Report{}, fmt.Errorf("invalid report: %w", err)
	}
	return rep, nil
}
