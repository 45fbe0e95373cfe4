package cvparse

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/luminahr/portal/pkg/errx"
	"github.com/luminahr/portal/pkg/logx"
)

const extractionPrompt = `You extract structured data from a candidate CV.
Return a JSON object with these optional fields:
full_name, email, phone_number, nationality, address, skills (array of strings).
Omit any field you cannot find. Return JSON only.`

// OpenAIParser extrae campos del CV con una chat completion en modo JSON
type OpenAIParser struct {
	client openai.Client
	model  string
}

// NewOpenAIParser crea el parser respaldado por OpenAI
func NewOpenAIParser(apiKey, model string, opts ...option.RequestOption) *OpenAIParser {
	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIParser{
		client: openai.NewClient(options...),
		model:  model,
	}
}

// Parse envía el texto del CV y decodifica los campos extraídos
func (p *OpenAIParser) Parse(ctx context.Context, content []byte, mimeType string) (*Fields, error) {
	text := strings.TrimSpace(string(content))
	if text == "" {
		return nil, ErrCVEmpty()
	}

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, errx.Wrap(err, "cv extraction request failed", errx.TypeExternal)
	}

	if len(completion.Choices) == 0 {
		return nil, ErrCVParseFailed().WithDetail("reason", "empty completion")
	}

	var fields Fields
	raw := completion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		logx.Warnf("cv extraction returned non-JSON content: %v", err)
		return nil, ErrCVParseFailed().WithDetail("reason", "invalid json")
	}

	return &fields, nil
}
