package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
)

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) (*Advice, error)
	Model() string
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GEMINI_API_KEY / GOOGLE_API_KEY from the environment.
func NewGeminiProvider(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Model() string {
	return p.model
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) (*Advice, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("generating content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Gemini raw response:\n%s", raw)

	return parseAdvice(raw)
}

func parseAdvice(raw string) (*Advice, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("empty model response")
	}

	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`\n ")

	var advice Advice
	if err := json.Unmarshal([]byte(clean), &advice); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	if advice.Items == nil {
		advice.Items = []Item{}
	}
	return &advice, nil
}
