package advisor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultGeminiModel      = "gemini-2.5-flash"
	DefaultGeminiImageModel = "gemini-2.5-flash-image"
)

// ErrEmptyResponse is returned when the model answered without usable content.
var ErrEmptyResponse = errors.New("empty response from model")

// GeminiConfig configures GeminiClient. BaseURL and HTTPClient are optional.
type GeminiConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiClient implements Advisor on top of the Gemini API.
type GeminiClient struct {
	models     *genai.Models
	model      string
	imageModel string
}

// NewGeminiClient creates a client, filling in defaults for empty fields.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &GeminiClient{models: client.Models, model: cfg.Model, imageModel: cfg.ImageModel}
	if c.model == "" {
		c.model = DefaultGeminiModel
	}
	if c.imageModel == "" {
		c.imageModel = DefaultGeminiImageModel
	}
	return c, nil
}

func (c *GeminiClient) generate(ctx context.Context, model, prompt string, genCfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp, nil
}

func (c *GeminiClient) generateText(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.generate(ctx, c.model, prompt, genCfg)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *GeminiClient) GenerateDescription(ctx context.Context, dishName string) (string, error) {
	return c.generateText(ctx, descriptionPrompt(dishName), nil)
}

// GenerateImage returns the first inline image as a data URI.
func (c *GeminiClient) GenerateImage(ctx context.Context, dishName, description string) (string, error) {
	resp, err := c.generate(ctx, c.imageModel, imagePrompt(dishName, description),
		&genai.GenerateContentConfig{ResponseModalities: []string{string(genai.ModalityImage)}})
	if err != nil {
		return "", err
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			mime := p.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(p.InlineData.Data)), nil
		}
	}
	return "", fmt.Errorf("%w: no image data", ErrEmptyResponse)
}

func (c *GeminiClient) SuggestUpsell(ctx context.Context, current []OrderLine, menu []MenuEntry) ([]string, error) {
	if len(current) == 0 {
		return []string{}, nil
	}
	text, err := c.generateText(ctx, upsellPrompt(current, menu),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"})
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal([]byte(text), &names); err != nil {
		return nil, fmt.Errorf("upsell response is not a JSON string array: %w", err)
	}
	return names, nil
}

func (c *GeminiClient) SummarizeSales(ctx context.Context, digest SalesDigest) (string, error) {
	return c.generateText(ctx, salesPrompt(digest), nil)
}

func (c *GeminiClient) AnswerQuery(ctx context.Context, question string, ac AssistantContext) (string, error) {
	return c.generateText(ctx, assistantPrompt(question, ac), nil)
}
