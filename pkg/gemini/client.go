package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers without usable content.
var ErrEmptyResponse = errors.New("gemini returned no content")

// Config configures the Gemini client.
type Config struct {
	APIKey      string
	TextModel   string
	SpeechModel string
	Voice       string
	// BaseURL and HTTPClient override the transport, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Client reflects on poems and narrates text through the Gemini API.
type Client struct {
	client      *genai.Client
	textModel   string
	speechModel string
	voice       string
}

// New creates a Gemini client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.5-flash"
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = "gemini-2.5-flash-preview-tts"
	}
	if cfg.Voice == "" {
		cfg.Voice = "Kore"
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, textModel: cfg.TextModel, speechModel: cfg.SpeechModel, voice: cfg.Voice}, nil
}

// Reflect asks the text model for free-form feedback on poem.
func (c *Client) Reflect(ctx context.Context, poem, instruction string) (string, error) {
	var config *genai.GenerateContentConfig
	if strings.TrimSpace(instruction) != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		}
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, genai.Text(poem), config)
	if err != nil {
		return "", fmt.Errorf("gemini reflect: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Synthesize narrates text with the configured voice and returns a WAV file.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.voice},
			},
		},
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.speechModel, genai.Text(text), config)
	if err != nil {
		return nil, "", fmt.Errorf("gemini synthesize: %w", err)
	}

	pcm, mimeType := inlineAudio(resp)
	if len(pcm) == 0 {
		return nil, "", ErrEmptyResponse
	}
	wavData, err := EncodeWAV(pcm, sampleRate(mimeType))
	if err != nil {
		return nil, "", fmt.Errorf("gemini synthesize: %w", err)
	}
	return wavData, WAVContentType, nil
}

func inlineAudio(resp *genai.GenerateContentResponse) ([]byte, string) {
	if resp == nil {
		return nil, ""
	}
	var (
		data     []byte
		mimeType string
	)
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if mimeType == "" {
				mimeType = part.InlineData.MIMEType
			}
			data = append(data, part.InlineData.Data...)
		}
		if len(data) > 0 {
			break
		}
	}
	return data, mimeType
}
