// Package gemini calls the Gemini generateContent REST API through the
// shared resty client. The chat module owns prompt construction and fallback
// behavior; this package only moves text.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"campus-connect/config"
	"campus-connect/internal/global/httpclient"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string

	FlashModel string
	ProModel   string
}

// Default is the process-wide client; nil until Init runs.
var Default *Client

func Init() {
	cfg := config.Get().Gemini
	Default = &Client{
		http:       httpclient.Client,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		FlashModel: cfg.FlashModel,
		ProModel:   cfg.ProModel,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent sends one prompt to the named model and returns the
// concatenated candidate text.
func (c *Client) GenerateContent(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}

	var result generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
		}).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, model))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("gemini api: %s (status %d)", result.Error.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("gemini api: status %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini api: no candidates returned")
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini api: empty response")
	}
	return text, nil
}
