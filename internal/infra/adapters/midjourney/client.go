package midjourney

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/infra/metrics"
)

// Compile-time assurance this client satisfies the port
var _ adapter.GenerationAdapter = (*Client)(nil)

// Client implements adapter.GenerationAdapter against a UserAPI-compatible
// Midjourney gateway. Base URL defaults to https://api.userapi.ai.
// Every submission is a POST to /midjourney/v2/<action> carrying the webhook
// address the service invokes as the job progresses or finishes.
// Authentication: static "api-key" header.
type Client struct {
	apiKey     string
	base       string
	webhookURL string
	client     *http.Client
	log        *zerolog.Logger
}

func NewClient(apiKey, base, webhookURL string, logger *zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("midjourney api key empty")
	}
	if base == "" {
		base = "https://api.userapi.ai"
	}
	if webhookURL == "" {
		return nil, errors.New("webhook url empty")
	}
	l := logger.With().Str("component", "MidjourneyClient").Logger()
	return &Client{
		apiKey:     apiKey,
		base:       strings.TrimRight(base, "/"),
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 30 * time.Second},
		log:        &l,
	}, nil
}

type submitRequest struct {
	Prompt             string `json:"prompt,omitempty"`
	Hash               string `json:"hash,omitempty"`
	Choice             any    `json:"choice,omitempty"`
	WebhookURL         string `json:"webhook_url"`
	WebhookType        string `json:"webhook_type"`
	IsDisablePrefilter *bool  `json:"is_disable_prefilter,omitempty"`
}

type submitResponse struct {
	Hash string `json:"hash"`
}

func (c *Client) Imagine(ctx context.Context, prompt string) (string, error) {
	prefilter := false
	return c.submit(ctx, model.ActionImagine, submitRequest{
		Prompt:             prompt,
		IsDisablePrefilter: &prefilter,
	})
}

func (c *Client) Act(ctx context.Context, action model.Action, hash, choice string) (string, error) {
	req := submitRequest{Hash: hash}
	if choice != "" {
		// Quadrant choices go out as integers, upsample styles as strings.
		if n, err := strconv.Atoi(choice); err == nil {
			req.Choice = n
		} else {
			req.Choice = choice
		}
	}
	return c.submit(ctx, action, req)
}

func (c *Client) submit(ctx context.Context, action model.Action, body submitRequest) (string, error) {
	body.WebhookURL = c.webhookURL
	body.WebhookType = action.WebhookType()

	b, _ := json.Marshal(body)
	endpoint := fmt.Sprintf("%s/midjourney/v2/%s", c.base, action)
	c.log.Debug().Str("endpoint", endpoint).RawJSON("request", b).Msg("submitting job")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("midjourney %s http %d", action, resp.StatusCode)
	}
	var payload submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Hash == "" {
		return "", errors.New("response missing job hash")
	}
	c.log.Debug().Str("hash", payload.Hash).Str("action", string(action)).Msg("job accepted")
	metrics.IncJobSubmitted(string(action))
	return payload.Hash, nil
}
