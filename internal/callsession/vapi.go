package callsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tdhoang/mockmate/config"
)

// VapiTransport drives one remote Vapi call over its REST API. Call events
// come back asynchronously through the webhook, not through this client.
type VapiTransport struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	assistantID string
	workflowID  string

	callID string
}

func NewVapiTransport(cfg *config.Config) *VapiTransport {
	return &VapiTransport{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     strings.TrimRight(cfg.Vapi.BaseURL, "/"),
		apiKey:      cfg.Vapi.APIKey,
		assistantID: cfg.Vapi.AssistantID,
		workflowID:  cfg.Vapi.WorkflowID,
	}
}

// NewVapiTransportFactory returns a factory producing one transport per
// session, each tracking its own remote call id.
func NewVapiTransportFactory(cfg *config.Config) TransportFactory {
	return func() Transport {
		return NewVapiTransport(cfg)
	}
}

type vapiStartRequest struct {
	AssistantID        string                 `json:"assistantId,omitempty"`
	WorkflowID         string                 `json:"workflowId,omitempty"`
	Assistant          *vapiInlineAssistant   `json:"assistant,omitempty"`
	AssistantOverrides map[string]interface{} `json:"assistantOverrides,omitempty"`
}

type vapiInlineAssistant struct {
	Name         string          `json:"name"`
	FirstMessage string          `json:"firstMessage"`
	Model        vapiModelConfig `json:"model"`
}

type vapiModelConfig struct {
	Provider string            `json:"provider"`
	Model    string            `json:"model"`
	Messages []vapiChatMessage `json:"messages"`
}

type vapiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type vapiStartResponse struct {
	ID string `json:"id"`
}

func (t *VapiTransport) Start(ctx context.Context, cfg StartConfig) error {
	req := vapiStartRequest{}
	if cfg.UseAssistant {
		req.AssistantID = t.assistantID
		req.WorkflowID = t.workflowID
		if len(cfg.Variables) > 0 {
			req.AssistantOverrides = map[string]interface{}{
				"variableValues": cfg.Variables,
			}
		}
	} else if cfg.Persona != nil {
		prompt := cfg.Persona.SystemPrompt
		for name, value := range cfg.Variables {
			prompt = strings.ReplaceAll(prompt, "{{"+name+"}}", value)
		}
		req.Assistant = &vapiInlineAssistant{
			Name:         cfg.Persona.Name,
			FirstMessage: cfg.Persona.FirstMessage,
			Model: vapiModelConfig{
				Provider: "openai",
				Model:    "gpt-4",
				Messages: []vapiChatMessage{{Role: "system", Content: prompt}},
			},
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding call start request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building call start request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("starting remote call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().Int("status", resp.StatusCode).Str("body", string(payload)).Msg("Vapi call start rejected")
		return fmt.Errorf("transport rejected call start with status %d", resp.StatusCode)
	}

	var started vapiStartResponse
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		return fmt.Errorf("decoding call start response: %w", err)
	}
	t.callID = started.ID
	log.Info().Str("callID", t.callID).Msg("Remote call started")
	return nil
}

func (t *VapiTransport) Stop(ctx context.Context) error {
	if t.callID == "" {
		return nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, t.baseURL+"/call/"+t.callID, nil)
	if err != nil {
		return fmt.Errorf("building call stop request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("stopping remote call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("transport rejected call stop with status %d", resp.StatusCode)
	}
	return nil
}
