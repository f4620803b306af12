// Package llm talks to an OpenAI-compatible chat-completion endpoint.
//
// Two uses exist: asking whether a conversation transcript is finished (a
// free-text True/False answer) and structuring a tenant's raw hotel text
// into a JSON object keyed by context category. Calls are rate limited and
// bounded by an explicit timeout.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

var (
	// ErrNoChoices is returned when the completion carries no choices.
	ErrNoChoices = errors.New("llm: completion returned no choices")
	// ErrNotConfigured is returned when no endpoint was configured.
	ErrNotConfigured = errors.New("llm: client not configured")
)

// Config configures a Client.
//
// Fields:
//   - BaseURL: API root; "/chat/completions" is appended by the SDK.
//   - APIKey: bearer credential.
//   - Model: model name sent with every request (may be empty for agents
//     that pin their own model).
//   - Timeout: per-call deadline.
//   - RPS / Burst: client-side rate limit; RPS <= 0 disables it.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// Client wraps the go-openai client. It is safe for concurrent use.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// New builds a Client. An empty BaseURL yields a client whose calls fail
// with ErrNotConfigured.
func New(cfg Config) *Client {
	c := &Client{model: cfg.Model, timeout: cfg.Timeout}
	if c.timeout <= 0 {
		c.timeout = 20 * time.Second
	}
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	if cfg.BaseURL != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
		c.api = openai.NewClientWithConfig(oc)
	}
	return c
}

// Ask sends content as a single user message and returns the answer text.
func (c *Client) Ask(ctx context.Context, content string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
}

const structureSystem = "Você é um especialista em estruturar informações de hotéis. Retorne apenas JSON válido."

// StructureHotelText asks the model to organize raw hotel information into a
// JSON object keyed by context category and decodes the answer.
func (c *Client) StructureHotelText(ctx context.Context, raw string) (map[string]any, error) {
	answer, err := c.complete(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: structureSystem},
			{Role: openai.ChatMessageRoleUser, Content: structurePrompt(raw)},
		},
		Temperature: 0.3,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(answer), &out); err != nil {
		return nil, fmt.Errorf("llm: structured answer is not a JSON object: %w", err)
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm: rate limiter: %w", err)
		}
	}

	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(cctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("llm completion failed")
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	zerolog.Ctx(ctx).Debug().Dur("elapsed", time.Since(start)).Msg("llm completion")
	return resp.Choices[0].Message.Content, nil
}

func structurePrompt(raw string) string {
	return `
Você é um especialista em organizar informações de hotéis.

Analise o texto abaixo e organize-o em categorias estruturadas.
Extraia TODAS as informações relevantes e organize de forma clara e concisa.

TEXTO ORIGINAL:
` + raw + `

IMPORTANTE:
- Mantenha TODAS as informações importantes
- Organize por categorias lógicas
- Seja conciso mas completo
- Inclua todos os detalhes numéricos (preços, horários, IDs)
- Mantenha o idioma original quando necessário

Retorne APENAS um JSON válido com as chaves:
"quartos", "horarios", "pagamento", "servicos", "contato", "politicas", "instrucoes_atendimento".
Cada chave contém um objeto com os detalhes daquela categoria.
`
}
