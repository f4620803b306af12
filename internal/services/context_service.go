// Package services – ContextService
//
// ContextService manages the tenant knowledge injected into LLM prompts:
// keyword-tagged snippets (one per category) ranked by search.Scorer against
// an incoming message, and the structured information document produced from
// raw hotel text.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/repo"
	"github.com/fndrorato/chatbot-backend/internal/search"
)

// ContextSeparator joins snippet contents in a relevance answer.
const ContextSeparator = "\n\n---\n\n"

// Structurer turns raw hotel text into a JSON object keyed by context
// category; llm.Client satisfies it.
type Structurer interface {
	StructureHotelText(ctx context.Context, raw string) (map[string]any, error)
}

// ContextService ranks and stores tenant context.
type ContextService struct {
	DB         *gorm.DB
	Scorer     *search.Scorer
	Structurer Structurer

	// DefaultMax is used when a query asks for no explicit maximum.
	DefaultMax int
}

// NewContextService constructs a ContextService with the default scorer.
func NewContextService(db *gorm.DB, st Structurer) *ContextService {
	return &ContextService{
		DB:         db,
		Scorer:     search.NewScorer(),
		Structurer: st,
		DefaultMax: 3,
	}
}

// ContextInput is one snippet to upsert.
type ContextInput struct {
	Category string
	Content  string
	Keywords []string
	Priority int
}

// Upsert creates or replaces the tenant's snippet for in.Category and
// reports whether it was created. The snippet is (re)activated.
//
// Errors:
//   - ErrMissingFields when category or content is empty.
//   - ErrUnknownCategory when category is not one of domain.ContextCategories.
func (s *ContextService) Upsert(ctx context.Context, clientID string, in ContextInput) (*domain.ContextSnippet, bool, error) {
	tr := otel.Tracer("services/ContextService")
	ctx, span := tr.Start(ctx, "Upsert",
		trace.WithAttributes(attribute.String("context.category", in.Category)),
	)
	defer span.End()

	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" || strings.TrimSpace(in.Content) == "" {
		return nil, false, ErrMissingFields
	}
	if !domain.IsContextCategory(in.Category) {
		return nil, false, ErrUnknownCategory
	}

	keywords := make([]string, 0, len(in.Keywords))
	for _, k := range in.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}

	return repo.UpsertContext(ctx, s.DB, domain.ContextSnippet{
		ClientID: clientID,
		Category: in.Category,
		Content:  in.Content,
		Keywords: keywords,
		Priority: in.Priority,
	})
}

// List returns the tenant's active snippets together with a weak ETag that
// changes whenever a snippet is added or updated.
func (s *ContextService) List(ctx context.Context, clientID string) ([]domain.ContextSnippet, string, error) {
	tr := otel.Tracer("services/ContextService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("tenant.id", clientID)),
	)
	defer span.End()

	count, last, err := repo.ContextStats(ctx, s.DB, clientID)
	if err != nil {
		return nil, "", err
	}
	etag := `W/"ctx-0"`
	if count > 0 && last != nil {
		etag = fmt.Sprintf(`W/"ctx-%d-%d"`, count, last.UnixNano())
	}

	items, err := repo.ListActiveContexts(ctx, s.DB, clientID, nil)
	if err != nil {
		return nil, "", err
	}
	return items, etag, nil
}

// RelevantMatch describes one selected snippet.
type RelevantMatch struct {
	Category        string   `json:"category"`
	Score           int      `json:"score"`
	Priority        int      `json:"priority"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// RelevantContext is the prompt context selected for a message.
type RelevantContext struct {
	Context       string          `json:"context"`
	ContextsUsed  []string        `json:"contexts_used"`
	TotalContexts int             `json:"total_contexts"`
	Matches       []RelevantMatch `json:"matches"`
}

// Relevant ranks the tenant's active snippets (optionally restricted to
// categories) against message and returns at most limit of them; limit <= 0
// uses DefaultMax.
func (s *ContextService) Relevant(ctx context.Context, clientID, message string, limit int, categories []string) (*RelevantContext, error) {
	tr := otel.Tracer("services/ContextService")
	ctx, span := tr.Start(ctx, "Relevant",
		trace.WithAttributes(
			attribute.String("tenant.id", clientID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}
	if limit <= 0 {
		limit = s.DefaultMax
	}

	rows, err := repo.ListActiveContexts(ctx, s.DB, clientID, categories)
	if err != nil {
		return nil, err
	}
	docs := make([]search.Doc, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, search.Doc{
			ID:       r.ID,
			Category: r.Category,
			Content:  r.Content,
			Keywords: r.Keywords,
			Priority: r.Priority,
		})
	}

	ranked := s.scorer().Rank(message, docs, limit)
	out := &RelevantContext{
		ContextsUsed: make([]string, 0, len(ranked)),
		Matches:      make([]RelevantMatch, 0, len(ranked)),
	}
	contents := make([]string, 0, len(ranked))
	for _, m := range ranked {
		contents = append(contents, m.Doc.Content)
		out.ContextsUsed = append(out.ContextsUsed, m.Doc.Category)
		matched := m.Matched
		if matched == nil {
			matched = []string{}
		}
		out.Matches = append(out.Matches, RelevantMatch{
			Category:        m.Doc.Category,
			Score:           m.Score,
			Priority:        m.Doc.Priority,
			MatchedKeywords: matched,
		})
	}
	out.Context = strings.Join(contents, ContextSeparator)
	out.TotalContexts = len(ranked)

	zerolog.Ctx(ctx).Debug().
		Strs("contexts_used", out.ContextsUsed).
		Int("candidates", len(docs)).
		Msg("relevant context selected")
	return out, nil
}

// Process flattens rawText, has the Structurer organize it and stores the
// result as the tenant's information document.
func (s *ContextService) Process(ctx context.Context, clientID, rawText string) (map[string]any, error) {
	tr := otel.Tracer("services/ContextService")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.Int("raw_text.len", len(rawText))),
	)
	defer span.End()

	flat, err := search.FlattenText(rawText)
	if err != nil {
		return nil, err
	}
	if flat == "" {
		return nil, ErrRawTextRequired
	}
	if s.Structurer == nil {
		return nil, fmt.Errorf("context: no structurer configured")
	}

	structured, err := s.Structurer.StructureHotelText(ctx, flat)
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(structured)
	if err != nil {
		return nil, err
	}
	if err := repo.UpdateClientInformation(ctx, s.DB, clientID, string(doc)); err != nil {
		return nil, err
	}
	return structured, nil
}

func (s *ContextService) scorer() *search.Scorer {
	if s.Scorer == nil {
		return search.NewScorer()
	}
	return s.Scorer
}
