package search

import (
	"reflect"
	"testing"
)

func docs() []Doc {
	return []Doc{
		{ID: "1", Category: "horarios", Content: "Check-in às 14h, check-out às 12h.", Keywords: []string{"check-in", "horário"}, Priority: 5},
		{ID: "2", Category: "pagamento", Content: "Aceitamos Pix e cartão.", Keywords: []string{"pix", "cartao", "pagar"}, Priority: 3},
		{ID: "3", Category: "instrucoes_atendimento", Content: "Seja cordial.", Keywords: nil, Priority: 10},
		{ID: "4", Category: "contato", Content: "Telefone (11) 5555-0000.", Keywords: []string{"telefone"}, Priority: 0},
	}
}

// ---------- Options + defaultConfig ----------
func TestOptionsAndDefaults(t *testing.T) {
	def := defaultConfig()
	if def.priorityWeight != 2 || def.pinnedPriority != 10 || def.defaultMax != 3 {
		t.Fatalf("defaultConfig unexpected: %#v", def)
	}

	cfg := def
	WithPriorityWeight(5)(&cfg)
	WithPriorityWeight(-1)(&cfg) // no-op
	if cfg.priorityWeight != 5 {
		t.Fatalf("WithPriorityWeight failed: %d", cfg.priorityWeight)
	}
	WithPinnedPriority(7)(&cfg)
	if cfg.pinnedPriority != 7 {
		t.Fatalf("WithPinnedPriority failed: %d", cfg.pinnedPriority)
	}
	WithDefaultMax(0)(&cfg) // no-op
	WithDefaultMax(4)(&cfg)
	if cfg.defaultMax != 4 {
		t.Fatalf("WithDefaultMax failed: %d", cfg.defaultMax)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Horário  do\tCheck-In ": "horario do check-in",
		"CAFÉ DA MANHÃ":            "cafe da manha",
		"ação":                     "acao",
		"":                         "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestRank_CheckInQuestion(t *testing.T) {
	s := NewScorer()
	got := s.Rank("qual o horário do check-in?", docs(), 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %+v", got)
	}
	// the pinned instructions (priority 10) outrank everything
	if got[0].Doc.Category != "instrucoes_atendimento" || got[1].Doc.Category != "horarios" {
		t.Fatalf("unexpected order: %+v", got)
	}
	h := got[1]
	if h.Score < 3*1+5*2 {
		t.Fatalf("expected score >= 13, got %d", h.Score)
	}
	// both keywords match as substrings of the normalized message
	if h.Score != 3+3+10 {
		t.Fatalf("expected score 16, got %d", h.Score)
	}
	if !reflect.DeepEqual(h.Matched, []string{"check-in", "horário"}) {
		t.Fatalf("matched keywords: %#v", h.Matched)
	}
}

func TestRank_PinnedAndPriorityOnly(t *testing.T) {
	s := NewScorer()
	got := s.Rank("bom dia", docs(), 10)
	// No keyword matches; priority alone keeps 1 (10), 2 (6), 3 (20). 4 has 0.
	var cats []string
	for _, m := range got {
		cats = append(cats, m.Doc.Category)
		if m.Fallback {
			t.Fatalf("unexpected fallback result: %+v", m)
		}
	}
	want := []string{"instrucoes_atendimento", "horarios", "pagamento"}
	if !reflect.DeepEqual(cats, want) {
		t.Fatalf("order = %v; want %v", cats, want)
	}
}

func TestRank_PinnedWithZeroWeight(t *testing.T) {
	s := NewScorer(WithPriorityWeight(0))
	got := s.Rank("bom dia", docs(), 3)
	if len(got) != 1 || got[0].Doc.Category != "instrucoes_atendimento" || got[0].Score != 0 {
		t.Fatalf("expected only the pinned doc with score 0, got %+v", got)
	}
}

func TestRank_FallbackByPriority(t *testing.T) {
	s := NewScorer()
	in := []Doc{
		{Category: "a", Priority: 0},
		{Category: "b", Priority: -1},
		{Category: "c", Priority: 0, Keywords: []string{"piscina"}},
	}
	got := s.Rank("qual o preço?", in, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 fallback results, got %d", len(got))
	}
	for _, m := range got {
		if !m.Fallback || m.Score != 0 {
			t.Fatalf("expected fallback with score 0, got %+v", m)
		}
	}
	if got[0].Doc.Category != "a" || got[1].Doc.Category != "c" {
		t.Fatalf("fallback order: %+v", got)
	}
}

func TestRank_MatchPointsAndLimit(t *testing.T) {
	s := NewScorer(WithPriorityWeight(0))
	in := []Doc{
		{Category: "substring", Keywords: []string{"cafe da manha"}},
		{Category: "partial", Keywords: []string{"estacion"}},
		{Category: "none", Keywords: []string{"piscina"}},
	}
	got := s.Rank("Tem café da manhã e estacionamento?", in, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %+v", got)
	}
	if got[0].Doc.Category != "substring" || got[0].Score != SubstringPoints {
		t.Fatalf("substring match: %+v", got[0])
	}
	// "estacion" is a substring of the whole message too.
	if got[1].Score != SubstringPoints {
		t.Fatalf("partial keyword scored %d", got[1].Score)
	}

	got = s.Rank("Tem café da manhã e estacionamento?", in, 1)
	if len(got) != 1 {
		t.Fatalf("limit not applied: %d", len(got))
	}
}

func TestRank_EmptyKeywordsIgnored(t *testing.T) {
	s := NewScorer(WithPriorityWeight(0))
	got := s.Rank("oi", []Doc{{Category: "x", Keywords: []string{"", "  "}}}, 3)
	if len(got) != 1 || !got[0].Fallback {
		t.Fatalf("blank keywords must not score, got %+v", got)
	}
}

func TestScore_MonotonicInPriority(t *testing.T) {
	s := NewScorer()
	base := Doc{Keywords: []string{"check-in", "pix"}}
	messages := []string{"", "qual o horário do check-in?", "posso pagar com pix", "nada a ver"}
	for _, raw := range messages {
		msg := Normalize(raw)
		words := wordSet(msg)
		prev := -1 << 31
		for p := -5; p <= 15; p++ {
			d := base
			d.Priority = p
			got, _ := s.scoreDoc(msg, words, d)
			if got < prev {
				t.Fatalf("score decreased at priority %d for %q: %d < %d", p, msg, got, prev)
			}
			prev = got
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	s := NewScorer()
	a := s.Rank("check-in e pix", docs(), 4)
	b := s.Rank("check-in e pix", docs(), 4)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected deterministic output")
	}
}
