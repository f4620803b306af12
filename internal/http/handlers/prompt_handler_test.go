package handlers

import (
	"net/http"
	"testing"

	"github.com/fndrorato/chatbot-backend/internal/domain"
	"github.com/fndrorato/chatbot-backend/internal/services"
)

func TestGetPrompt_DefaultsToMain(t *testing.T) {
	var names []string
	h := New(Deps{Prompts: stubPrompts{
		get: func(_, name string) (*domain.SystemPrompt, error) {
			names = append(names, name)
			if name == "vendas" {
				return nil, services.ErrPromptNotFound
			}
			return &domain.SystemPrompt{Name: name, Prompt: "Você é...", Version: "1.2"}, nil
		},
	}})
	r := newTestRouter(http.MethodPost, "/prompt", h.GetPrompt)

	w := doJSON(t, r, http.MethodPost, "/prompt", "")
	m := decodeBody(t, w)
	if w.Code != http.StatusOK || m["name"] != "main" || m["version"] != "1.2" || m["prompt"] != "Você é..." {
		t.Fatalf("%d %v", w.Code, m)
	}

	w = doJSON(t, r, http.MethodPost, "/prompt", `{"prompt_name":"vendas"}`)
	expectError(t, w, http.StatusNotFound, ErrCodePromptNotFound, MsgPromptNotFound)

	if len(names) != 2 || names[0] != "main" || names[1] != "vendas" {
		t.Fatalf("names=%v", names)
	}
}

func TestPublishAndActivatePrompt(t *testing.T) {
	h := New(Deps{Prompts: stubPrompts{
		publish: func(_, name, version, text string) (*domain.SystemPrompt, error) {
			if text == "" {
				return nil, services.ErrMissingFields
			}
			return &domain.SystemPrompt{ID: "p2", Name: name, Version: version, Active: true}, nil
		},
		activate: func(_, id string) (*domain.SystemPrompt, error) {
			if id != "p1" {
				return nil, services.ErrPromptNotFound
			}
			return &domain.SystemPrompt{ID: "p1", Name: "main", Version: "1.0", Active: true}, nil
		},
	}})
	r := newTestRouter(http.MethodPost, "/prompt/publish", h.PublishPrompt)
	r.PUT("/prompt/:id/activate", h.ActivatePrompt)

	w := doJSON(t, r, http.MethodPost, "/prompt/publish", `{"name":"main","version":" 1.1 ","prompt":"novo"}`)
	m := decodeBody(t, w)
	if w.Code != http.StatusCreated || m["id"] != "p2" || m["version"] != "1.1" || m["active"] != true {
		t.Fatalf("%d %v", w.Code, m)
	}

	w = doJSON(t, r, http.MethodPost, "/prompt/publish", `{"name":"main"}`)
	expectError(t, w, http.StatusBadRequest, ErrCodeBadRequest, services.MsgMissingFields)

	w = doJSON(t, r, http.MethodPut, "/prompt/p1/activate", "")
	if w.Code != http.StatusOK || decodeBody(t, w)["id"] != "p1" {
		t.Fatalf("activate: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/prompt/zzz/activate", "")
	expectError(t, w, http.StatusNotFound, ErrCodePromptNotFound, MsgPromptNotFound)
}
