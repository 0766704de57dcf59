package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"conferencecaptions/internal/model"
	"conferencecaptions/pkg/llm"

	"github.com/go-playground/assert/v2"
)

type fakeStore struct {
	records   []*model.Caption
	findErr   error
	createErr error
	finds     int
	creates   int
}

func (f *fakeStore) FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error) {
	f.finds++
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.records {
		if r.Theme == key.Theme && r.Audience == key.Audience && r.Date == key.Date && r.Tone == key.Tone {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Create(ctx context.Context, caption *model.Caption) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	caption.ID = "rec-1"
	caption.CreatedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	f.records = append(f.records, caption)
	return nil
}

type fakeLLM struct {
	resp       *llm.GenerateResponse
	err        error
	calls      int
	lastParams llm.GenerateParams
}

func (f *fakeLLM) Generate(ctx context.Context, params llm.GenerateParams) (*llm.GenerateResponse, error) {
	f.calls++
	f.lastParams = params
	return f.resp, f.err
}

func (f *fakeLLM) Name() string {
	return "fake"
}

var conferenceRequest = model.CaptionRequest{
	Theme:    "Rooted",
	Audience: "Young adults",
	Date:     "2025-06-01",
	Location: "Main Auditorium",
	Speakers: "Pastor Ade",
	Tone:     "joyful",
}

func newTestService(store *fakeStore, client *fakeLLM) *CaptionService {
	return NewCaptionService(store, client, DefaultOptions())
}

func TestGenerate_CacheHit(t *testing.T) {
	store := &fakeStore{records: []*model.Caption{{
		ID:       "cached",
		Theme:    "Rooted",
		Audience: "Young adults",
		Date:     "2025-06-01",
		Location: "Elsewhere",
		Speakers: "Someone else",
		Tone:     "joyful",
		Captions: []string{"1. Cached one", "2. Cached two"},
	}}}
	client := &fakeLLM{}

	res, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, nil, err)
	assert.Equal(t, model.SourceCache, res.Source)
	assert.Equal(t, []string{"1. Cached one", "2. Cached two"}, res.Captions)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, 0, store.creates)
}

func TestGenerate_MissThenPersist(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{resp: &llm.GenerateResponse{Text: "1. Join us!\n2. Don't miss it!"}}

	res, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, nil, err)
	assert.Equal(t, model.SourceAI, res.Source)
	assert.Equal(t, []string{"1. Join us!", "2. Don't miss it!"}, res.Captions)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, store.creates)

	saved := res.Saved
	assert.NotEqual(t, nil, saved)
	assert.Equal(t, "rec-1", saved.ID)
	assert.Equal(t, "Rooted", saved.Theme)
	assert.Equal(t, "Young adults", saved.Audience)
	assert.Equal(t, "2025-06-01", saved.Date)
	assert.Equal(t, "Main Auditorium", saved.Location)
	assert.Equal(t, "Pastor Ade", saved.Speakers)
	assert.Equal(t, "joyful", saved.Tone)
	assert.Equal(t, []string{"1. Join us!", "2. Don't miss it!"}, saved.Captions)
}

func TestGenerate_LLMParams(t *testing.T) {
	client := &fakeLLM{resp: &llm.GenerateResponse{Text: "A"}}

	_, err := newTestService(&fakeStore{}, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, nil, err)
	assert.Equal(t, "command-r-plus-08-2024", client.lastParams.Model)
	assert.Equal(t, 200, client.lastParams.MaxTokens)
	assert.Equal(t, 0.8, client.lastParams.Temperature)
	assert.Equal(t, true, strings.Contains(client.lastParams.Prompt, "Generate 2 short, joyful social media captions"))
	assert.Equal(t, true, strings.Contains(client.lastParams.Prompt, "Speakers: Pastor Ade"))
}

func TestGenerate_SecondRequestHitsCache(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{resp: &llm.GenerateResponse{Text: "A\nB"}}
	svc := newTestService(store, client)

	_, err := svc.Generate(context.Background(), conferenceRequest)
	assert.Equal(t, nil, err)

	other := conferenceRequest
	other.Location = "Online"
	other.Speakers = "Guest"

	res, err := svc.Generate(context.Background(), other)

	assert.Equal(t, nil, err)
	assert.Equal(t, model.SourceCache, res.Source)
	assert.Equal(t, []string{"A", "B"}, res.Captions)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, store.creates)
}

func TestGenerate_EmptyOutput(t *testing.T) {
	tests := []struct {
		name string
		resp *llm.GenerateResponse
	}{
		{name: "empty text", resp: &llm.GenerateResponse{Text: ""}},
		{name: "whitespace text", resp: &llm.GenerateResponse{Text: "  \n\t\n"}},
		{name: "whitespace output", resp: &llm.GenerateResponse{Output: []llm.ContentBlock{{Content: " \n "}}}},
		{name: "nil response", resp: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			client := &fakeLLM{resp: tt.resp}

			res, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

			assert.Equal(t, nil, err)
			assert.Equal(t, []string{}, res.Captions)
			assert.Equal(t, NoCaptionsMessage, res.Message)
			assert.Equal(t, "", res.Source)
			assert.Equal(t, 0, store.creates)
		})
	}
}

func TestGenerate_ParsingFallback(t *testing.T) {
	client := &fakeLLM{resp: &llm.GenerateResponse{Text: "A\nB"}}

	res, err := newTestService(&fakeStore{}, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"A", "B"}, res.Captions)
}

func TestGenerate_LineFiltering(t *testing.T) {
	client := &fakeLLM{resp: &llm.GenerateResponse{
		Output: []llm.ContentBlock{{Content: "\n\n  First \n\n  Second  \n"}},
	}}

	res, err := newTestService(&fakeStore{}, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"First", "Second"}, res.Captions)
}

func TestGenerate_StoreLookupFailure(t *testing.T) {
	store := &fakeStore{findErr: errors.New("connection refused")}
	client := &fakeLLM{}

	_, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, 0, client.calls)
}

func TestGenerate_LLMFailure(t *testing.T) {
	store := &fakeStore{}
	client := &fakeLLM{err: errors.New("upstream unavailable")}

	_, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, "upstream unavailable", err.Error())
	assert.Equal(t, 0, store.creates)
}

func TestGenerate_CreateFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("write conflict")}
	client := &fakeLLM{resp: &llm.GenerateResponse{Text: "A"}}

	_, err := newTestService(store, client).Generate(context.Background(), conferenceRequest)

	assert.Equal(t, "write conflict", err.Error())
	assert.Equal(t, 1, store.creates)
}

func TestPrompt_UsesOrganization(t *testing.T) {
	opts := DefaultOptions()
	opts.Organization = "Grace Chapel"
	svc := NewCaptionService(&fakeStore{}, &fakeLLM{}, opts)

	prompt := svc.Prompt(conferenceRequest)

	assert.Equal(t, true, strings.Contains(prompt, "Grace Chapel's upcoming conference"))
	assert.Equal(t, true, strings.Contains(prompt, "Theme: Rooted"))
}
