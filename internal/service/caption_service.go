// Package service runs the caption flow: cache lookup, prompt build, LLM
// call, parse, persist and reply shaping. Collaborator errors are returned
// unwrapped so callers can surface their message as-is.
package service

import (
	"context"
	"time"

	"conferencecaptions/internal/metrics"
	"conferencecaptions/internal/model"
	"conferencecaptions/pkg/llm"
)

const NoCaptionsMessage = "⚠️ No captions returned from AI"

type CaptionStore interface {
	FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error)
	Create(ctx context.Context, caption *model.Caption) error
}

type Options struct {
	Model        string
	MaxTokens    int
	Temperature  float64
	Organization string
}

func DefaultOptions() Options {
	return Options{
		Model:        llm.DefaultModel(llm.ProviderCohere),
		MaxTokens:    llm.CaptionMaxTokens,
		Temperature:  llm.CaptionTemperature,
		Organization: llm.DefaultOrganization,
	}
}

// Result is one of three shapes: a cache hit (Source "cache"), a fresh
// generation (Source "AI", Saved set) or an empty generation (Message set).
type Result struct {
	Captions []string
	Source   string
	Saved    *model.Caption
	Message  string
}

type CaptionService struct {
	store CaptionStore
	llm   llm.Client
	opts  Options
}

func NewCaptionService(store CaptionStore, client llm.Client, opts Options) *CaptionService {
	return &CaptionService{
		store: store,
		llm:   client,
		opts:  opts,
	}
}

func (s *CaptionService) Generate(ctx context.Context, req model.CaptionRequest) (*Result, error) {
	result, err := s.generate(ctx, req)
	if err != nil {
		metrics.CaptionRequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	switch {
	case result.Source == model.SourceCache:
		metrics.CaptionRequestsTotal.WithLabelValues(metrics.OutcomeCache).Inc()
	case result.Saved != nil:
		metrics.CaptionRequestsTotal.WithLabelValues(metrics.OutcomeAI).Inc()
	default:
		metrics.CaptionRequestsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	}

	return result, nil
}

func (s *CaptionService) generate(ctx context.Context, req model.CaptionRequest) (*Result, error) {
	existing, err := s.store.FindOne(ctx, req.Key())
	if err != nil {
		return nil, err
	}

	if existing != nil {
		captions := existing.Captions
		if captions == nil {
			captions = []string{}
		}
		return &Result{Captions: captions, Source: model.SourceCache}, nil
	}

	prompt := s.Prompt(req)

	resp, err := s.callLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	captions := llm.SplitCaptions(llm.ExtractText(resp))
	if len(captions) == 0 {
		return &Result{Captions: []string{}, Message: NoCaptionsMessage}, nil
	}

	saved := model.NewCaption(req, captions)
	if err := s.store.Create(ctx, saved); err != nil {
		return nil, err
	}

	return &Result{Captions: captions, Source: model.SourceAI, Saved: saved}, nil
}

// Prompt returns the instruction sent to the LLM for req.
func (s *CaptionService) Prompt(req model.CaptionRequest) string {
	return llm.BuildCaptionPrompt(llm.CaptionInput{
		Organization: s.opts.Organization,
		Theme:        req.Theme,
		Audience:     req.Audience,
		Date:         req.Date,
		Location:     req.Location,
		Speakers:     req.Speakers,
		Tone:         req.Tone,
	})
}

func (s *CaptionService) callLLM(ctx context.Context, prompt string) (*llm.GenerateResponse, error) {
	start := time.Now()

	resp, err := s.llm.Generate(ctx, llm.GenerateParams{
		Model:       s.opts.Model,
		Prompt:      prompt,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.LLMDurationSeconds.WithLabelValues(s.llm.Name(), result).Observe(time.Since(start).Seconds())

	return resp, err
}
