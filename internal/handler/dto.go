package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"conferencecaptions/internal/model"
	"conferencecaptions/internal/service"
)

type CaptionRequest struct {
	Theme    string `json:"theme"`
	Audience string `json:"audience"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Speakers string `json:"speakers"`
	Tone     string `json:"tone"`
}

var errNotText = errors.New("must be a string, number or boolean")

// UnmarshalJSON accepts any scalar for each field and keeps its JSON text,
// so {"date":2026} reads as "2026". Missing and null fields are empty.
func (r *CaptionRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"theme", &r.Theme},
		{"audience", &r.Audience},
		{"date", &r.Date},
		{"location", &r.Location},
		{"speakers", &r.Speakers},
		{"tone", &r.Tone},
	}

	for _, f := range fields {
		text, err := fieldText(raw[f.name])
		if err != nil {
			return fmt.Errorf("field %q %w", f.name, err)
		}
		*f.dst = text
	}

	return nil
}

func fieldText(v interface{}) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number, bool:
		return fmt.Sprint(v), nil
	}
	return "", errNotText
}

func (r CaptionRequest) toModel() model.CaptionRequest {
	return model.CaptionRequest{
		Theme:    r.Theme,
		Audience: r.Audience,
		Date:     r.Date,
		Location: r.Location,
		Speakers: r.Speakers,
		Tone:     r.Tone,
	}
}

type CaptionRecordResponse struct {
	ID        string   `json:"_id"`
	Theme     string   `json:"theme"`
	Audience  string   `json:"audience"`
	Date      string   `json:"date"`
	Location  string   `json:"location"`
	Speakers  string   `json:"speakers"`
	Tone      string   `json:"tone"`
	Captions  []string `json:"captions"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// timestampLayout renders UTC timestamps with millisecond precision, as
// JavaScript's Date.toJSON does.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type CachedCaptionsResponse struct {
	Captions []string `json:"captions"`
	Source   string   `json:"source"`
}

type GeneratedCaptionsResponse struct {
	Captions []string              `json:"captions"`
	Saved    CaptionRecordResponse `json:"saved"`
	Source   string                `json:"source"`
}

type EmptyCaptionsResponse struct {
	Captions []string `json:"captions"`
	Message  string   `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func NewCaptionRecordResponse(c *model.Caption) CaptionRecordResponse {
	return CaptionRecordResponse{
		ID:        c.ID,
		Theme:     c.Theme,
		Audience:  c.Audience,
		Date:      c.Date,
		Location:  c.Location,
		Speakers:  c.Speakers,
		Tone:      c.Tone,
		Captions:  c.Captions,
		CreatedAt: c.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: c.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// NewCaptionsResponse shapes a service result into the reply body for its
// outcome: cached, generated or empty.
func NewCaptionsResponse(result *service.Result) interface{} {
	switch {
	case result.Source == model.SourceCache:
		return CachedCaptionsResponse{
			Captions: result.Captions,
			Source:   model.SourceCache,
		}

	case result.Saved != nil:
		return GeneratedCaptionsResponse{
			Captions: result.Captions,
			Saved:    NewCaptionRecordResponse(result.Saved),
			Source:   model.SourceAI,
		}
	}

	return EmptyCaptionsResponse{
		Captions: []string{},
		Message:  result.Message,
	}
}
