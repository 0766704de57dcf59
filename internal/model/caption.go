package model

import "time"

const (
	SourceCache = "cache"
	SourceAI    = "AI"
)

type CaptionRequest struct {
	Theme    string
	Audience string
	Date     string
	Location string
	Speakers string
	Tone     string
}

// Key returns the lookup subset of the request. Location and speakers are
// not part of it.
func (r CaptionRequest) Key() CaptionKey {
	return CaptionKey{
		Theme:    r.Theme,
		Audience: r.Audience,
		Date:     r.Date,
		Tone:     r.Tone,
	}
}

type CaptionKey struct {
	Theme    string
	Audience string
	Date     string
	Tone     string
}

type Caption struct {
	ID        string
	Theme     string
	Audience  string
	Date      string
	Location  string
	Speakers  string
	Tone      string
	Captions  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCaption(req CaptionRequest, captions []string) *Caption {
	return &Caption{
		Theme:    req.Theme,
		Audience: req.Audience,
		Date:     req.Date,
		Location: req.Location,
		Speakers: req.Speakers,
		Tone:     req.Tone,
		Captions: captions,
	}
}

func (c *Caption) Key() CaptionKey {
	return CaptionKey{
		Theme:    c.Theme,
		Audience: c.Audience,
		Date:     c.Date,
		Tone:     c.Tone,
	}
}
