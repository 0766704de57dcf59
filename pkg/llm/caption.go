package llm

import (
	"fmt"
	"strings"
)

type CaptionInput struct {
	Organization string
	Theme        string
	Audience     string
	Date         string
	Location     string
	Speakers     string
	Tone         string
}

func BuildCaptionPrompt(input CaptionInput) string {
	org := input.Organization
	if org == "" {
		org = DefaultOrganization
	}

	return fmt.Sprintf(captionPrompt,
		input.Tone, org,
		input.Theme, input.Audience, input.Date, input.Location, input.Speakers,
	)
}

// ExtractText picks the generated text: the first structured block, then the
// flat text field, then nothing. Empty values fall through to the next shape.
func ExtractText(resp *GenerateResponse) string {
	if resp == nil {
		return ""
	}

	if len(resp.Output) > 0 && resp.Output[0].Content != "" {
		return resp.Output[0].Content
	}

	return resp.Text
}

// SplitCaptions returns the trimmed non-empty lines of text, in order.
func SplitCaptions(text string) []string {
	captions := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		captions = append(captions, line)
	}
	return captions
}
