package llm

const (
	DefaultOrganization = "IVC Church"
	CaptionMaxTokens    = 200
	CaptionTemperature  = 0.8
)

// Fields are interpolated verbatim, without escaping.
const captionPrompt = `
You are a social media expert for churches.
Generate 2 short, %s social media captions for %s's upcoming conference.
Theme: %s
Audience: %s
Date: %s
Location: %s
Speakers: %s
Include excitement.
Number each caption.
`
