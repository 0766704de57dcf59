package main

import (
	"encoding/json"
	"io"
	"os"

	"conferencecaptions/internal/config"
	"conferencecaptions/internal/model"

	"github.com/spf13/cobra"
)

type eventFlags struct {
	configPath string
	theme      string
	audience   string
	date       string
	location   string
	speakers   string
	tone       string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to YAML config file (overrides CONFIG_FILE)")
	cmd.Flags().StringVar(&f.theme, "theme", "", "conference theme")
	cmd.Flags().StringVar(&f.audience, "audience", "", "target audience")
	cmd.Flags().StringVar(&f.date, "date", "", "event date")
	cmd.Flags().StringVar(&f.location, "location", "", "event location")
	cmd.Flags().StringVar(&f.speakers, "speakers", "", "speakers")
	cmd.Flags().StringVar(&f.tone, "tone", "", "caption tone")
}

func (f *eventFlags) request() model.CaptionRequest {
	return model.CaptionRequest{
		Theme:    f.theme,
		Audience: f.audience,
		Date:     f.date,
		Location: f.location,
		Speakers: f.speakers,
		Tone:     f.tone,
	}
}

func (f *eventFlags) loadConfig() (*config.Config, error) {
	if f.configPath != "" {
		os.Setenv("CONFIG_FILE", f.configPath)
	}
	return config.Load()
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
