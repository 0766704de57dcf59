package main

import (
	"fmt"

	"conferencecaptions/pkg/llm"

	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent to the LLM for an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			req := flags.request()
			fmt.Fprintln(cmd.OutOrStdout(), llm.BuildCaptionPrompt(llm.CaptionInput{
				Organization: cfg.LLM.Organization,
				Theme:        req.Theme,
				Audience:     req.Audience,
				Date:         req.Date,
				Location:     req.Location,
				Speakers:     req.Speakers,
				Tone:         req.Tone,
			}))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
