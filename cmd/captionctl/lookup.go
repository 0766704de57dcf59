package main

import (
	"errors"

	"conferencecaptions/internal/app"
	"conferencecaptions/internal/handler"

	"github.com/spf13/cobra"
)

var errNotFound = errors.New("no stored captions for this event")

func newLookupCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show the stored caption record for an event without calling the LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			app.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			caption, err := a.Store.FindOne(cmd.Context(), flags.request().Key())
			if err != nil {
				return err
			}
			if caption == nil {
				return errNotFound
			}

			return printJSON(cmd.OutOrStdout(), handler.NewCaptionRecordResponse(caption))
		},
	}

	flags.register(cmd)
	return cmd
}
