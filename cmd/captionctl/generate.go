package main

import (
	"fmt"

	"conferencecaptions/internal/app"
	"conferencecaptions/internal/handler"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var flags eventFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Return cached captions for an event or generate and store new ones",
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

			result, err := a.Service.Generate(cmd.Context(), flags.request())
			if err != nil {
				return fmt.Errorf("AI error: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), handler.NewCaptionsResponse(result))
		},
	}

	flags.register(cmd)
	return cmd
}
