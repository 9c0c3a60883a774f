package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/brewtap/pkg/config"
	"github.com/arthur-debert/brewtap/pkg/releaser"
	"github.com/arthur-debert/brewtap/pkg/style"
)

// newReleaseCmd builds the release command, the main entry point of the
// tool. Flags override the corresponding config values so one-off runs
// don't need environment setup.
func newReleaseCmd() *cobra.Command {
	var (
		skipPublish  bool
		updateReadme bool
	)

	cmd := &cobra.Command{
		Use:     "release",
		Short:   MsgReleaseShort,
		Long:    MsgReleaseLong,
		Example: MsgReleaseExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), style.RenderError(err))
				return err
			}

			if cmd.Flags().Changed("skip-publish") {
				cfg.SkipPublish = skipPublish
			}
			if cmd.Flags().Changed("update-readme-table") {
				cfg.UpdateReadmeTable = updateReadme
			}

			result, err := releaser.New(cfg).Run(cmd.Context())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), style.RenderError(err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipPublish, "skip-publish", false, "Render and write the formula locally without committing to the tap")
	cmd.Flags().BoolVar(&updateReadme, "update-readme-table", false, "Also update the tap README's project table")

	return cmd
}
