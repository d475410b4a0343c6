package commands

import (
	"github.com/spf13/cobra"

	"github.com/sb25/REST-Web-Services-interaction/contexts"
)

func newPipelinesCommand(getContext func() *contexts.SyncContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pipelines",
		Short: "List the pipelines known to the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := getContext()
			if err := sc.Pipelines.Load(cmd.Context()); err != nil {
				return err
			}
			return printJson(cmd.OutOrStdout(), sc.Pipelines.All())
		},
	}
}
