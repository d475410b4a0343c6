package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sb25/REST-Web-Services-interaction/contexts"
	"github.com/sb25/REST-Web-Services-interaction/services/loader"
	"github.com/sb25/REST-Web-Services-interaction/utils"
)

func newSyncCommand(getContext func() *contexts.SyncContext) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Find or create every allele and product of an import file",
		Long: `Reads a YAML or JSON list of allele records, each with its products,
and makes sure every one of them exists in the repository. Alleles are
matched on allele symbol superscript, IKMC project id and MGI accession id,
products on their ES cell clone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := getContext()

			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}
			fileLoader := loader.NewFileLoader(file)

			if sc.Config.Sync.Every > 0 {
				return sc.Sync.Schedule(cmd.Context(), fileLoader, sc.Config.Sync.Every)
			}

			report, runErr := sc.Sync.Run(cmd.Context(), fileLoader)
			fmt.Fprintln(cmd.OutOrStdout(), utils.SummarizeReport(report))
			return runErr
		},
	}

	syncCmd.Flags().StringP("file", "f", "", "YAML or JSON file with the alleles to import")
	syncCmd.Flags().Bool("continue-on-error", false, "Skip failing records instead of aborting (TARGREP_CONTINUE_ON_ERROR)")
	syncCmd.Flags().Duration("every", 0, "Repeat the sync at this interval until interrupted (TARGREP_SYNC_EVERY)")
	_ = syncCmd.MarkFlagRequired("file")

	return syncCmd
}
