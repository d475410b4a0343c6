package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sb25/REST-Web-Services-interaction/contexts"
)

func newAllelesCommand(getContext func() *contexts.SyncContext) *cobra.Command {
	allelesCmd := &cobra.Command{
		Use:   "alleles",
		Short: "Browse and remove alleles",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of alleles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := cmd.Flags().GetInt("page")
			if err != nil {
				return err
			}
			alleles, err := getContext().Alleles.List(cmd.Context(), page)
			if err != nil {
				return err
			}
			return printJson(cmd.OutOrStdout(), alleles)
		},
	}
	listCmd.Flags().Int("page", 1, "Page to fetch")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single allele",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}
			allele, err := getContext().Alleles.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJson(cmd.OutOrStdout(), allele)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a single allele",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0])
			if err != nil {
				return err
			}
			if err := getContext().Alleles.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted allele %d\n", id)
			return nil
		},
	}

	allelesCmd.AddCommand(listCmd, getCmd, deleteCmd)
	return allelesCmd
}

func parseId(text string) (int, error) {
	id, err := strconv.Atoi(text)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", text)
	}
	return id, nil
}
