package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sb25/REST-Web-Services-interaction/contexts"
)

func newProductsCommand(getContext func() *contexts.SyncContext) *cobra.Command {
	productsCmd := &cobra.Command{
		Use:   "products",
		Short: "Look up ES cell products",
	}

	productsCmd.AddCommand(&cobra.Command{
		Use:   "find <escell-clone>",
		Short: "Find a product by its ES cell clone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := getContext().Products.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("no product for %s", args[0])
			}
			return printJson(cmd.OutOrStdout(), product)
		},
	})

	return productsCmd
}
