package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			products, err := a.products.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Printf("%4d  %-30s  %-12s  %8.2f  stock=%d\n",
					p.ID, p.Name, p.ProductCode, p.Price, p.Quantity)
			}
			return nil
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			categories, err := a.categories.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range categories {
				fmt.Printf("%4d  %-24s  %s\n", c.ID, c.Name, c.Description)
			}
			return nil
		},
	}
}
