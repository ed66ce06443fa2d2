package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"storefront-client/models"
)

func cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local shopping cart",
	}
	cmd.AddCommand(cartShowCmd(), cartAddCmd(), cartRemoveCmd(), cartSetCmd(), cartClearCmd())
	return cmd
}

func cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			printCart(a.cart.Current())
			return nil
		},
	}
}

func cartAddCmd() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			product, err := a.products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printCart(a.cart.Add(cmd.Context(), *product, quantity))
			return nil
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	return cmd
}

func cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			printCart(a.cart.Remove(cmd.Context(), id))
			return nil
		},
	}
}

func cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the exact quantity of a line item (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			printCart(a.cart.SetQuantity(cmd.Context(), id, quantity))
			return nil
		},
	}
}

func cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			printCart(a.cart.Clear(cmd.Context()))
			return nil
		},
	}
}

func printCart(c models.Cart) {
	if len(c.Items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, item := range c.Items {
		fmt.Printf("%4d  %-30s  %3d x %8.2f = %8.2f\n",
			item.ProductID, item.Name, item.Quantity, item.Price,
			item.Price*float64(item.Quantity))
	}
	fmt.Printf("total: %d items, %.2f\n", c.TotalItems, c.TotalPrice)
}
