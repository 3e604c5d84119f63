package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fiesta-storefront/internal/domain"
)

var cartQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the persistent cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := current.cart.Items()
		if len(items) == 0 {
			fmt.Println("cart is empty")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "QTY\tTITLE\tPRICE\tSUBTOTAL")
		var total float64
		for _, it := range items {
			subtotal := float64(it.Product.Price) * float64(it.Quantity)
			total += subtotal
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\n", it.Quantity, it.Product.Title, float64(it.Product.Price), subtotal)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("%d items, total %.2f\n", current.cart.TotalItems(), total)
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <slug>",
	Short: "Add a product to the cart by slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := current.catalog.ProductBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		current.cart.AddItem(domain.SnapshotOf(*p), cartQuantity)
		fmt.Printf("added %dx %s\n", cartQuantity, p.Title)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:     "rm <product-id>",
	Aliases: []string{"remove"},
	Short:   "Remove a product from the cart",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current.cart.RemoveItem(args[0])
		fmt.Println("removed")
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		current.cart.UpdateQuantity(args[0], q)
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		current.cart.Clear()
		fmt.Println("cart cleared")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().IntVarP(&cartQuantity, "quantity", "q", 1, "quantity to add")
	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartRemoveCmd, cartSetCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
