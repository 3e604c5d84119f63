package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fiesta-storefront/internal/kvstore"
)

var featuredCmd = &cobra.Command{
	Use:   "featured [product-id]",
	Short: "Show or set the featured product highlighted on the home page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if args[0] == "-" {
				current.store.Clear(kvstore.KeyFeaturedProduct)
				fmt.Println("featured product cleared")
				return nil
			}
			current.store.Set(kvstore.KeyFeaturedProduct, []byte(args[0]))
			fmt.Println("featured product set")
			return nil
		}

		raw, ok := current.store.Get(kvstore.KeyFeaturedProduct)
		if !ok || len(raw) == 0 {
			fmt.Println("no featured product")
			return nil
		}
		p, err := current.catalog.ProductByID(cmd.Context(), string(raw))
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) %.2f\n", p.Title, p.Slug, float64(p.Price))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(featuredCmd)
}
