package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fiesta-storefront/internal/domain"
)

var productsQuery domain.ProductQuery

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := current.catalog.Products(cmd.Context(), productsQuery)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tTITLE\tPRICE\tSTATUS\tTYPE")
		for _, p := range page.Data {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", p.Slug, p.Title, float64(p.Price), p.Status, p.SaleType)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("page %d/%d, %d products\n", page.Meta.Page, page.Meta.TotalPages, page.Meta.Total)
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show one product by slug",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := current.catalog.ProductBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", p.Title, p.Slug)
		fmt.Printf("  id:       %s\n", p.ID)
		fmt.Printf("  price:    %.2f\n", float64(p.Price))
		fmt.Printf("  status:   %s\n", p.Status)
		fmt.Printf("  saleType: %s\n", p.SaleType)
		if p.Category != nil {
			fmt.Printf("  category: %s\n", p.Category.Name)
		}
		if p.Description != "" {
			fmt.Printf("  %s\n", p.Description)
		}
		for _, img := range p.Images {
			fmt.Printf("  image: %s\n", img.URL)
		}

		link, err := current.catalog.ContactLink(cmd.Context(), p.ID, "whatsapp", "")
		if err == nil {
			fmt.Printf("  %s: %s\n", link.Label, link.URL)
		}
		return nil
	},
}

func init() {
	productsListCmd.Flags().IntVar(&productsQuery.Page, "page", 0, "page number")
	productsListCmd.Flags().IntVar(&productsQuery.Limit, "limit", 0, "page size")
	productsListCmd.Flags().StringVar(&productsQuery.Search, "search", "", "search in title and description")
	productsListCmd.Flags().StringVar(&productsQuery.Status, "status", "", "filter by status")
	productsListCmd.Flags().StringVar(&productsQuery.CategoryID, "category", "", "filter by category id")
	productsListCmd.Flags().StringVar(&productsQuery.SortBy, "sort", "", "sort field (title, price, createdAt, status)")
	productsListCmd.Flags().StringVar(&productsQuery.SortOrder, "order", "", "sort order (asc, desc)")

	productsCmd.AddCommand(productsListCmd, productsShowCmd)
	rootCmd.AddCommand(productsCmd)
}
