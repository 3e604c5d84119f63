package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.catalog.Categories(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tNAME")
		for _, c := range items {
			fmt.Fprintf(w, "%s\t%s\n", c.Slug, c.Name)
		}
		return w.Flush()
	},
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List promotional packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := current.catalog.Bundles(cmd.Context())
		if err != nil {
			return err
		}
		for _, b := range items {
			fmt.Printf("%s (%s) %.2f\n", b.Title, b.Slug, float64(b.SpecialPrice))
			for _, it := range b.Items {
				if it.Product != nil {
					fmt.Printf("  %dx %s\n", it.Quantity, it.Product.Title)
				} else {
					fmt.Printf("  %dx %s\n", it.Quantity, it.ProductID)
				}
			}
		}
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the site settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.catalog.Settings(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("contact phone: %s\n", current.catalog.ContactPhone(cmd.Context()))
		if s.GoogleMapsEmbedURL != "" {
			fmt.Printf("maps embed:    %s\n", s.GoogleMapsEmbedURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd, packagesCmd, settingsCmd)
}
