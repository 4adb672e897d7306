package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"themeapp/internal/catalog"
)

type productsOptions struct {
	baseURL    string
	limit      int
	jsonOutput bool
}

func newProductsCmd(e env) *cobra.Command {
	opts := &productsOptions{}

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Fetch the featured products once and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(cmd, e, opts)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Catalog API base URL (defaults to the configured one)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Number of products to request")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runProducts(cmd *cobra.Command, e env, opts *productsOptions) error {
	cfg, err := e.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	clientCfg := catalog.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Limit:   cfg.Catalog.Limit,
		Timeout: cfg.Catalog.Timeout,
	}
	if opts.baseURL != "" {
		clientCfg.BaseURL = opts.baseURL
	}
	if opts.limit > 0 {
		clientCfg.Limit = opts.limit
	}

	client, err := catalog.NewClient(clientCfg)
	if err != nil {
		return err
	}

	state, _, err := catalog.NewFetcher(client).Load(cmd.Context(), catalog.Start(false))
	if err != nil {
		return err
	}

	switch st := state.(type) {
	case catalog.Failed:
		return errors.New(st.Message)
	case catalog.Loaded:
		if opts.jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st.Products)
		}
		if st.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No products available at the moment.")
			return nil
		}
		return renderProductTable(cmd, st.Products)
	default:
		return errors.New("catalog request did not complete")
	}
}

func renderProductTable(cmd *cobra.Command, products []catalog.Product) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTITLE\tPRICE\tRATING")
	for _, p := range products {
		fmt.Fprintf(writer, "%d\t%s\t$%s\t%.1f\n", p.ID, p.Title, p.Price.StringFixed(2), p.Rating.Rate)
	}
	return writer.Flush()
}
