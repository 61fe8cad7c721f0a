package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/orders"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <cart-file>",
	Short: "Submit a cart, one order per provider",
	Long: `Reads a cart JSON file and places the orders. Items from different
providers become separate orders; the command reports partial success when
only some of them go through.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read cart file: %w", err)
		}
		var cart models.Cart
		if err := json.Unmarshal(raw, &cart); err != nil {
			return fmt.Errorf("failed to parse cart file: %w", err)
		}

		svc := orders.NewService(a.client, a.bus, a.log)
		result, err := svc.Checkout(cmd.Context(), cart)
		if err != nil {
			return err
		}

		for _, order := range result.Created {
			fmt.Printf("Created order %s with %s (total %.2f)\n", order.ID, order.ServiceProviderID, order.Pricing.Total)
		}
		for _, failure := range result.Failures {
			fmt.Printf("Failed for provider %s: %v\n", failure.ServiceProviderID, failure.Err)
		}
		if !result.Success {
			return fmt.Errorf("%d of %d orders failed", len(result.Failures), len(result.Created)+len(result.Failures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}
