package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Provider earnings and transactions",
}

var billingSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the provider's billing summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}
		providerID := a.sess.ProviderID()
		if providerID == "" {
			return fmt.Errorf("current user has no provider profile")
		}

		period, _ := cmd.Flags().GetString("period")
		summary, err := a.client.GetBillingSummary(cmd.Context(), providerID, period)
		if err != nil {
			return err
		}

		fmt.Printf("Period %s to %s\n", summary.PeriodStart.Format("2006-01-02"), summary.PeriodEnd.Format("2006-01-02"))
		fmt.Printf("  Orders: %d\n", summary.OrderCount)
		fmt.Printf("  Gross:  %.2f\n", summary.GrossAmount)
		fmt.Printf("  Fees:   %.2f\n", summary.Fees)
		fmt.Printf("  Net:    %.2f\n", summary.NetAmount)
		return nil
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List transactions, optionally filtered by order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}

		orderID, _ := cmd.Flags().GetString("order-id")
		txns, err := a.client.ListTransactions(cmd.Context(), orderID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tORDER\tAMOUNT\tSTATUS\tCREATED")
		for _, t := range txns {
			fmt.Fprintf(w, "%s\t%s\t%.2f %s\t%s\t%s\n",
				t.ID, t.OrderID, t.Amount, t.Currency, t.Status, t.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()
		return nil
	},
}

var payoutMethodsCmd = &cobra.Command{
	Use:   "payout-methods",
	Short: "List the provider's payout methods",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}
		providerID := a.sess.ProviderID()
		if providerID == "" {
			return fmt.Errorf("current user has no provider profile")
		}

		methods, err := a.client.ListPayoutMethods(cmd.Context(), providerID)
		if err != nil {
			return err
		}
		for _, m := range methods {
			marker := " "
			if m.Default {
				marker = "*"
			}
			fmt.Printf("%s %s (%s, %s)\n", marker, m.Label, m.Provider, m.Masked)
		}
		return nil
	},
}

func init() {
	billingSummaryCmd.Flags().String("period", "month", "Summary period (week, month, year)")
	transactionsCmd.Flags().String("order-id", "", "Only transactions for this order")

	billingCmd.AddCommand(billingSummaryCmd)
	billingCmd.AddCommand(transactionsCmd)
	billingCmd.AddCommand(payoutMethodsCmd)
	rootCmd.AddCommand(billingCmd)
}
