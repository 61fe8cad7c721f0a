package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
	"github.com/sobande/taskrr/internal/orders"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Provider-side order dashboard",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the provider's orders",
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

		all, _ := cmd.Flags().GetBool("all")
		var list []models.Order
		if all {
			list, err = fetchAllPages(cmd.Context(), a, providerID)
			if err != nil {
				return err
			}
		} else {
			page, _ := cmd.Flags().GetInt("page")
			result, err := a.client.ListProviderOrders(cmd.Context(), providerID, page, a.cfg.PageSize)
			if err != nil {
				return err
			}
			list = result.Orders
		}

		printOrders(list)
		return nil
	},
}

// fetchAllPages walks the provider's order pages with a progress bar, bounded
// by max_scan_pages.
func fetchAllPages(ctx context.Context, a *app, providerID string) ([]models.Order, error) {
	bar := progressbar.NewOptions(a.cfg.MaxScanPages,
		progressbar.OptionSetDescription("fetching orders"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var all []models.Order
	for page := 1; page <= a.cfg.MaxScanPages; page++ {
		result, err := a.client.ListProviderOrders(ctx, providerID, page, a.cfg.PageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Orders...)
		_ = bar.Add(1)
		if !result.HasMore {
			break
		}
	}
	_ = bar.Finish()
	return all, nil
}

func newOrderAction(use, short string, run func(ctx context.Context, svc *orders.Service, order *models.Order, note string) (*models.Order, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <order-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.ensureUser(cmd.Context()); err != nil {
				return err
			}

			order, err := a.client.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			note, _ := cmd.Flags().GetString("note")
			svc := orders.NewService(a.client, a.bus, a.log)
			updated, err := run(cmd.Context(), svc, order, note)
			if err != nil {
				return err
			}
			fmt.Printf("Order %s is now %s\n", updated.ID, updated.Status)
			return nil
		},
	}
	cmd.Flags().String("note", "", "Note to attach to the status change")
	return cmd
}

var ordersOpenCmd = &cobra.Command{
	Use:   "open <order-id>",
	Short: "Resolve an order the way a notification tap would",
	Long: `Replays the notification-tap flow for an order id: direct fetch,
then search, then a bounded page scan, falling back to a read-only preview
when the order belongs to another provider.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.ensureUser(cmd.Context()); err != nil {
			return err
		}

		providerID, _ := cmd.Flags().GetString("provider-id")
		n := a.notifs.Add(models.NotificationPayload{
			Title: "Order update",
			Data: map[string]any{
				"type":              "order",
				"orderId":           args[0],
				"serviceProviderId": providerID,
			},
		})
		a.notifs.MarkRead(n.ID)
		a.bus.Publish(notify.NotificationAction{NotificationID: n.ID, Action: "tap"})

		reconciler := orders.NewReconciler(a.client, a.sess.ProviderID, a.cfg.PageSize, a.cfg.MaxScanPages, a.log)
		printOutcome(reconciler.Open(cmd.Context(), *n))
		return nil
	},
}

func printOutcome(outcome orders.Outcome) {
	switch outcome.Kind {
	case orders.OutcomeDetail:
		printOrders([]models.Order{*outcome.Order})
	case orders.OutcomePreview:
		fmt.Printf("Order %s (read-only preview)\n", outcome.Preview.OrderID)
		if outcome.Preview.Summary != "" {
			fmt.Printf("  %s\n", outcome.Preview.Summary)
		}
		fmt.Printf("  %s\n", outcome.Preview.Message)
	case orders.OutcomeError:
		fmt.Printf("Could not open order: %s\n", outcome.Message)
	}
}

func printOrders(list []models.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCUSTOMER\tTOTAL\tCREATED")
	for _, o := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			o.ID, o.Status, o.CustomerName, o.Pricing.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func init() {
	ordersListCmd.Flags().Int("page", 1, "Page to fetch")
	ordersListCmd.Flags().Bool("all", false, "Fetch every page up to the scan limit")
	ordersOpenCmd.Flags().String("provider-id", "", "Provider id carried by the notification payload")

	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersOpenCmd)
	ordersCmd.AddCommand(newOrderAction("accept", "Accept a pending order", func(ctx context.Context, svc *orders.Service, order *models.Order, note string) (*models.Order, error) {
		return svc.Accept(ctx, order, notePayload(note))
	}))
	ordersCmd.AddCommand(newOrderAction("reject", "Reject a pending order", func(ctx context.Context, svc *orders.Service, order *models.Order, note string) (*models.Order, error) {
		return svc.Reject(ctx, order, notePayload(note))
	}))
	ordersCmd.AddCommand(newOrderAction("ready", "Mark an order ready", func(ctx context.Context, svc *orders.Service, order *models.Order, note string) (*models.Order, error) {
		return svc.MarkReady(ctx, order, notePayload(note))
	}))
	ordersCmd.AddCommand(newOrderAction("complete", "Complete an order", func(ctx context.Context, svc *orders.Service, order *models.Order, note string) (*models.Order, error) {
		return svc.Complete(ctx, order, notePayload(note))
	}))
	rootCmd.AddCommand(ordersCmd)
}

func notePayload(note string) map[string]any {
	if note == "" {
		return nil
	}
	return map[string]any{"note": note}
}
