package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/sobande/taskrr/internal/factories"
	"github.com/sobande/taskrr/internal/models"
	"github.com/sobande/taskrr/internal/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Inspect the notification pipeline",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Feed synthetic notifications through the classifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		seed, _ := cmd.Flags().GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		factory := factories.NotificationFactory{Rng: rand.New(rand.NewSource(seed))}

		for i := 0; i < count; i++ {
			payload := factory.Payload()
			a.bus.Publish(notify.NotificationDelivered{Payload: payload})
		}

		for _, n := range a.notifs.List() {
			fmt.Printf("[%s/%s] %s: %s\n", n.Type, n.Priority, n.Title, n.Message)
		}
		fmt.Printf("%d notifications, %d unread\n", a.notifs.Len(), a.notifs.UnreadCount())
		return nil
	},
}

var notifyClassifyCmd = &cobra.Command{
	Use:   "classify <title> [body]",
	Short: "Classify a one-off payload",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := ""
		if len(args) > 1 {
			body = args[1]
		}
		dataType, _ := cmd.Flags().GetString("data-type")
		orderID, _ := cmd.Flags().GetString("order-id")

		data := map[string]any{}
		if dataType != "" {
			data["type"] = dataType
		}
		if orderID != "" {
			data["orderId"] = orderID
		}

		verdict := notify.Classify(models.NotificationPayload{Title: args[0], Body: body, Data: data})
		fmt.Printf("type=%s priority=%s\n", verdict.Type, verdict.Priority)
		return nil
	},
}

func init() {
	notifyTestCmd.Flags().Int("count", 5, "How many synthetic notifications to generate")
	notifyTestCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
	notifyClassifyCmd.Flags().String("data-type", "", "Structured data.type value")
	notifyClassifyCmd.Flags().String("order-id", "", "Structured orderId value")

	notifyCmd.AddCommand(notifyTestCmd)
	notifyCmd.AddCommand(notifyClassifyCmd)
	rootCmd.AddCommand(notifyCmd)
}
