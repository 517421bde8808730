package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	subscribeUser     string
	notificationsUser string
	notificationsRead string
	notificationsAll  bool
)

// subscribeCmd represents the subscribe command
var subscribeCmd = &cobra.Command{
	Use:   "subscribe <claim-id>",
	Short: "Adhere to someone else's claim",
	Long: `Subscribe adheres the user to an existing claim, so they receive a
notification on every future status change. Creators are already
notified about their own claims and cannot subscribe to them.

Example:
  reclamos subscribe 3f2a... --user jperez`,
	Args: cobra.ExactArgs(1),
	RunE: runSubscribe,
}

// unsubscribeCmd represents the unsubscribe command
var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <claim-id>",
	Short: "Remove an adherence to a claim",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnsubscribe,
}

// notificationsCmd represents the notifications command
var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List and mark unread notifications",
	Long: `Notifications lists the user's unread notifications, newest first.
With --mark-read one notification is marked read; with --all every
unread notification is.

Example:
  reclamos notifications --user jperez
  reclamos notifications --user jperez --mark-read 8c1d...
  reclamos notifications --user jperez --all`,
	RunE: runNotifications,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(unsubscribeCmd)
	rootCmd.AddCommand(notificationsCmd)

	subscribeCmd.Flags().StringVar(&subscribeUser, "user", "", "username (required)")
	_ = subscribeCmd.MarkFlagRequired("user")
	unsubscribeCmd.Flags().StringVar(&subscribeUser, "user", "", "username (required)")
	_ = unsubscribeCmd.MarkFlagRequired("user")

	notificationsCmd.Flags().StringVar(&notificationsUser, "user", "", "username (required)")
	notificationsCmd.Flags().StringVar(&notificationsRead, "mark-read", "", "mark one notification read by id")
	notificationsCmd.Flags().BoolVar(&notificationsAll, "all", false, "mark every unread notification read")
	_ = notificationsCmd.MarkFlagRequired("user")
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.userByUsername(subscribeUser)
	if err != nil {
		return err
	}
	if err := a.claims.Subscribe(args[0], u.ID); err != nil {
		return err
	}
	fmt.Println("✓ Adherido al reclamo")
	return nil
}

func runUnsubscribe(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.userByUsername(subscribeUser)
	if err != nil {
		return err
	}
	if err := a.claims.Unsubscribe(args[0], u.ID); err != nil {
		return err
	}
	fmt.Println("✓ Adhesión eliminada")
	return nil
}

func runNotifications(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.userByUsername(notificationsUser)
	if err != nil {
		return err
	}

	if notificationsRead != "" {
		if err := a.claims.MarkRead(notificationsRead, u.ID); err != nil {
			return err
		}
		fmt.Println("✓ Notificación marcada como leída")
		return nil
	}
	if notificationsAll {
		n, err := a.claims.MarkAllRead(u.ID)
		if err != nil {
			return err
		}
		fmt.Printf("✓ %d notificaciones marcadas como leídas\n", n)
		return nil
	}

	unread, err := a.claims.UnreadNotifications(u.ID)
	if err != nil {
		return err
	}
	if len(unread) == 0 {
		fmt.Println("Sin notificaciones nuevas.")
		return nil
	}
	for _, n := range unread {
		fmt.Printf("%s  %s  cambio %s\n", n.ID, formatTime(n.CreatedAt), n.StatusChangeID)
	}
	return nil
}
