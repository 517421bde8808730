package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

var (
	transitionAdmin string
	transferAdmin   string
	transferTo      string
	transferReason  string
	statsAdmin      string
	statsWords      int
)

// transitionCmd represents the transition command
var transitionCmd = &cobra.Command{
	Use:   "transition <claim-id> <estado>",
	Short: "Change a claim's status",
	Long: `Transition moves a claim to a new status on behalf of an admin,
records the change in the audit trail and notifies the creator and
every adherent. Valid statuses: Pendiente, En proceso, Resuelto,
Inválido. Resolved and invalid claims can be reopened.

Example:
  reclamos transition 3f2a... "En proceso" --admin mgarcia
  reclamos transition 3f2a... Resuelto --admin mgarcia`,
	Args: cobra.ExactArgs(2),
	RunE: runTransition,
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer <claim-id>",
	Short: "Transfer a claim to another department",
	Long: `Transfer re-routes a claim to another department, keeping a transfer
record with origin, destination and reason. Only the technical
secretariat may transfer.

Example:
  reclamos transfer 3f2a... --to maestranza --admin stecnico --reason "corresponde a mantenimiento"`,
	Args: cobra.ExactArgs(1),
	RunE: runTransfer,
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show claim statistics for an admin's departments",
	Long: `Stats prints the claim count and percentage per status over the
departments the admin can see, plus the most frequent words across
claim details.

Example:
  reclamos stats --admin stecnico
  reclamos stats --admin mgarcia --words 15`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(transitionCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(statsCmd)

	transitionCmd.Flags().StringVar(&transitionAdmin, "admin", "", "username of the acting admin (required)")
	_ = transitionCmd.MarkFlagRequired("admin")

	transferCmd.Flags().StringVar(&transferAdmin, "admin", "", "username of the acting admin (required)")
	transferCmd.Flags().StringVar(&transferTo, "to", "", "destination department (required)")
	transferCmd.Flags().StringVar(&transferReason, "reason", "", "reason for the transfer")
	_ = transferCmd.MarkFlagRequired("admin")
	_ = transferCmd.MarkFlagRequired("to")

	statsCmd.Flags().StringVar(&statsAdmin, "admin", "", "username of the admin (required)")
	statsCmd.Flags().IntVar(&statsWords, "words", 10, "how many frequent words to show")
	_ = statsCmd.MarkFlagRequired("admin")
}

func runTransition(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	admin, err := a.adminByUsername(transitionAdmin)
	if err != nil {
		return err
	}

	rec, err := a.claims.AdminTransition(admin, args[0], model.Status(args[1]))
	if err != nil {
		return err
	}
	fmt.Printf("✓ Estado cambiado: %s → %s\n", rec.From, rec.To)
	return nil
}

func runTransfer(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	admin, err := a.adminByUsername(transferAdmin)
	if err != nil {
		return err
	}
	dest, err := a.departmentByName(transferTo)
	if err != nil {
		return err
	}

	rec, err := a.claims.AdminTransfer(admin, args[0], dest.ID, transferReason)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Reclamo derivado a %s\n", dest.DisplayName)
	if rec.Reason != "" {
		fmt.Printf("  Motivo: %s\n", rec.Reason)
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	admin, err := a.adminByUsername(statsAdmin)
	if err != nil {
		return err
	}

	var scope []string
	if !admin.IsCentralSecretary() {
		deps, err := a.directory.ForAdmin(admin)
		if err != nil {
			return err
		}
		scope = make([]string, 0, len(deps))
		for _, d := range deps {
			scope = append(scope, d.ID)
		}
	}

	breakdown, err := a.reporter.StatusBreakdown(scope)
	if err != nil {
		return err
	}
	fmt.Println("Reclamos por estado:")
	total := 0
	for _, row := range breakdown {
		total += row.Count
		fmt.Printf("  %-12s %4d  (%.1f%%)\n", row.Status, row.Count, row.Percentage)
	}
	fmt.Printf("  %-12s %4d\n", "Total", total)

	words, err := a.reporter.WordFrequencies(scope, statsWords)
	if err != nil {
		return err
	}
	if len(words) > 0 {
		fmt.Println("\nPalabras más frecuentes:")
		for _, w := range words {
			fmt.Printf("  %-20s %d\n", w.Word, w.Count)
		}
	}
	return nil
}
