package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final-prog-av/internal/claims"
	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/store"
)

var (
	createUser   string
	createDetail string
	createDept   string
	createImage  string
	createNoSim  bool

	listUser string
	listDept string

	similarDept string
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "File a new claim",
	Long: `Create files a new claim as the given user. The claim text is
classified to pick the owning department; unclassifiable claims go to
the technical secretariat. Before filing, similar open claims are
shown so the user can adhere to one instead.

Example:
  reclamos create --user jperez --detail "No funciona el proyector del aula 12"
  reclamos create --user jperez --detail "..." --image foto.jpg
  reclamos create --user jperez --detail "..." --department maestranza`,
	RunE: runCreate,
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List claims",
	Long: `List shows claims, newest first. With --user it lists the claims
that user filed; with --department it lists a department's claims.

Example:
  reclamos list --user jperez
  reclamos list --department maestranza`,
	RunE: runList,
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <claim-id>",
	Short: "Show one claim with its audit trail and transfers",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// similarCmd represents the similar command
var similarCmd = &cobra.Command{
	Use:   "similar <text>",
	Short: "Find open claims similar to a text",
	Long: `Similar ranks currently pending claims by textual similarity to the
given text, so duplicates can be found before filing.

Example:
  reclamos similar "se rompió el aire acondicionado"
  reclamos similar "..." --department maestranza`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(similarCmd)

	createCmd.Flags().StringVar(&createUser, "user", "", "username of the filing user (required)")
	createCmd.Flags().StringVar(&createDetail, "detail", "", "claim text (required)")
	createCmd.Flags().StringVar(&createDept, "department", "", "route to this department instead of classifying")
	createCmd.Flags().StringVar(&createImage, "image", "", "attach an image file")
	createCmd.Flags().BoolVar(&createNoSim, "no-similar", false, "skip the similar-claims check")
	_ = createCmd.MarkFlagRequired("user")
	_ = createCmd.MarkFlagRequired("detail")

	listCmd.Flags().StringVar(&listUser, "user", "", "list claims filed by this username")
	listCmd.Flags().StringVar(&listDept, "department", "", "list claims of this department")

	similarCmd.Flags().StringVar(&similarDept, "department", "", "restrict to one department")
}

func runCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.userByUsername(createUser)
	if err != nil {
		return err
	}

	if !createNoSim {
		matches, err := a.claims.FindSimilar(createDetail, "")
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			fmt.Fprintf(os.Stderr, "Reclamos similares abiertos:\n")
			for _, m := range matches {
				fmt.Fprintf(os.Stderr, "  %.0f%%  %s  %s\n", m.Score*100, m.Claim.ID, truncate(m.Claim.Detail, 60))
			}
			fmt.Fprintln(os.Stderr)
		}
	}

	req := claims.CreateRequest{CreatorID: u.ID, Detail: createDetail}
	if createDept != "" {
		dep, err := a.departmentByName(createDept)
		if err != nil {
			return err
		}
		req.DepartmentID = dep.ID
	}
	if createImage != "" {
		f, err := os.Open(createImage)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		name, err := a.images.Save(createImage, f)
		_ = f.Close()
		if err != nil {
			return err
		}
		req.ImagePath = name
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.Classifier.Timeout)*time.Second)
	defer cancel()

	c, err := a.claims.CreateClaim(ctx, req)
	if err != nil {
		return err
	}

	dep, err := a.directory.ByID(c.DepartmentID)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Reclamo creado: %s\n", c.ID)
	fmt.Printf("  Departamento: %s\n", dep.DisplayName)
	fmt.Printf("  Estado: %s\n", c.Status)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var list []claimRow
	switch {
	case listUser != "":
		u, err := a.userByUsername(listUser)
		if err != nil {
			return err
		}
		cs, err := a.claims.ClaimsByCreator(u.ID)
		if err != nil {
			return err
		}
		list = toRows(cs)
	case listDept != "":
		dep, err := a.departmentByName(listDept)
		if err != nil {
			return err
		}
		cs, err := a.store.Claims(store.ClaimFilter{DepartmentIDs: []string{dep.ID}})
		if err != nil {
			return err
		}
		list = toRows(cs)
	default:
		return fmt.Errorf("use --user or --department")
	}

	if len(list) == 0 {
		fmt.Println("Sin reclamos.")
		return nil
	}
	for _, row := range list {
		fmt.Printf("%s  %-10s  %s  %s\n", row.id, row.status, row.created, truncate(row.detail, 60))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c, err := a.claims.Claim(args[0])
	if err != nil {
		return err
	}
	dep, err := a.directory.ByID(c.DepartmentID)
	if err != nil {
		return err
	}

	fmt.Printf("Reclamo %s\n", c.ID)
	fmt.Printf("  Detalle:      %s\n", c.Detail)
	fmt.Printf("  Estado:       %s\n", c.Status)
	fmt.Printf("  Departamento: %s\n", dep.DisplayName)
	fmt.Printf("  Creado:       %s\n", formatTime(c.CreatedAt))
	if c.ImagePath != "" {
		fmt.Printf("  Imagen:       %s\n", a.images.Path(c.ImagePath))
	}

	history, err := a.claims.History(c.ID)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		fmt.Println("\nHistorial de estados:")
		for _, h := range history {
			fmt.Printf("  %s  %s → %s\n", formatTime(h.ChangedAt), h.From, h.To)
		}
	}

	transfers, err := a.claims.TransferHistory(c.ID)
	if err != nil {
		return err
	}
	if len(transfers) > 0 {
		fmt.Println("\nDerivaciones:")
		for _, t := range transfers {
			from, to := t.FromDepartmentID, t.ToDepartmentID
			if d, err := a.directory.ByID(from); err == nil {
				from = d.DisplayName
			}
			if d, err := a.directory.ByID(to); err == nil {
				to = d.DisplayName
			}
			fmt.Printf("  %s  %s → %s", formatTime(t.TransferredAt), from, to)
			if t.Reason != "" {
				fmt.Printf("  (%s)", t.Reason)
			}
			fmt.Println()
		}
	}
	return nil
}

func runSimilar(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	departmentID := ""
	if similarDept != "" {
		dep, err := a.departmentByName(similarDept)
		if err != nil {
			return err
		}
		departmentID = dep.ID
	}

	matches, err := a.claims.FindSimilar(args[0], departmentID)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("Sin reclamos similares.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%.0f%%  %s  %s\n", m.Score*100, m.Claim.ID, truncate(m.Claim.Detail, 60))
	}
	return nil
}

type claimRow struct {
	id      string
	status  string
	created string
	detail  string
}

func toRows(cs []*model.Claim) []claimRow {
	rows := make([]claimRow, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, claimRow{
			id:      c.ID,
			status:  string(c.Status),
			created: formatTime(c.CreatedAt),
			detail:  c.Detail,
		})
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
