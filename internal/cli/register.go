package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
	"github.com/SolBenven/proyecto-final-prog-av/internal/users"
)

var (
	regFirstName string
	regLastName  string
	regEmail     string
	regUsername  string
	regPassword  string
	regClaustro  string
	regRole      string
	regDept      string
)

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user",
	Long: `Register creates a user account. End users carry a claustro
(estudiante, docente, PAyS); admins carry a role (jefe_departamento,
secretario_tecnico) and department heads also a department.

Example:
  reclamos register --name Juan --lastname Pérez --email jp@uni.edu \
    --username jperez --password secreta1 --claustro estudiante
  reclamos register --name Marta --lastname García --email mg@uni.edu \
    --username mgarcia --password secreta1 --role jefe_departamento \
    --department maestranza`,
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&regFirstName, "name", "", "first name (required)")
	registerCmd.Flags().StringVar(&regLastName, "lastname", "", "last name (required)")
	registerCmd.Flags().StringVar(&regEmail, "email", "", "email (required)")
	registerCmd.Flags().StringVar(&regUsername, "username", "", "username (required)")
	registerCmd.Flags().StringVar(&regPassword, "password", "", "password (required)")
	registerCmd.Flags().StringVar(&regClaustro, "claustro", "", "end-user claustro: estudiante, docente, PAyS")
	registerCmd.Flags().StringVar(&regRole, "role", "", "admin role: jefe_departamento, secretario_tecnico")
	registerCmd.Flags().StringVar(&regDept, "department", "", "department for department heads")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("lastname")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("username")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	req := users.RegisterRequest{
		FirstName: regFirstName,
		LastName:  regLastName,
		Email:     regEmail,
		Username:  regUsername,
		Password:  regPassword,
		Claustro:  model.Claustro(regClaustro),
		AdminRole: model.AdminRole(regRole),
	}
	if regDept != "" {
		dep, err := a.departmentByName(regDept)
		if err != nil {
			return err
		}
		req.DepartmentID = dep.ID
	}

	var u *model.User
	if regRole != "" {
		u, err = a.users.RegisterAdmin(req)
	} else {
		u, err = a.users.RegisterFinalUser(req)
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ Usuario registrado: %s (%s)\n", u.Username, u.FullName())
	return nil
}
