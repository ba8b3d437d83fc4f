package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"yamdb/database"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

var newUser dto.CreateUserDTO

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Long: `Create a user directly in the database. Use --role admin to bootstrap the
first administrator; the account then signs in through /auth/signup like anyone else.`,
	Example: "  yamdbctl create-user --username root --email root@example.com --role admin",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close(db)

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		users := service.NewUserService(repository.NewUserRepository(db))
		return createUser(ctx, cmd.OutOrStdout(), users, newUser)
	},
}

// createUser runs the same validation and uniqueness checks as POST /users.
func createUser(ctx context.Context, out io.Writer, users service.UserService, req dto.CreateUserDTO) error {
	user, err := users.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintln(out, "✓ User created successfully!")
	fmt.Fprintf(out, "Username: %s\n", user.Username)
	fmt.Fprintf(out, "Email: %s\n", user.Email)
	fmt.Fprintf(out, "Role: %s\n", user.Role)
	return nil
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "username (required)")
	f.StringVar(&newUser.Email, "email", "", "email address (required)")
	f.StringVar(&newUser.Role, "role", "user", "user|moderator|admin")
	f.StringVar(&newUser.FirstName, "first-name", "", "first name")
	f.StringVar(&newUser.LastName, "last-name", "", "last name")
	f.StringVar(&newUser.Bio, "bio", "", "short biography")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("email")
}
