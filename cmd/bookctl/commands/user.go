package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookreview-backend/internal/domains/user"
	"bookreview-backend/pkg/container"
)

var (
	// User create flags
	username string
	email    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

// userCreateCmd creates a user through the same service as POST /signup
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account. The password is read from the terminal without echo,
or from the first line of stdin when stdin is not a terminal.

Examples:
  bookctl user create --username alice --email alice@example.com
  echo 's3cretpass' | bookctl user create --username bob --email bob@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(os.Stdin)
		if err != nil {
			return err
		}
		return runUserCreate(cmd.Context(), password)
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&username, "username", "", "Username (required)")
	userCreateCmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userCreateCmd)
}

func runUserCreate(ctx context.Context, password string) error {
	app, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer app.Cleanup()

	created, err := app.UserService.Register(ctx, user.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", created.Username, created.ID)
	return nil
}

// readPassword reads a password with masking when attached to a terminal
func readPassword(in *os.File) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return readPasswordLine(in)
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func readPasswordLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
