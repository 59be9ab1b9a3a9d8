package cli

import (
	"fmt"

	"github.com/jordanpayne/reveille/internal/keyring"
)

type LoginCmd struct {
	Token string `arg:"" optional:"" help:"API token to store in the system keyring."`
	Clear bool   `help:"Remove the stored token instead."`
}

func (c *LoginCmd) Run(_ *Context) error {
	if c.Clear {
		if err := keyring.DeleteToken(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}
		fmt.Println("Token removed.")
		return nil
	}

	if c.Token == "" {
		return fmt.Errorf("no token given (pass one, or use --clear)")
	}
	if err := keyring.SetToken(c.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	fmt.Println("Token stored in system keyring.")
	return nil
}
