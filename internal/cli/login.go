package cli

import (
	"context"
	"fmt"
)

// Login prompts for credentials and signs in against the remote service.
// On success the session is persisted, so the next run starts authenticated.
func (a *App) Login(ctx context.Context) error {
	username, err := a.GetSimpleText("Username")
	if err != nil {
		return err
	}
	password, err := a.GetPassword("Password")
	if err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

// Logout clears the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the current identity, if any.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.auth.Current()
	if !s.Authenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", s.User.Username, s.User.Email)
	return nil
}
