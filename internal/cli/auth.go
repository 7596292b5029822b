package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"finzen/internal/api"
)

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" || *name == "" {
		return fmt.Errorf("register: -name and -email are required")
	}
	pw, err := a.ensurePassword(*password)
	if err != nil {
		return err
	}

	user, err := a.client.Auth.Register(ctx, api.RegisterForm{
		Name:     *name,
		Email:    *email,
		Password: pw,
	})
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "registration failed, try again later"))
	}

	fmt.Fprintf(a.out, "Registered %s. Check %s for the verification email, then run `finzen login`.\n",
		user.Name, user.Email)
	return nil
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("login: -email is required")
	}
	pw, err := a.ensurePassword(*password)
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, *email, pw)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "login failed, check your credentials"))
	}

	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", user.Name, user.Email)
	if !user.OnboardingDone {
		fmt.Fprintln(a.out, "Onboarding is pending; finish it in the web app to unlock all features.")
	}
	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err, "logout failed"))
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) runWhoami(ctx context.Context) error {
	user, err := a.requireUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(a.out, "locale: %s  currency: %s  verified: %t\n",
		user.Locale, user.Currency, user.EmailVerified)
	return nil
}

// ensurePassword returns the flag value or prompts for one on stdin.
func (a *App) ensurePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(a.out, "Password: ")
	reader := bufio.NewReader(a.in)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return pw, nil
}
