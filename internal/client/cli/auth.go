package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/pwpolicy"
	"github.com/dmitrijs2005/classifieds/internal/client/services"
)

// getSimpleText, getPassword, getMultiline and getLines are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getLines      = GetLines
)

// now is the clock used for expiry display and export names.
var now = time.Now

// ask reads one line for field, or takes it from args when given there.
func (a *App) ask(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

// newPassword prompts for a password and its confirmation and prints the
// strength meter for the first entry.
func (a *App) newPassword(prompt string) (string, string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", "", err
	}
	r := pwpolicy.Evaluate(pw)
	a.printf("Strength: %s (%d/%d)\n", pwpolicy.Label(r.Score), r.Score, pwpolicy.MaxScore)

	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return "", "", err
	}
	return pw, confirm, nil
}

// Register prompts for the account details and creates the account.
func (a *App) Register(ctx context.Context, _ []string) error {
	var req models.RegisterRequest
	var err error

	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.EmailConfirm, err = getSimpleText(a.reader, "Confirm email", a.out); err != nil {
		return err
	}
	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Surname, err = getSimpleText(a.reader, "Enter surname", a.out); err != nil {
		return err
	}
	if req.Password, req.PasswordConfirm, err = a.newPassword("Enter password"); err != nil {
		return err
	}

	if err := a.authService.Register(ctx, req); err != nil {
		return err
	}
	printlnFn("Registration successful. You can now log in.")
	return nil
}

// Login authenticates and switches the command set. Administrators land on
// the admin panel, which is loaded right away.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.ask(args, 0, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	dest, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	u, _ := a.session.User()
	name := u.FullName()
	if name == "" {
		name = u.Email
	}
	printlnFn("Welcome,", name)

	if dest == services.DestinationAdmin {
		printlnFn("Administrator access granted. Type 'help' for admin commands.")
		return a.Panel(ctx, nil)
	}
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current user and, for JWT sessions, when the token
// expires.
func (a *App) Whoami(_ context.Context, _ []string) error {
	u, ok := a.session.User()
	if !ok {
		printlnFn("Not logged in")
		return nil
	}

	a.printf("ID:      %s\n", u.ID)
	a.printf("Email:   %s\n", u.Email)
	if name := u.FullName(); name != "" {
		a.printf("Name:    %s\n", name)
	}
	role := "user"
	if u.IsAdmin {
		role = "administrator"
	}
	a.printf("Role:    %s\n", role)
	if u.IsBlocked {
		a.printf("Status:  blocked\n")
	}

	if exp, ok := a.session.TokenExpiry(); ok {
		left := exp.Sub(now()).Truncate(time.Second)
		if left > 0 {
			a.printf("Session: expires %s (in %s)\n", exp.Local().Format(time.RFC1123), left)
		} else {
			a.printf("Session: expired %s, log in again\n", exp.Local().Format(time.RFC1123))
		}
	}
	return nil
}

// Strength shows the advisory score and the policy checklist for a password
// without sending it anywhere.
func (a *App) Strength(_ context.Context, _ []string) error {
	pw, err := getPassword(a.out, "Password to check")
	if err != nil {
		return err
	}

	r := pwpolicy.Evaluate(pw)
	c := pwpolicy.Check(pw)

	a.printf("Strength: %s (%d/%d)\n", pwpolicy.Label(r.Score), r.Score, pwpolicy.MaxScore)
	a.printf("  %s at least %d characters\n", mark(c.MinLength), pwpolicy.MinLength)
	a.printf("  %s a lower-case letter\n", mark(c.Lower))
	a.printf("  %s an upper-case letter\n", mark(c.Upper))
	a.printf("  %s a digit\n", mark(c.Digit))
	a.printf("  %s a symbol (%s)\n", mark(c.Symbol), pwpolicy.Symbols)
	if r.Compliant {
		printlnFn("The password satisfies the policy.")
	} else {
		printlnFn("The password does not satisfy the policy.")
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "[x]"
	}
	return "[ ]"
}

func (a *App) ForgotPassword(ctx context.Context, args []string) error {
	email, err := a.ask(args, 0, "Enter the email of your account")
	if err != nil {
		return err
	}
	if err := a.authService.ForgotPassword(ctx, email); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("If an account exists for %s, a reset link is on its way.", email))
	return nil
}

// ResetPassword consumes the token from a reset link.
func (a *App) ResetPassword(ctx context.Context, args []string) error {
	token, err := a.ask(args, 0, "Enter the reset token")
	if err != nil {
		return err
	}
	req := models.ResetPasswordRequest{Token: token}
	if req.NewPassword, req.NewPasswordConfirm, err = a.newPassword("Enter new password"); err != nil {
		return err
	}

	if err := a.authService.ResetPassword(ctx, req); err != nil {
		return err
	}
	printlnFn("Password has been reset. You can now log in.")
	return nil
}

func (a *App) ChangePassword(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		return services.ErrNotAuthenticated
	}

	var req models.ChangePasswordRequest
	var err error
	if req.CurrentPassword, err = getPassword(a.out, "Current password"); err != nil {
		return err
	}
	if req.NewPassword, req.NewPasswordConfirm, err = a.newPassword("New password"); err != nil {
		return err
	}

	if err := a.authService.ChangePassword(ctx, req); err != nil {
		return err
	}
	printlnFn("Password changed")
	return nil
}
