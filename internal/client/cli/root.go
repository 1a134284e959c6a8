package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classifieds/internal/logging"
)

func (a *App) getStatus() string {
	if !a.session.Hydrated() {
		return ""
	}
	u, ok := a.session.User()
	if !ok {
		return "(guest)"
	}
	if u.IsAdmin {
		return fmt.Sprintf("(%s admin)", u.Email)
	}
	return fmt.Sprintf("(%s)", u.Email)
}

// Root restores the saved session and then runs the REPL until the user
// leaves.
func (a *App) Root(ctx context.Context) {
	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore", logging.Err(err))
	}

	printlnFn("Welcome to the classifieds CLI (type 'help' for commands)")
	if u, ok := a.session.User(); ok {
		printlnFn("Signed in as", u.Email)
		if a.isAdmin() {
			report(a.Panel(ctx, nil))
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
