package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// Contact sends a message through the contact form as the logged-in user.
func (a *App) Contact(ctx context.Context, _ []string) error {
	subject, err := getSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	message, err := getMultiline(a.reader, fmt.Sprintf("Message (up to %d characters)", models.MaxContactMessage), a.out)
	if err != nil {
		return err
	}

	if err := a.contactService.Submit(ctx, subject, message); err != nil {
		return err
	}
	printlnFn("Message sent. Thank you!")
	return nil
}
