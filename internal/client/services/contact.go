package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/classifieds/internal/client/client"
	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/client/session"
)

// ContactService submits the contact form on behalf of the logged-in user.
type ContactService interface {
	Submit(ctx context.Context, subject, message string) error
}

type contactService struct {
	api     client.ContactAPI
	session *session.Store
}

func NewContactService(api client.ContactAPI, s *session.Store) ContactService {
	return &contactService{api: api, session: s}
}

func (c *contactService) Submit(ctx context.Context, subject, message string) error {
	u, ok := c.session.User()
	if !ok {
		return ErrNotAuthenticated
	}

	msg := models.ContactMessage{
		Subject: strings.TrimSpace(subject),
		Message: strings.TrimSpace(message),
		Email:   u.Email,
	}
	if err := check(msg); err != nil {
		return err
	}
	return c.api.SubmitContact(ctx, msg)
}
