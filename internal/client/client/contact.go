package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// SubmitContact sends the contact form as multipart fields.
func (c *HTTPClient) SubmitContact(ctx context.Context, msg models.ContactMessage) error {
	p, err := multipartPayload([][2]string{
		{"subject", msg.Subject},
		{"message", msg.Message},
		{"email", msg.Email},
	}, nil)
	if err != nil {
		return err
	}
	_, err = c.call(ctx, http.MethodPost, "/api/contact", p, nil)
	return err
}
