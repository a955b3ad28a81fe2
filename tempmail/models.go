package tempmail

import (
	"context"

	"github.com/suaib92/tempmailr/mailtm"
)

// Session is the address and bearer token handed to the browser after
// provisioning. The server keeps no copy; the token is the only credential
// needed for subsequent reads and its lifetime belongs to the provider.
type Session struct {
	Address string `json:"address"`
	Token   string `json:"token"`
}

// MailClient lists the provider operations the server depends on.
type MailClient interface {
	FetchDomains(ctx context.Context) ([]string, error)
	CreateAccount(ctx context.Context, address, password string) error
	Login(ctx context.Context, address, password string) (string, error)
	ListMessages(ctx context.Context, token string) ([]mailtm.MessageSummary, error)
	GetMessage(ctx context.Context, token, id string) (mailtm.MessageDetail, error)
}

var _ MailClient = (*mailtm.Client)(nil)
