package tempmail

import (
	"context"

	"github.com/pkg/errors"

	"github.com/suaib92/tempmailr/emailgenerator"
	"github.com/suaib92/tempmailr/metrics"
)

// Provisioner orchestrates one complete provisioning transaction: domain
// selection, credential generation, account creation and login.
type Provisioner struct {
	client   MailClient
	resolver *DomainResolver
	gen      *emailgenerator.EmailGenerator
}

// NewProvisioner wires a provisioner from its collaborators.
func NewProvisioner(client MailClient, resolver *DomainResolver, gen *emailgenerator.EmailGenerator) *Provisioner {
	return &Provisioner{client: client, resolver: resolver, gen: gen}
}

// Provision creates a fresh mailbox and returns its session. Credentials are
// generated per call and discarded once the token is issued. Any step's
// failure aborts the sequence; only the client's per-call retry applies, the
// transaction itself is never re-run here to avoid unbounded account creation
// upstream.
func (p *Provisioner) Provision(ctx context.Context) (Session, error) {
	domains, err := p.resolver.Resolve(ctx)
	if err != nil {
		return Session{}, p.fail(errors.Wrap(err, "resolve domains"))
	}

	domain := p.gen.PickDomain(domains)
	address := p.gen.NewLocalPart() + "@" + domain
	password := p.gen.NewPassword()

	if err := p.client.CreateAccount(ctx, address, password); err != nil {
		return Session{}, p.fail(errors.Wrap(err, "create account"))
	}

	token, err := p.client.Login(ctx, address, password)
	if err != nil {
		return Session{}, p.fail(errors.Wrap(err, "login"))
	}

	metrics.MailboxesProvisioned.WithLabelValues("ok").Inc()

	return Session{Address: address, Token: token}, nil
}

func (p *Provisioner) fail(err error) error {
	metrics.MailboxesProvisioned.WithLabelValues("error").Inc()
	return &ProvisioningError{Err: err}
}
