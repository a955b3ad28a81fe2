package tempmail

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/suaib92/tempmailr/metrics"
)

// domainRetryWait is the pause before the second domain fetch. A transient
// empty membership response looks different from a hard failure upstream, so
// one short pause covers both before giving up on live discovery.
const domainRetryWait = 500 * time.Millisecond

// DomainResolver produces a non-empty list of candidate mail domains even
// when the provider is degraded.
type DomainResolver struct {
	client    MailClient
	fallback  []string
	retryWait time.Duration
	clock     clockwork.Clock
}

// NewDomainResolver returns a resolver that consults client first and falls
// back to the given static list.
func NewDomainResolver(client MailClient, fallback []string, clock clockwork.Clock) *DomainResolver {
	return &DomainResolver{
		client:    client,
		fallback:  fallback,
		retryWait: domainRetryWait,
		clock:     clock,
	}
}

// Resolve returns candidate domains: the provider's live list if possible,
// one retried fetch otherwise, then the fallback list. It never returns an
// empty list with a nil error.
func (dr *DomainResolver) Resolve(ctx context.Context) ([]string, error) {
	domains, err := dr.client.FetchDomains(ctx)
	if err != nil || len(domains) == 0 {
		if err != nil {
			log.Printf("DomainResolver.Resolve: first domain fetch failed: %v", err)
		}

		timer := dr.clock.NewTimer(dr.retryWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.Chan():
		}

		domains, err = dr.client.FetchDomains(ctx)
	}

	if err == nil && len(domains) > 0 {
		return domains, nil
	}

	if err != nil {
		log.Printf("DomainResolver.Resolve: live domain discovery unavailable: %v", err)
	}

	if len(dr.fallback) > 0 {
		metrics.DomainFallbacks.Inc()
		return append([]string(nil), dr.fallback...), nil
	}

	return nil, &ConfigurationError{Reason: "provider returned no domains and fallback list is empty"}
}
