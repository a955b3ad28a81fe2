package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tempmailr"

// UpstreamRequests counts individual request attempts against the provider.
var UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "upstream_requests",
}, []string{"endpoint", "outcome"})

// UpstreamRetries counts retry attempts per endpoint.
var UpstreamRetries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "upstream_retries",
}, []string{"endpoint"})

// MailboxesProvisioned counts completed provisioning transactions.
var MailboxesProvisioned = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "mailboxes_provisioned",
}, []string{"outcome"})

// DomainFallbacks counts resolutions that had to use the static fallback list.
var DomainFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "domain_fallbacks",
})
