package tempmail

import "fmt"

// ProvisioningError wraps whatever made a provisioning transaction fail. The
// sequence is never retried as a whole - the caller decides whether to try
// again.
type ProvisioningError struct {
	Err error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("tempmail: provisioning failed: %v", e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// ConfigurationError means provisioning cannot proceed at all: the provider
// returned no domains and no fallback list is configured.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tempmail: configuration error: %s", e.Reason)
}
