// Package emailgenerator synthesizes mailbox credentials: domain picks,
// collision-resistant local parts and throwaway passwords.
package emailgenerator

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz1234567890"

const localPartSuffixLength = 6
const passwordLength = 16

// EmailGenerator produces the random parts of a mailbox. The zero value is
// not usable; use New or NewSeeded.
type EmailGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New returns a generator seeded from the current time.
func New() *EmailGenerator {
	return NewSeeded(time.Now().UTC().UnixNano())
}

// NewSeeded returns a generator with a fixed seed so tests can assert
// deterministic picks.
func NewSeeded(seed int64) *EmailGenerator {
	return &EmailGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// PickDomain selects one domain uniformly at random. Uniform selection spreads
// load so no single domain gets throttled by the provider. It is the callers
// responsibility to ensure domains is non-empty.
func (eg *EmailGenerator) PickDomain(domains []string) string {
	eg.mu.Lock()
	defer eg.mu.Unlock()
	return domains[eg.rng.Intn(len(domains))]
}

// NewLocalPart returns a local part built from a millisecond timestamp and a
// random alphanumeric suffix. The timestamp makes collisions across time
// impossible and the suffix covers concurrent calls.
func (eg *EmailGenerator) NewLocalPart() string {
	return fmt.Sprintf("temp-%d-%s", eg.now().UnixMilli(), eg.randomString(localPartSuffixLength))
}

// NewPassword returns a 16 character alphanumeric password. It is write-once:
// used for account creation and login, then discarded.
func (eg *EmailGenerator) NewPassword() string {
	return eg.randomString(passwordLength)
}

func (eg *EmailGenerator) randomString(n int) string {
	eg.mu.Lock()
	defer eg.mu.Unlock()

	a := []byte(alphabet)
	s := make([]byte, n)
	for i := range s {
		s[i] = a[eg.rng.Intn(len(a))]
	}
	return string(s)
}
