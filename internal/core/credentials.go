package core

import "sync"

// Placeholder values some hosting environments inject before a real key
// has been chosen. They count as "no credential configured".
var placeholderKeys = map[string]struct{}{
	"YOUR_API_KEY":        {},
	"PLACEHOLDER_API_KEY": {},
}

// CredentialStore holds the Gemini API key for the running process.
// The key can be replaced at runtime through the credential endpoint;
// installation is optimistic, meaning a newly set key is treated as
// usable immediately without a confirmation call. A bad key surfaces
// on the next analysis as invalid_credential or stale_credential.
type CredentialStore struct {
	mu  sync.RWMutex
	key string
}

func NewCredentialStore(initial string) *CredentialStore {
	return &CredentialStore{key: initial}
}

// Resolve returns the current key and whether it is usable. Empty and
// placeholder values resolve as absent.
func (c *CredentialStore) Resolve() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.key == "" {
		return "", false
	}
	if _, ok := placeholderKeys[c.key]; ok {
		return "", false
	}
	return c.key, true
}

func (c *CredentialStore) Set(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
}

func (c *CredentialStore) Configured() bool {
	_, ok := c.Resolve()
	return ok
}
