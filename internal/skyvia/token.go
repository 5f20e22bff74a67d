package skyvia

import (
	"os"
	"strings"
	"sync"

	"github.com/angelmondragon/skyvia-mcp/pkg/config"
	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

// TokenSource resolves and caches the Skyvia access token for the
// process lifetime. An explicit Override wins over the environment;
// whichever source resolves first is cached and reused. The mutex
// exists because an override may arrive while requests are already in
// flight; in the steady state every Resolve is a read.
type TokenSource struct {
	mu    sync.RWMutex
	token string
}

func NewTokenSource() *TokenSource {
	return &TokenSource{}
}

// Override sets the process-wide token explicitly, replacing any cached
// value. Last write wins.
func (s *TokenSource) Override(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New(errors.CodeConfiguration, "invalid API token provided")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Resolve returns the active token: the cached override if set,
// otherwise the SKYVIA_API_TOKEN environment variable (cached on first
// read). A request must never be issued without one, so absence is a
// Configuration error naming the variable to set.
func (s *TokenSource) Resolve() (string, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		return token, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" {
		return s.token, nil
	}
	if fromEnv := strings.TrimSpace(os.Getenv(config.EnvAPIToken)); fromEnv != "" {
		s.token = fromEnv
		return s.token, nil
	}

	return "", errors.New(errors.CodeConfiguration,
		"Skyvia API token not found: set the "+config.EnvAPIToken+
			" environment variable or pass --skyvia-api-token")
}
