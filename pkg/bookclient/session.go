package bookclient

import "sync"

// Session holds the bearer token for one authenticated client.  It replaces
// an ambient "token in local storage" lookup with an explicit value: the
// caller creates one, hands it to the Client, and observes login (SetToken),
// logout (Clear) and server-forced teardown (Clear on any 401) through it.
type Session struct {
	mu    sync.Mutex
	token string
}

func NewSession() *Session { return &Session{} }

// SetToken installs the token minted by a successful login.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear discards the token.  Called on logout and whenever the server
// answers 401, forcing the next protected action back through login.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Authenticated reports whether a token is currently held.  It says nothing
// about expiry; an expired token surfaces as a 401 on first use.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}
