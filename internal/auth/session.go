package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
)

// signInEndpoint is the Identity Toolkit credential exchange. Email and
// password are the only credential type the site supports.
const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// User is the authenticated identity, or nil when signed out.
type User struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Session wraps the identity provider behind a boolean gate: callers
// only ever need to know whether someone is signed in, never why a
// sign-in failed. Session changes are pushed to watchers.
type Session struct {
	// Endpoint and HTTP are overridable for tests.
	Endpoint string
	HTTP     *http.Client

	apiKey   string
	verifier *fbauth.Client

	mu          sync.RWMutex
	initialized bool
	user        *User
	idToken     string
	nextWatch   int
	watchers    map[int]chan *User
}

// NewSession builds a session backed by the given web API key. verifier
// may be nil; when present, exchanged tokens are verified through the
// Admin SDK before the session is considered live.
func NewSession(apiKey string, verifier *fbauth.Client) *Session {
	return &Session{
		Endpoint: signInEndpoint,
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		apiKey:   apiKey,
		verifier: verifier,
		watchers: map[int]chan *User{},
	}
}

// Initialize reports whether a session backend is configured. Calling it
// twice has one effect.
func (s *Session) Initialize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return s.apiKey != ""
	}
	s.initialized = true
	if s.apiKey == "" {
		log.Printf("[warn] operation=auth.initialize message=identity provider not configured, sign-in disabled")
	}
	return s.apiKey != ""
}

// Login exchanges the credentials for a session. Every failure mode
// (bad credentials, network error, missing backend) collapses to false;
// the cause is only logged.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	if !s.Initialize() {
		return false
	}

	user, token, err := s.exchange(ctx, email, password)
	if err != nil {
		log.Printf("[error] operation=auth.login error=%v", err)
		return false
	}

	if s.verifier != nil {
		if _, err := s.verifier.VerifyIDToken(ctx, token); err != nil {
			log.Printf("[error] operation=auth.login error=token verification: %v", err)
			return false
		}
	}

	s.mu.Lock()
	s.user = user
	s.idToken = token
	s.mu.Unlock()

	s.notify(user)
	return true
}

// Logout signs out, best-effort.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	changed := s.user != nil
	s.user = nil
	s.idToken = ""
	s.mu.Unlock()

	if changed {
		s.notify(nil)
	}
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Current returns the signed-in user, or nil.
func (s *Session) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IDToken returns the current session token, empty when signed out.
func (s *Session) IDToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idToken
}

// Watch subscribes to session changes. Each change pushes the new user
// (nil on sign-out). The returned func cancels the subscription.
func (s *Session) Watch() (<-chan *User, func()) {
	ch := make(chan *User, 8)

	s.mu.Lock()
	id := s.nextWatch
	s.nextWatch++
	s.watchers[id] = ch
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		if c, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(c)
		}
		s.mu.Unlock()
	}
}

func (s *Session) notify(u *User) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers {
		select {
		case ch <- u:
		default:
			// Slow watcher, drop rather than block the session.
		}
	}
}

func (s *Session) exchange(ctx context.Context, email, password string) (*User, string, error) {
	body, _ := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("sign-in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, "", fmt.Errorf("sign-in rejected (status %d): %s", resp.StatusCode, raw)
	}

	var out struct {
		IDToken string `json:"idToken"`
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("sign-in decode: %w", err)
	}
	if out.IDToken == "" {
		return nil, "", fmt.Errorf("sign-in response missing token")
	}

	return &User{UID: out.LocalID, Email: out.Email}, out.IDToken, nil
}
