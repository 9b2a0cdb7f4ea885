package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/daytrack/daytrack/client/internal/api"
	xerrors "github.com/daytrack/daytrack/client/internal/errors"
	"github.com/daytrack/daytrack/client/internal/types"
)

// Status is the session's authentication state.
type Status string

const (
	// StatusUnauthenticated means no user is logged in and no token is held.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusRestoring means a stored token is being validated at startup.
	StatusRestoring Status = "restoring"
	// StatusAuthenticated means the session holds a valid token and a
	// resolved user.
	StatusAuthenticated Status = "authenticated"
)

// defaultRegisterDelay is the minimum visible duration of a registration.
// A fast server response would otherwise produce a jarring instant
// transition, so the flow always waits this long before the request.
const defaultRegisterDelay = 3000 * time.Millisecond

const (
	defaultLoginFailure    = "Login failed"
	defaultRegisterFailure = "Registration failed"
)

// AuthResult is the outcome of a login or registration attempt. Session
// operations never return errors; every failure collapses into a result
// with a human-readable message.
type AuthResult struct {
	Success bool
	Message string
}

// Session is the single source of truth for who is logged in. All token
// and identity mutation funnels through Restore, Login, Register and
// Logout. The accessors are safe for concurrent use; the four mutating
// operations must be serialized by the caller — Processing is the signal
// that a registration flow is still in flight.
type Session struct {
	mu         sync.Mutex
	status     Status
	user       *types.User
	token      string
	processing bool

	client *Client
	tokens TokenStore

	registerDelay time.Duration
	sleep         func(time.Duration)
}

// TokenStore is the durable home of the session token, one opaque string
// per device. Load returns "" when no token is stored; Clear is
// idempotent.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

func newSession(c *Client) *Session {
	return &Session{
		status:        StatusUnauthenticated,
		client:        c,
		registerDelay: defaultRegisterDelay,
		sleep:         time.Sleep,
	}
}

// Restore validates a previously stored token at process start. With no
// stored token it settles in StatusUnauthenticated without any network
// call. With one, it issues a single identity check; any failure discards
// the stored token and downgrades silently to StatusUnauthenticated.
// Restore never returns an error.
func (s *Session) Restore(ctx context.Context) {
	s.mu.Lock()
	s.status = StatusRestoring
	s.mu.Unlock()

	tok, err := s.tokens.Load()
	if err != nil {
		log.Warn().Err(err).Msg("session: token load failed")
		s.reset()
		return
	}
	if tok == "" {
		s.reset()
		return
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	user, err := api.Me(ctx, s.client.http, s.client.baseURL)
	observe("identity_check", err)
	if err != nil {
		log.Debug().Err(err).Msg("session: stored token rejected, clearing")
		if cerr := s.tokens.Clear(); cerr != nil {
			log.Warn().Err(cerr).Msg("session: token clear failed")
		}
		s.reset()
		return
	}

	s.mu.Lock()
	s.user = user
	s.status = StatusAuthenticated
	s.mu.Unlock()
	log.Debug().Str("user_id", user.ID).Msg("session: restored")
}

// Login exchanges credentials for a token. On failure the session state is
// left exactly as it was and the result carries the server's message, or a
// generic one when the server gave none.
func (s *Session) Login(ctx context.Context, name, password string) AuthResult {
	ar, err := api.Login(ctx, s.client.http, s.client.baseURL, types.Credentials{Name: name, Password: password})
	observe("login", err)
	if err != nil {
		log.Debug().Err(err).Str("name", name).Msg("session: login failed")
		return failureResult(err, defaultLoginFailure)
	}
	s.adopt(ar)
	log.Debug().Str("user_id", ar.User.ID).Msg("session: logged in")
	return AuthResult{Success: true}
}

// Register creates an account. The flow first raises the processing flag
// and waits the configured floor (3000ms unless WithRegisterDelay changed
// it) before the request goes out; the wait is not cancellable and fires
// exactly once per call. The flag is lowered on both outcomes.
func (s *Session) Register(ctx context.Context, name, password string) AuthResult {
	if s.registerDelay > 0 {
		s.setProcessing(true)
		defer s.setProcessing(false)
		s.sleep(s.registerDelay)
	}

	ar, err := api.Register(ctx, s.client.http, s.client.baseURL, types.Credentials{Name: name, Password: password})
	observe("register", err)
	if err != nil {
		log.Debug().Err(err).Str("name", name).Msg("session: registration failed")
		return failureResult(err, defaultRegisterFailure)
	}
	s.adopt(ar)
	log.Debug().Str("user_id", ar.User.ID).Msg("session: registered")
	return AuthResult{Success: true}
}

// Logout discards the stored token and resets the session. Synchronous,
// idempotent, no network call.
func (s *Session) Logout() {
	if err := s.tokens.Clear(); err != nil {
		log.Warn().Err(err).Msg("session: token clear failed")
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
}

// Status returns the current authentication state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// User returns the authenticated user, or nil unless the session is
// StatusAuthenticated.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Processing reports whether a registration flow is holding the minimum
// visible duration. While true, callers must not start another Register.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// adopt installs a successful auth response: persist the token, then flip
// the in-memory state to authenticated. A persist failure is logged but
// does not invalidate the live session.
func (s *Session) adopt(ar *types.AuthResponse) {
	if err := s.tokens.Save(ar.Token); err != nil {
		log.Warn().Err(err).Msg("session: token persist failed")
	}
	user := ar.User
	s.mu.Lock()
	s.token = ar.Token
	s.user = &user
	s.status = StatusAuthenticated
	s.mu.Unlock()
}

// reset returns the session to the unauthenticated terminal state.
func (s *Session) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
}

func (s *Session) setProcessing(v bool) {
	s.mu.Lock()
	s.processing = v
	s.mu.Unlock()
}

// currentToken is read by the transport on every request.
func (s *Session) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func failureResult(err error, fallback string) AuthResult {
	msg := xerrors.ServerMessage(err)
	if msg == "" {
		msg = fallback
	}
	return AuthResult{Success: false, Message: msg}
}
