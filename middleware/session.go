package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/PhanMy23520965/LaLuneBakery/repositories"
	"github.com/PhanMy23520965/LaLuneBakery/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "lalune_session"
	sessionContextKey = "session"
)

type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type SessionOptions struct {
	Secret      string
	TTL         time.Duration
	RememberTTL time.Duration
	Secure      bool
}

// SessionManager binds the lalune_session cookie to a server-side session.
// The cookie carries only a signed session id.
type SessionManager struct {
	store  SessionStore
	opts   SessionOptions
	now    func() time.Time
	logger *zap.Logger
}

func NewSessionManager(store SessionStore, opts SessionOptions, logger *zap.Logger) *SessionManager {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.RememberTTL <= 0 {
		opts.RememberTTL = 30 * 24 * time.Hour
	}
	return &SessionManager{store: store, opts: opts, now: time.Now, logger: logger}
}

// Sessions loads the session named by the cookie, or starts an anonymous one.
// New sessions are only persisted once something is saved into them.
func (m *SessionManager) Sessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := m.load(c)
		c.Set(sessionContextKey, session)
		if session.User != nil {
			c.Set("user_id", session.User.ID)
			c.Set("user_role", session.User.Role)
		}
		c.Next()
	}
}

func (m *SessionManager) load(c *gin.Context) *models.Session {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return m.newSession()
	}

	id, err := utils.ParseSessionID(m.opts.Secret, raw)
	if err != nil {
		return m.newSession()
	}

	session, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			m.logger.Warn("Failed to load session", zap.Error(err))
		}
		return m.newSession()
	}
	return session
}

func (m *SessionManager) newSession() *models.Session {
	return &models.Session{ID: uuid.NewString()}
}

// CurrentSession returns the request's session. Outside the Sessions
// middleware it returns an empty anonymous session.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	s := &models.Session{ID: uuid.NewString()}
	c.Set(sessionContextKey, s)
	return s
}

func (m *SessionManager) lifetime(s *models.Session) time.Duration {
	if s.Remember {
		return m.opts.RememberTTL
	}
	return m.opts.TTL
}

// Save persists the session and refreshes its cookie. Remembered sessions get
// a persistent cookie; the rest get a browser-session cookie.
func (m *SessionManager) Save(c *gin.Context, s *models.Session) error {
	lifetime := m.lifetime(s)
	s.ExpiresAt = m.now().Add(lifetime)

	if err := m.store.Save(c.Request.Context(), s, lifetime); err != nil {
		return err
	}

	token, err := utils.SignSessionID(m.opts.Secret, s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}

	maxAge := 0
	if s.Remember {
		maxAge = int(lifetime.Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", m.opts.Secure, true)
	c.Set(sessionContextKey, s)
	return nil
}

// Login replaces the current session with a fresh authenticated one so a
// pre-login session id can never be reused. A pending flash moves across.
func (m *SessionManager) Login(c *gin.Context, account *models.Account, remember bool) error {
	old := CurrentSession(c)
	if err := m.store.Delete(c.Request.Context(), old.ID); err != nil {
		m.logger.Warn("Failed to drop pre-login session", zap.Error(err))
	}

	s := &models.Session{
		ID:       uuid.NewString(),
		User:     models.NewSessionUser(account),
		Remember: remember,
		Flash:    old.Flash,
	}
	if err := m.Save(c, s); err != nil {
		return err
	}
	c.Set("user_id", s.User.ID)
	c.Set("user_role", s.User.Role)
	return nil
}

// Logout destroys the session and expires the cookie. It is safe to call
// without a session.
func (m *SessionManager) Logout(c *gin.Context) error {
	s := CurrentSession(c)
	err := m.store.Delete(c.Request.Context(), s.ID)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.opts.Secure, true)
	c.Set(sessionContextKey, m.newSession())
	return err
}

// Refresh rewrites the account snapshot of an authenticated session.
func (m *SessionManager) Refresh(c *gin.Context, account *models.Account) error {
	s := CurrentSession(c)
	if s.User == nil {
		return nil
	}
	s.User = models.NewSessionUser(account)
	return m.Save(c, s)
}

func (m *SessionManager) SetFlash(c *gin.Context, kind, message string) {
	s := CurrentSession(c)
	s.Flash = &models.Flash{Kind: kind, Message: message}
	if err := m.Save(c, s); err != nil {
		m.logger.Warn("Failed to store flash message", zap.Error(err))
	}
}

// TakeFlash returns the pending flash message once.
func (m *SessionManager) TakeFlash(c *gin.Context) *models.Flash {
	s := CurrentSession(c)
	f := s.TakeFlash()
	if f == nil {
		return nil
	}
	if err := m.Save(c, s); err != nil {
		m.logger.Warn("Failed to clear flash message", zap.Error(err))
	}
	return f
}
