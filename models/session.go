package models

import "time"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// SessionUser is the account snapshot kept in a session.
type SessionUser struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	LoginKey string `json:"login_key"`
	Role     string `json:"role"`
}

type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Session struct {
	ID        string       `json:"id"`
	User      *SessionUser `json:"user,omitempty"`
	Flash     *Flash       `json:"flash,omitempty"`
	Remember  bool         `json:"remember"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

// TakeFlash returns the pending flash message and clears it.
func (s *Session) TakeFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}

func NewSessionUser(a *Account) *SessionUser {
	return &SessionUser{
		ID:       a.ID,
		FullName: a.FullName,
		LoginKey: a.LoginKey,
		Role:     a.Role,
	}
}
