// Package session holds the per-login credentials of an authenticated user.
//
// A Session is an explicit value passed into every store call; secret
// material never lives in package-level state.
package session

import "github.com/LorenzoDOrtona/life-logger/internal/common"

// Session carries the identity and derived encryption key of one login.
// The key is computed once at authentication time and is valid until the
// session is wiped; it is never persisted or transmitted.
type Session struct {
	Username string
	Key      []byte
}

// New builds a session for username with the given derived key.
func New(username string, key []byte) *Session {
	return &Session{Username: username, Key: key}
}

// Wipe zeroes the derived key. The session is unusable afterwards.
func (s *Session) Wipe() {
	common.WipeByteArray(s.Key)
	s.Key = nil
}
