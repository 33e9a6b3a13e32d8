// Package services implements the client-side use cases: account
// registration and authentication against the shared user registry, and
// loading/appending the encrypted journal, both on top of a versioned
// remote store.
package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/cryptox"
	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/LorenzoDOrtona/life-logger/internal/session"
	"gopkg.in/yaml.v3"
)

// registryAttempts bounds optimistic-concurrency retries on the registry.
const registryAttempts = 3

// userRecord is one row of the shared registry document. The password is
// stored only as a bcrypt hash; the key salt is per user, random, and
// public by design (the derived key is secret, the salt is not).
type userRecord struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	KeySalt      string `yaml:"key_salt"`
}

func decodeRegistry(data []byte) ([]userRecord, error) {
	var users []userRecord
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	return users, nil
}

func encodeRegistry(users []userRecord) ([]byte, error) {
	data, err := yaml.Marshal(users)
	if err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return data, nil
}

// AuthService manages user accounts in a plaintext registry object shared
// by all users of one remote store.
type AuthService struct {
	store        remote.Store
	registryPath string
	inviteCode   string
	log          logging.Logger
}

func NewAuthService(store remote.Store, registryPath, inviteCode string, log logging.Logger) *AuthService {
	return &AuthService{
		store:        store,
		registryPath: registryPath,
		inviteCode:   inviteCode,
		log:          log.With("component", "auth"),
	}
}

// Register creates a new account. The invite code gates sign-up, the
// confirmation guards against typos, and usernames are unique. The
// registry write uses the same read-modify-conditional-write loop as
// journal appends, so two concurrent registrations never drop each other.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation, inviteCode string) error {
	if inviteCode != s.inviteCode || s.inviteCode == "" {
		return common.ErrInvalidInvite
	}
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrBadCredentials)
	}
	if password != confirmation {
		return common.ErrPasswordMismatch
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	salt := common.GenerateRandByteArray(cryptox.SaltSize)

	record := userRecord{
		Username:     username,
		PasswordHash: hash,
		KeySalt:      base64.StdEncoding.EncodeToString(salt),
	}
	message := fmt.Sprintf("Add user %s", username)

	var lastErr error
	for attempt := 0; attempt < registryAttempts; attempt++ {
		users, version, err := s.loadRegistry(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if u.Username == username {
				return common.ErrUserExists
			}
		}

		data, err := encodeRegistry(append(users, record))
		if err != nil {
			return err
		}

		if version == "" {
			_, err = s.store.Create(ctx, s.registryPath, data, message)
		} else {
			_, err = s.store.Update(ctx, s.registryPath, data, version, message)
		}
		if err == nil {
			s.log.Info(ctx, "user registered", "username", username)
			return nil
		}
		if !isRegistryRace(err) {
			return err
		}
		lastErr = err
		s.log.Warn(ctx, "registry changed underneath, retrying", "attempt", attempt+1)
	}

	return fmt.Errorf("registration lost the registry race: %w", lastErr)
}

// Authenticate checks the password against the registry and, on success,
// derives the journal encryption key from the password and the stored
// per-user salt. The returned session owns the key until wiped.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*session.Session, error) {
	users, _, err := s.loadRegistry(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Username != username {
			continue
		}
		if !cryptox.VerifyPassword([]byte(password), u.PasswordHash) {
			return nil, common.ErrBadCredentials
		}
		salt, err := base64.StdEncoding.DecodeString(u.KeySalt)
		if err != nil {
			return nil, fmt.Errorf("corrupt key salt for %s: %w", username, err)
		}
		key := cryptox.DeriveKey([]byte(password), salt)
		return session.New(username, key), nil
	}

	return nil, common.ErrUserNotFound
}

// loadRegistry fetches and decodes the registry. An absent document is an
// empty registry with no version token.
func (s *AuthService) loadRegistry(ctx context.Context) ([]userRecord, string, error) {
	obj, err := s.store.Get(ctx, s.registryPath)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	users, err := decodeRegistry(obj.Data)
	if err != nil {
		return nil, "", err
	}
	return users, obj.Version, nil
}

func isRegistryRace(err error) bool {
	return errors.Is(err, common.ErrVersionConflict) || errors.Is(err, common.ErrAlreadyExists)
}
