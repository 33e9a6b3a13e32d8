package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/cryptox"
	"github.com/LorenzoDOrtona/life-logger/internal/journal"
	"github.com/LorenzoDOrtona/life-logger/internal/logging"
	"github.com/LorenzoDOrtona/life-logger/internal/remote"
	"github.com/LorenzoDOrtona/life-logger/internal/session"
	"github.com/google/uuid"
)

// appendAttempts bounds how many times an append is replayed after losing
// a version race before the conflict is surfaced to the caller.
const appendAttempts = 3

// State tracks the lifecycle of a journal handle.
type State int

const (
	// StateUninitialized means Load has not run yet.
	StateUninitialized State = iota
	// StateLoaded means the cached log matches a known remote version.
	StateLoaded
	// StateFailed means the last operation failed and the cached view is
	// not trustworthy. Only a fresh Load leaves this state.
	StateFailed
)

// ErrReloadRequired is returned by Append after a failure left the handle
// in StateFailed.
var ErrReloadRequired = errors.New("journal is in a failed state, reload first")

// JournalService is the encrypted journal of one authenticated user. It
// caches the last loaded log together with the remote version token it was
// read at, and appends with optimistic concurrency: encode, encrypt,
// conditional put, and on a version conflict reload and replay, a bounded
// number of times.
type JournalService struct {
	store remote.Store
	sess  *session.Session
	path  string
	log   logging.Logger

	mu      sync.Mutex
	state   State
	version string // "" while the remote document does not exist yet
	entries journal.Log
}

func NewJournalService(store remote.Store, journalDir string, sess *session.Session, log logging.Logger) *JournalService {
	return &JournalService{
		store: store,
		sess:  sess,
		path:  path.Join(journalDir, sess.Username+".yaml.enc"),
		log:   log.With("component", "journal", "username", sess.Username),
	}
}

// Load fetches, decrypts and decodes the journal, replacing the cached
// snapshot. An absent remote document is a valid empty journal; a document
// that exists but does not decrypt under the session key is an
// authentication failure, never an empty journal.
func (s *JournalService) Load(ctx context.Context) (journal.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, version, err := s.fetch(ctx)
	if err != nil {
		if errors.Is(err, common.ErrAuthFailure) {
			s.state = StateFailed
		}
		return nil, err
	}

	s.entries = entries
	s.version = version
	s.state = StateLoaded
	s.log.Debug(ctx, "journal loaded", "entries", len(entries), "version", version)
	return s.snapshot(), nil
}

// Append adds one entry to the journal and commits it remotely. Entry ID
// and timestamp are filled in when absent. On success the cached snapshot
// advances to the committed state; on any terminal failure the handle goes
// to StateFailed and must be reloaded.
func (s *JournalService) Append(ctx context.Context, entry journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateFailed:
		return ErrReloadRequired
	case StateUninitialized:
		entries, version, err := s.fetch(ctx)
		if err != nil {
			return err
		}
		s.entries = entries
		s.version = version
		s.state = StateLoaded
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(journal.TimeLayout)
	}

	var lastErr error
	for attempt := 0; attempt < appendAttempts; attempt++ {
		version, err := s.commit(ctx, entry)
		if err == nil {
			s.entries = append(s.entries, entry)
			s.version = version
			s.log.Info(ctx, "append committed", "activity_type", entry.ActivityType, "version", version)
			return nil
		}
		if !isJournalRace(err) {
			s.state = StateFailed
			return err
		}

		// Lost the race: reload the remote state and replay on top of it.
		lastErr = err
		s.log.Warn(ctx, "journal changed underneath, replaying append", "attempt", attempt+1)
		entries, version, err := s.fetch(ctx)
		if err != nil {
			s.state = StateFailed
			return err
		}
		s.entries = entries
		s.version = version
	}

	s.state = StateFailed
	return fmt.Errorf("append lost the version race %d times: %w", appendAttempts, lastErr)
}

// Entries returns the cached snapshot. It is only meaningful in StateLoaded.
func (s *JournalService) Entries() journal.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// State reports the handle state.
func (s *JournalService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Version reports the remote version token of the cached snapshot, "" when
// the remote document does not exist yet.
func (s *JournalService) Version() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// commit encodes, encrypts and writes the cached log plus entry, creating
// the document on first write and doing a conditional update afterwards.
func (s *JournalService) commit(ctx context.Context, entry journal.Entry) (string, error) {
	data, err := journal.Log(append(s.snapshot(), entry)).Encode()
	if err != nil {
		return "", err
	}
	blob, err := cryptox.Encrypt(data, s.sess.Key)
	if err != nil {
		return "", err
	}

	if s.version == "" {
		return s.store.Create(ctx, s.path, blob, "Initial commit")
	}
	return s.store.Update(ctx, s.path, blob, s.version, fmt.Sprintf("Log: %s", entry.ActivityType))
}

// fetch reads the remote document and turns it into (entries, version).
// Absent document: empty log, empty version, nil error.
func (s *JournalService) fetch(ctx context.Context) (journal.Log, string, error) {
	obj, err := s.store.Get(ctx, s.path)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return journal.Log{}, "", nil
		}
		return nil, "", err
	}

	plaintext, err := cryptox.Decrypt(obj.Data, s.sess.Key)
	if err != nil {
		return nil, "", err
	}
	entries, err := journal.DecodeLog(plaintext)
	if err != nil {
		return nil, "", err
	}
	return entries, obj.Version, nil
}

func (s *JournalService) snapshot() journal.Log {
	out := make(journal.Log, len(s.entries))
	copy(out, s.entries)
	return out
}

func isJournalRace(err error) bool {
	return errors.Is(err, common.ErrVersionConflict) || errors.Is(err, common.ErrAlreadyExists)
}
