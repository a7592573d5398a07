// Package session holds short-lived editable row lists for the HTTP API.
//
// A session stores the rows a client is working on together with the screen
// they are judged against. Analyses are never stored: every read recomputes
// the report from the current rows. Two backends are provided:
//   - [MemoryStore]: in-process, for a single server or tests
//   - [RedisStore]: shared between server instances, expiry handled by Redis
//
// # Usage
//
//	store := session.NewMemoryStore()
//	sess := session.New(std, rows, session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err = store.Update(ctx, sess.ID, func(s *session.Session) error {
//	    rows, err := seating.Remove(s.Rows, rowID)
//	    s.Rows = rows
//	    return err
//	})
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sightline/pkg/errors"
	"github.com/matzehuels/sightline/pkg/sightline"
	"github.com/matzehuels/sightline/pkg/venue"
)

// DefaultTTL is how long a session lives after creation.
const DefaultTTL = 2 * time.Hour

// Session is one client's working row list.
type Session struct {
	ID        uuid.UUID              `json:"id"`
	Standard  string                 `json:"standard"`
	Screen    sightline.ScreenConfig `json:"screen"`
	Rows      []sightline.SeatingRow `json:"rows"`
	CreatedAt time.Time              `json:"createdAt"`
	ExpiresAt time.Time              `json:"expiresAt"`
}

// New creates a session for rows judged against std. A ttl of zero selects
// [DefaultTTL].
func New(std venue.Standard, rows []sightline.SeatingRow, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if rows == nil {
		rows = []sightline.SeatingRow{}
	}
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Standard:  std.Name,
		Screen:    std.Screen,
		Rows:      slices.Clone(rows),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired reports whether the session has passed its expiry time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TTL returns the time left before expiry, or zero once expired.
func (s *Session) TTL() time.Duration {
	return max(time.Until(s.ExpiresAt), 0)
}

func (s *Session) clone() *Session {
	c := *s
	c.Rows = slices.Clone(s.Rows)
	return &c
}

// Store persists sessions until they expire.
//
// Get and Update return a SESSION_NOT_FOUND error for missing and expired
// sessions alike.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Set(ctx context.Context, sess *Session) error

	// Update applies fn to the stored session and saves the result unless
	// fn returns an error. Concurrent updates to one session are serialized.
	Update(ctx context.Context, id uuid.UUID, fn func(*Session) error) (*Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Cleanup drops expired sessions and returns how many were removed.
	Cleanup(ctx context.Context) (int, error)
}

// ParseID parses a session id from a URL or request body.
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", s)
	}
	return id, nil
}

func notFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
}
