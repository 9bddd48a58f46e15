package session

import "errors"

// ErrNotFound is returned by Store.Get when id has no session — a
// 404-class client fault.
var ErrNotFound = errors.New("session_not_found")

// Store is the session persistence contract, grounded on the teacher's
// pkg/session.Store interface: create/get/save, with either an in-memory
// or a remote key-value backend underneath.
type Store interface {
	Create(firstModuleID *string, lang string) (*Session, error)
	Get(id string) (*Session, error)
	Save(s *Session) error
}
