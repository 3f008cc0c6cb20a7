package directory

import (
	"context"
	"sync"

	"github.com/wolfman30/medmatch/pkg/logging"
)

// Store holds the current Directory snapshot. Every write swaps in a whole new
// snapshot under the lock, so readers only ever see complete states.
type Store struct {
	mu      sync.RWMutex
	current Directory
	logger  *logging.Logger
}

// NewStore creates a store seeded with the given doctors.
func NewStore(logger *logging.Logger, doctors ...Doctor) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		current: New(doctors...),
		logger:  logger,
	}
}

// Snapshot returns the current directory.
func (s *Store) Snapshot() Directory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// List returns every doctor in registration order.
func (s *Store) List(ctx context.Context) []Doctor {
	return s.Snapshot().Doctors()
}

// Get returns one doctor by id.
func (s *Store) Get(ctx context.Context, id string) (Doctor, error) {
	doc, ok := s.Snapshot().Get(id)
	if !ok {
		return Doctor{}, ErrDoctorNotFound
	}
	return doc, nil
}

// Register adds doc to the directory. Ids come from a random generator, so a
// collision is not expected; it is still rejected rather than overwriting.
func (s *Store) Register(ctx context.Context, doc Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := s.current.Register(doc)
	if !added {
		s.logger.Warn("doctor id collision on register", "doctor_id", doc.ID)
		return ErrDuplicateID
	}
	s.current = next
	return nil
}

// UpdateProfile applies patch to the doctor with the given id and returns the
// updated profile. An unknown id leaves the directory unchanged and reports false.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (Doctor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, updated := s.current.UpdateProfile(id, patch)
	if !updated {
		return Doctor{}, false
	}
	s.current = next
	doc, _ := next.Get(id)
	return doc, true
}

// Modify derives a patch from the doctor's current profile and applies it in
// one step, so read-modify-write operations such as toggles cannot interleave.
func (s *Store) Modify(ctx context.Context, id string, fn func(Doctor) (ProfilePatch, error)) (Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.current.Get(id)
	if !ok {
		return Doctor{}, ErrDoctorNotFound
	}
	patch, err := fn(doc)
	if err != nil {
		return Doctor{}, err
	}
	next, _ := s.current.UpdateProfile(id, patch)
	s.current = next
	updated, _ := next.Get(id)
	return updated, nil
}
