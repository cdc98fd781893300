// Package recipe owns the canonical recipe list and its persistence.
package recipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// DefaultKey is the blob store key the list is persisted under.
const DefaultKey = "recipes"

// Status tracks the load operation.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Option configures the store.
type Option func(*Store)

// WithKey overrides the blob store key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithClock sets the time source used for createdAt and lastCooked.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function used to mint recipe IDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithErrorHandler registers a callback for load and persist advisories.
// It runs on whichever goroutine hit the error.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

// Store is the single source of truth for the recipe list. Every mutation
// goes through it; readers get deep-copied snapshots. After each mutation
// the whole list is written back to the blob store in the background.
type Store struct {
	blobs   domain.BlobStore
	log     *logger.Logger
	key     string
	now     func() time.Time
	newID   func() string
	onError func(error)

	mu      sync.RWMutex
	recipes []domain.Recipe
	status  Status
	lastErr error
	seq     uint64 // bumped on every mutation

	writeMu sync.Mutex
	written uint64 // seq of the newest snapshot on disk
	pending sync.WaitGroup
}

// NewStore creates an empty store backed by blobs. Call Load to rehydrate it.
func NewStore(blobs domain.BlobStore, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		blobs:  blobs,
		log:    log,
		key:    DefaultKey,
		now:    time.Now,
		newID:  NewID,
		status: StatusLoading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted list. A missing blob leaves the list empty. An
// unreadable or malformed blob also leaves it empty, flips the status to
// error and returns an error wrapping domain.ErrLoadFailure.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.mu.Unlock()

	blob, err := s.blobs.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info("no saved recipes under %q, starting empty", s.key)
		s.mu.Lock()
		s.recipes = nil
		s.status = StatusReady
		s.mu.Unlock()
		return nil
	}

	var recipes []domain.Recipe
	if err == nil {
		recipes, err = Decode(blob)
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrLoadFailure, err)
		s.mu.Lock()
		s.recipes = nil
		s.status = StatusError
		s.lastErr = err
		s.mu.Unlock()
		s.report(err)
		return err
	}

	s.mu.Lock()
	s.recipes = recipes
	s.status = StatusReady
	s.mu.Unlock()

	s.log.Info("loaded %d recipes", len(recipes))
	return nil
}

// Add stores a new recipe built from in. The store assigns a fresh ID, the
// creation time and a zero cooked counter. Input is not validated here;
// callers validate at the form boundary.
func (s *Store) Add(in domain.RecipeInput) domain.Recipe {
	s.mu.Lock()

	r := domain.Recipe{
		ID:           s.uniqueIDLocked(),
		Name:         in.Name,
		CookingTime:  in.CookingTime,
		Difficulty:   in.Difficulty,
		Cuisine:      in.Cuisine,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Notes:        in.Notes,
		Rating:       in.Rating,
		CookedCount:  0,
		CreatedAt:    s.stamp(),
		Image:        in.Image,
	}.Clone()
	s.recipes = append(s.recipes, r)
	s.mu.Unlock()

	s.log.Info("added recipe %q (%s)", r.Name, r.ID)
	s.schedulePersist()
	return r.Clone()
}

// Update swaps the stored record that has r.ID for r. Unknown IDs are a
// silent no-op; the return value only reports whether anything changed.
func (s *Store) Update(r domain.Recipe) bool {
	return s.mutate(r.ID, "update", func(old *domain.Recipe) {
		*old = r.Clone()
	})
}

// Delete removes the recipe with id. Unknown IDs are a silent no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug("delete: no recipe %s", id)
		return false
	}
	s.recipes = append(s.recipes[:idx:idx], s.recipes[idx+1:]...)
	s.mu.Unlock()

	s.log.Info("deleted recipe %s", id)
	s.schedulePersist()
	return true
}

// MarkCooked bumps the cooked counter by one and stamps lastCooked.
func (s *Store) MarkCooked(id string) bool {
	return s.mutate(id, "mark cooked", func(r *domain.Recipe) {
		r.CookedCount++
		t := s.stamp()
		r.LastCooked = &t
	})
}

// SetRating sets the rating. No bounds check happens here.
func (s *Store) SetRating(id string, rating int) bool {
	return s.mutate(id, "set rating", func(r *domain.Recipe) {
		v := rating
		r.Rating = &v
	})
}

// mutate replaces the record with id by a modified copy, then schedules a
// persist. The stored record is swapped, never edited in place, so earlier
// snapshots stay untouched.
func (s *Store) mutate(id, op string, fn func(*domain.Recipe)) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug("%s: no recipe %s", op, id)
		return false
	}
	next := s.recipes[idx].Clone()
	fn(&next)
	next.ID = s.recipes[idx].ID
	s.recipes[idx] = next
	s.mu.Unlock()

	s.log.Debug("%s: recipe %s", op, id)
	s.schedulePersist()
	return true
}

// Recipes returns a snapshot of the list in insertion order.
func (s *Store) Recipes() []domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get returns a copy of one recipe.
func (s *Store) Get(id string) (domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.Recipe{}, domain.ErrNotFound
	}
	return s.recipes[idx].Clone(), nil
}

// Len returns the number of recipes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// Status reports the state of the load operation.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the latest load or persist advisory, nil if none.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr dismisses the current advisory.
func (s *Store) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// Persist writes the full current list to the blob store and waits for the
// write. Failures are recorded as an advisory and returned; the in-memory
// list is never rolled back.
func (s *Store) Persist(ctx context.Context) error {
	blob, seq, err := s.encode()
	if err != nil {
		return s.persistFailed(err)
	}
	return s.write(ctx, blob, seq)
}

// Flush blocks until every background persist has finished.
func (s *Store) Flush() {
	s.pending.Wait()
}

// schedulePersist snapshots the list now and writes it in the background.
func (s *Store) schedulePersist() {
	blob, seq, err := s.encode()
	if err != nil {
		s.persistFailed(err)
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.write(context.Background(), blob, seq)
	}()
}

func (s *Store) encode() ([]byte, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	blob, err := Encode(s.recipes)
	return blob, s.seq, err
}

// write stores blob unless a newer snapshot already landed.
func (s *Store) write(ctx context.Context, blob []byte, seq uint64) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if seq <= s.written {
		s.log.Debug("persist: snapshot %d superseded by %d", seq, s.written)
		return nil
	}
	if err := s.blobs.Set(ctx, s.key, blob); err != nil {
		return s.persistFailed(err)
	}
	s.written = seq
	s.log.Debug("persist: wrote snapshot %d (%d bytes)", seq, len(blob))
	return nil
}

func (s *Store) persistFailed(cause error) error {
	err := fmt.Errorf("%w: %w", domain.ErrPersistFailure, cause)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.report(err)
	return err
}

func (s *Store) report(err error) {
	s.log.Error("%v", err)
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.recipes {
		if s.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// uniqueIDLocked mints IDs until one doesn't collide with the live list.
func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
		s.log.Debug("id collision on %q, regenerating", id)
	}
}

// stamp returns the current time in UTC at millisecond precision, which is
// what the persisted format carries.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
