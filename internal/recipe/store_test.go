package recipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
	"github.com/hammamikhairi/whatscooking/internal/storage"
)

// fakeClock hands out a fixed instant that tests can advance.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// failingBlobs fails every Set while failSet is true.
type failingBlobs struct {
	*storage.MemoryStore
	mu      sync.Mutex
	failSet bool
	getErr  error
}

func (f *failingBlobs) Set(ctx context.Context, key string, blob []byte) error {
	f.mu.Lock()
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, blob)
}

func (f *failingBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryStore.Get(ctx, key)
}

func setupStore(t *testing.T, opts ...Option) (*Store, *storage.MemoryStore, *fakeClock) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	blobs := storage.NewMemoryStore(log)
	clock := &fakeClock{now: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	s := NewStore(blobs, log, opts...)
	require.NoError(t, s.Load(context.Background()))
	return s, blobs, clock
}

func pasta() domain.RecipeInput {
	return domain.RecipeInput{
		Name:        "Pasta",
		CookingTime: 20,
		Difficulty:  domain.DifficultyEasy,
		Cuisine:     "Italian",
		Ingredients: []string{"spaghetti", "garlic"},
	}
}

func TestAddAssignsIdentity(t *testing.T) {
	s, _, clock := setupStore(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		r := s.Add(pasta())
		require.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.Zero(t, r.CookedCount)
		assert.Equal(t, clock.Now(), r.CreatedAt)
		assert.Nil(t, r.LastCooked)
	}
	assert.Equal(t, 20, s.Len())
}

func TestAddRegeneratesCollidingIDs(t *testing.T) {
	ids := []string{"a", "a", "a", "b"}
	next := 0
	gen := func() string {
		id := ids[next]
		next++
		return id
	}
	s, _, _ := setupStore(t, WithIDGenerator(gen))

	first := s.Add(pasta())
	second := s.Add(pasta())
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, "b", second.ID)
}

func TestAddCopiesInput(t *testing.T) {
	s, _, _ := setupStore(t)

	in := pasta()
	r := s.Add(in)
	in.Ingredients[0] = "changed"

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "spaghetti", got.Ingredients[0])
}

func TestUnknownIDIsSilentNoOp(t *testing.T) {
	s, blobs, _ := setupStore(t)
	a := s.Add(pasta())
	s.Flush()
	before := s.Recipes()
	blobBefore, err := blobs.Get(context.Background(), DefaultKey)
	require.NoError(t, err)

	ghost := a
	ghost.ID = "missing"
	ghost.Name = "Ghost"

	assert.False(t, s.Update(ghost))
	assert.False(t, s.Delete("missing"))
	assert.False(t, s.MarkCooked("missing"))
	assert.False(t, s.SetRating("missing", 4))
	s.Flush()

	assert.Equal(t, before, s.Recipes())
	assert.NoError(t, s.Err())
	blobAfter, err := blobs.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, blobBefore, blobAfter)
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	s, _, _ := setupStore(t)
	a := s.Add(pasta())
	b := s.Add(pasta())

	edited := a
	edited.Name = "Cacio e Pepe"
	edited.Ingredients = []string{"pecorino", "pepper"}
	edited.Notes = "toast the pepper"
	require.True(t, s.Update(edited))

	list := s.Recipes()
	require.Len(t, list, 2)
	assert.Equal(t, edited, list[0])
	assert.Equal(t, b, list[1])
}

func TestDeleteRemovesOnlyMatch(t *testing.T) {
	s, _, _ := setupStore(t)
	a := s.Add(pasta())
	b := s.Add(pasta())
	c := s.Add(pasta())

	require.True(t, s.Delete(b.ID))

	list := s.Recipes()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	_, err := s.Get(b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkCookedTwice(t *testing.T) {
	s, _, clock := setupStore(t)
	r := s.Add(pasta())

	clock.Advance(time.Hour)
	require.True(t, s.MarkCooked(r.ID))
	clock.Advance(24 * time.Hour)
	second := clock.Now()
	require.True(t, s.MarkCooked(r.ID))

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CookedCount)
	require.NotNil(t, got.LastCooked)
	assert.Equal(t, second, *got.LastCooked)
	assert.Equal(t, r.CreatedAt, got.CreatedAt)
}

func TestSetRatingHasNoBoundsCheck(t *testing.T) {
	s, _, _ := setupStore(t)
	r := s.Add(pasta())

	for _, rating := range []int{5, 1, 9} {
		require.True(t, s.SetRating(r.ID, rating))
		got, err := s.Get(r.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Rating)
		assert.Equal(t, rating, *got.Rating)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s, _, _ := setupStore(t)
	r := s.Add(pasta())
	s.SetRating(r.ID, 3)

	snap := s.Recipes()
	snap[0].Ingredients[0] = "tampered"
	*snap[0].Rating = 1
	snap[0].Name = "tampered"

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pasta", got.Name)
	assert.Equal(t, "spaghetti", got.Ingredients[0])
	assert.Equal(t, 3, *got.Rating)

	// A snapshot taken before a mutation doesn't see it.
	s.MarkCooked(r.ID)
	assert.Zero(t, snap[0].CookedCount)
}

func TestMutationsPersistWholeList(t *testing.T) {
	s, blobs, _ := setupStore(t)
	a := s.Add(pasta())
	s.Add(pasta())
	s.MarkCooked(a.ID)
	s.Flush()

	blob, err := blobs.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	persisted, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, s.Recipes(), persisted)
}

func TestLoadRoundTrip(t *testing.T) {
	s, blobs, clock := setupStore(t)
	log := logger.New(logger.LevelOff, nil)

	full := s.Add(domain.RecipeInput{
		Name:         "Shakshuka",
		CookingTime:  30,
		Difficulty:   domain.DifficultyMedium,
		Cuisine:      "Middle Eastern",
		Ingredients:  []string{"eggs", "tomatoes", "cumin"},
		Instructions: []string{"Simmer the sauce.", "Crack in the eggs."},
		Notes:        "Serve with bread.",
		Rating:       intPtr(5),
		Image:        "file:///photos/shakshuka.jpg",
	})
	clock.Advance(90 * time.Minute)
	s.MarkCooked(full.ID)
	s.Add(pasta()) // all optionals absent
	s.Add(domain.RecipeInput{
		Name:         "Cheese Plate",
		CookingTime:  5,
		Difficulty:   domain.DifficultyEasy,
		Cuisine:      "French",
		Ingredients:  []string{"brie"},
		Instructions: []string{},
	})
	require.NoError(t, s.Persist(context.Background()))
	s.Flush()

	restored := NewStore(blobs, log)
	require.NoError(t, restored.Load(context.Background()))
	assert.Equal(t, StatusReady, restored.Status())
	assert.Equal(t, s.Recipes(), restored.Recipes())

	got, err := restored.Get(full.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastCooked)
	assert.Equal(t, time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC), *got.LastCooked)
}

func TestLoadMissingBlobStartsEmpty(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	s := NewStore(storage.NewMemoryStore(log), log)
	assert.Equal(t, StatusLoading, s.Status())

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, StatusReady, s.Status())
	assert.Empty(t, s.Recipes())
	assert.NoError(t, s.Err())
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name   string
		blob   string
		getErr error
	}{
		{"malformed json", `[{"id": "1",`, nil},
		{"wrong shape", `{"recipes": []}`, nil},
		{"bad date", `[{"id":"1","name":"x","cookingTime":5,"difficulty":"Easy","cuisine":"x","ingredients":["a"],"cookedCount":0,"createdAt":"yesterday"}]`, nil},
		{"unreadable", "", errors.New("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(logger.LevelOff, nil)
			blobs := &failingBlobs{MemoryStore: storage.NewMemoryStore(log), getErr: tt.getErr}
			require.NoError(t, blobs.MemoryStore.Set(context.Background(), DefaultKey, []byte(tt.blob)))

			var reported error
			s := NewStore(blobs, log, WithErrorHandler(func(err error) { reported = err }))

			err := s.Load(context.Background())
			require.ErrorIs(t, err, domain.ErrLoadFailure)
			assert.ErrorIs(t, reported, domain.ErrLoadFailure)
			assert.ErrorIs(t, s.Err(), domain.ErrLoadFailure)
			assert.Equal(t, StatusError, s.Status())
			assert.Empty(t, s.Recipes())

			s.ClearErr()
			assert.NoError(t, s.Err())
		})
	}
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	blobs := &failingBlobs{MemoryStore: storage.NewMemoryStore(log), failSet: true}
	s := NewStore(blobs, log)
	require.NoError(t, s.Load(context.Background()))

	r := s.Add(pasta())
	s.Flush()

	assert.ErrorIs(t, s.Err(), domain.ErrPersistFailure)
	assert.Equal(t, 1, s.Len())
	_, err := blobs.MemoryStore.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The next successful mutation is the retry.
	blobs.mu.Lock()
	blobs.failSet = false
	blobs.mu.Unlock()
	s.ClearErr()
	s.MarkCooked(r.ID)
	s.Flush()

	assert.NoError(t, s.Err())
	blob, err := blobs.MemoryStore.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	persisted, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 1, persisted[0].CookedCount)
}

func TestPersistReturnsError(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	blobs := &failingBlobs{MemoryStore: storage.NewMemoryStore(log), failSet: true}
	s := NewStore(blobs, log)

	err := s.Persist(context.Background())
	assert.ErrorIs(t, err, domain.ErrPersistFailure)
}

func TestConcurrentMutationsLeaveNewestSnapshot(t *testing.T) {
	s, blobs, _ := setupStore(t)
	r := s.Add(pasta())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.MarkCooked(r.ID)
		}()
	}
	wg.Wait()
	s.Flush()

	blob, err := blobs.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	persisted, err := Decode(blob)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 50, persisted[0].CookedCount)
}

func TestSeedOnlyFillsEmptyStore(t *testing.T) {
	s, _, _ := setupStore(t)

	n := Seed(s)
	assert.Equal(t, len(Samples()), n)
	assert.Zero(t, Seed(s))
	assert.Equal(t, n, s.Len())

	for _, r := range s.Recipes() {
		assert.NotEmpty(t, r.Ingredients, fmt.Sprintf("sample %q has no ingredients", r.Name))
		assert.True(t, r.Difficulty.Valid())
	}
}

func intPtr(v int) *int { return &v }
