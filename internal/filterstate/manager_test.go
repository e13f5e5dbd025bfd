package filterstate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
)

type searcherFunc func(ctx context.Context, filters models.FilterCriteria, excludeUserID string) ([]*models.Profile, error)

func (f searcherFunc) SearchProfiles(ctx context.Context, filters models.FilterCriteria, excludeUserID string) ([]*models.Profile, error) {
	return f(ctx, filters, excludeUserID)
}

// recordingSearcher returns fixed profiles and remembers every request.
type recordingSearcher struct {
	mu       sync.Mutex
	requests []models.FilterCriteria
	excludes []string
	profiles []*models.Profile
	err      error
}

func (s *recordingSearcher) SearchProfiles(_ context.Context, filters models.FilterCriteria, excludeUserID string) ([]*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, filters)
	s.excludes = append(s.excludes, excludeUserID)
	return s.profiles, s.err
}

func (s *recordingSearcher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func newTestManager(t *testing.T, store Storage, searcher Searcher) *Manager {
	t.Helper()
	if store == nil {
		store = NewMemoryStore()
	}
	if searcher == nil {
		searcher = &recordingSearcher{}
	}
	m, err := New(store, searcher, Config{})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func mustSet(t *testing.T, m *Manager, key string, value interface{}) {
	t.Helper()
	require.NoError(t, m.SetField(key, value))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(nil, &recordingSearcher{}, Config{})
	assert.Error(t, err)
	_, err = New(NewMemoryStore(), nil, Config{})
	assert.Error(t, err)
}

func TestSetField_AgeClamp(t *testing.T) {
	tests := []struct {
		name            string
		steps           [][2]interface{}
		wantMin, wantMax int
	}{
		{name: "below configured minimum", steps: [][2]interface{}{{"ageMin", 10}}, wantMin: 18},
		{name: "above configured maximum", steps: [][2]interface{}{{"ageMax", 95}}, wantMax: 70},
		{name: "raising min pulls max", steps: [][2]interface{}{{"ageMax", 30}, {"ageMin", 40}}, wantMin: 40, wantMax: 40},
		{name: "lowering max pulls min", steps: [][2]interface{}{{"ageMin", 30}, {"ageMax", 25}}, wantMin: 25, wantMax: 25},
		{name: "ordered pair untouched", steps: [][2]interface{}{{"ageMin", 25}, {"ageMax", 30}}, wantMin: 25, wantMax: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, nil, nil)
			for _, step := range tt.steps {
				mustSet(t, m, step[0].(string), step[1])
			}
			f := m.Filters()
			assert.Equal(t, tt.wantMin, f.AgeMin)
			assert.Equal(t, tt.wantMax, f.AgeMax)
		})
	}
}

func TestSetField_HeightClampByPosition(t *testing.T) {
	tall := catalog.HeightLabel(69)  // 5ft 9in
	short := catalog.HeightLabel(64) // 5ft 4in

	m := newTestManager(t, nil, nil)
	mustSet(t, m, FieldHeightMin, tall)
	mustSet(t, m, FieldHeightMax, short)

	f := m.Filters()
	assert.Equal(t, short, f.HeightMin)
	assert.Equal(t, short, f.HeightMax)

	mustSet(t, m, FieldHeightMin, tall)
	f = m.Filters()
	assert.Equal(t, tall, f.HeightMin)
	assert.Equal(t, tall, f.HeightMax)

	err := m.SetField(FieldHeightMax, "six feet")
	assert.ErrorIs(t, err, ErrInvalidFieldValue)
	assert.Equal(t, tall, m.Filters().HeightMax)
}

func TestSetField_IncomeClampByParallelLists(t *testing.T) {
	m := newTestManager(t, nil, nil)

	mustSet(t, m, FieldAnnualIncomeMin, "Rs. 10 Lakh")
	mustSet(t, m, FieldAnnualIncomeMax, "Rs. 4 Lakh")
	f := m.Filters()
	assert.Equal(t, "Rs. 2 Lakh", f.AnnualIncomeMin)
	assert.Equal(t, "Rs. 4 Lakh", f.AnnualIncomeMax)

	mustSet(t, m, FieldAnnualIncomeMin, "Rs. 20 Lakh")
	f = m.Filters()
	assert.Equal(t, "Rs. 20 Lakh", f.AnnualIncomeMin)
	assert.Equal(t, "Rs. 30 Lakh", f.AnnualIncomeMax)

	assert.ErrorIs(t, m.SetField(FieldAnnualIncomeMin, "Rs. 3 Lakh"), ErrInvalidFieldValue)
	assert.ErrorIs(t, m.SetField("shoeSize", "9"), ErrUnknownField)
}

func TestClearFilters(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store, nil)
	ctx := context.Background()

	mustSet(t, m, "religion", "Hinduism")
	mustSet(t, m, "casteGroups", []string{"Brahmin"})
	_, err := m.Search(ctx)
	require.NoError(t, err)
	_, err = store.Get(constants.StorageKeyLatestSearch)
	require.NoError(t, err)

	require.NoError(t, m.ClearFilters())

	assert.Equal(t, models.NewFilterCriteria(), m.Filters())
	assert.Empty(t, m.Active())
	_, ok := m.LatestSearch()
	assert.False(t, ok)
	_, err = store.Get(constants.StorageKeyLatestSearch)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSaveCurrentAsPreset(t *testing.T) {
	m := newTestManager(t, nil, nil)

	_, err := m.SaveCurrentAsPreset()
	assert.ErrorIs(t, err, ErrEmptyFilter)
	assert.Empty(t, m.Presets())

	mustSet(t, m, "spiritualPractices", []string{"Yoga Practice", "Pranayama"})
	first, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)
	assert.Equal(t, "Save 1", first.Name)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, first.ID, m.Active())

	// Same content in a different order is a duplicate.
	mustSet(t, m, "spiritualPractices", []string{"Pranayama", "Yoga Practice"})
	_, err = m.SaveCurrentAsPreset()
	assert.ErrorIs(t, err, ErrDuplicatePreset)
	assert.Len(t, m.Presets(), 1)

	mustSet(t, m, "religion", "Jainism")
	second, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)
	assert.Equal(t, "Save 2", second.Name)
}

func TestSaveCurrentAsPreset_AllMatchesUnset(t *testing.T) {
	m := newTestManager(t, nil, nil)
	mustSet(t, m, "religion", "Hinduism")
	_, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)

	mustSet(t, m, "gender", "All")
	_, err = m.SaveCurrentAsPreset()
	assert.ErrorIs(t, err, ErrDuplicatePreset)
	assert.Len(t, m.Presets(), 1)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	m := newTestManager(t, nil, nil)

	mustSet(t, m, "ageMin", 25)
	mustSet(t, m, "ageMax", 30)
	mustSet(t, m, "religion", "Hinduism")
	mustSet(t, m, "sacredTexts", []string{"Vedas"})
	saved := m.Filters()

	preset, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)

	require.NoError(t, m.ClearFilters())
	require.NoError(t, m.LoadPreset(preset.ID))

	assert.Equal(t, saved, m.Filters())
	assert.Equal(t, preset.ID, m.Active())
	assert.ErrorIs(t, m.LoadPreset("missing"), ErrPresetNotFound)
}

func savePresets(t *testing.T, m *Manager, religions ...string) []models.SavedFilterPreset {
	t.Helper()
	var out []models.SavedFilterPreset
	for _, r := range religions {
		mustSet(t, m, "religion", r)
		p, err := m.SaveCurrentAsPreset()
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func presetNames(m *Manager) []string {
	var names []string
	for _, p := range m.Presets() {
		names = append(names, p.Name)
	}
	return names
}

func TestDeletePreset_Renumbers(t *testing.T) {
	m := newTestManager(t, nil, nil)
	saved := savePresets(t, m, "Hinduism", "Islam", "Sikhism")
	require.Equal(t, []string{"Save 1", "Save 2", "Save 3"}, presetNames(m))

	require.NoError(t, m.DeletePreset(saved[1].ID))

	assert.Equal(t, []string{"Save 1", "Save 2"}, presetNames(m))
	assert.Equal(t, "Sikhism", m.Presets()[1].Religion)
	assert.ErrorIs(t, m.DeletePreset(saved[1].ID), ErrPresetNotFound)
}

func TestDeletePreset_KeepsCustomNamesAndClearsActive(t *testing.T) {
	m := newTestManager(t, nil, nil)
	saved := savePresets(t, m, "Hinduism", "Islam", "Sikhism")
	require.NoError(t, m.RenamePreset(saved[1].ID, "Weekend"))

	require.NoError(t, m.LoadPreset(saved[0].ID))
	require.NoError(t, m.DeletePreset(saved[0].ID))

	assert.Equal(t, []string{"Weekend", "Save 1"}, presetNames(m))
	assert.Empty(t, m.Active())
}

func TestSaveCurrentAsPreset_SmallestUnusedNumber(t *testing.T) {
	m := newTestManager(t, nil, nil)
	saved := savePresets(t, m, "Hinduism", "Islam")
	require.NoError(t, m.RenamePreset(saved[0].ID, "Family pick"))

	mustSet(t, m, "religion", "Buddhism")
	p, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)
	assert.Equal(t, "Save 1", p.Name)
}

func TestRenamePreset(t *testing.T) {
	m := newTestManager(t, nil, nil)
	saved := savePresets(t, m, "Hinduism", "Islam")

	assert.ErrorIs(t, m.RenamePreset(saved[0].ID, "   "), ErrInvalidPresetName)
	assert.ErrorIs(t, m.RenamePreset(saved[0].ID, "Save 2"), ErrPresetNameTaken)
	assert.ErrorIs(t, m.RenamePreset("missing", "Anything"), ErrPresetNotFound)

	require.NoError(t, m.RenamePreset(saved[0].ID, "save 2"))
	require.NoError(t, m.RenamePreset(saved[0].ID, "save 2"))

	p, ok := m.FindPreset("save 2")
	require.True(t, ok)
	assert.Equal(t, saved[0].ID, p.ID)
	assert.True(t, p.Custom)
}

func TestSearch_PersistsLatestAndMarksActive(t *testing.T) {
	searcher := &recordingSearcher{profiles: []*models.Profile{{ID: "AB12CD34"}}}
	store := NewMemoryStore()
	m, err := New(store, searcher, Config{ExcludeUserID: "user-1"})
	require.NoError(t, err)
	defer m.Close()
	ctx := context.Background()

	// An empty search is not remembered.
	_, err = m.Search(ctx)
	require.NoError(t, err)
	_, ok := m.LatestSearch()
	assert.False(t, ok)
	assert.Empty(t, m.Active())

	mustSet(t, m, "religion", "Hinduism")
	profiles, err := m.Search(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
	assert.Equal(t, LatestSearchID, m.Active())
	latest, ok := m.LatestSearch()
	require.True(t, ok)
	assert.Equal(t, "Hinduism", latest.Religion)
	assert.Equal(t, []string{"user-1", "user-1"}, searcher.excludes)

	preset, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)
	mustSet(t, m, "religion", "Islam")
	_, err = m.Search(ctx)
	require.NoError(t, err)
	assert.Equal(t, LatestSearchID, m.Active())

	mustSet(t, m, "religion", "Hinduism")
	_, err = m.Search(ctx)
	require.NoError(t, err)
	assert.Equal(t, preset.ID, m.Active())
}

func TestSearch_ErrorLeavesStateAlone(t *testing.T) {
	searcher := &recordingSearcher{err: errors.New("connection refused")}
	m := newTestManager(t, nil, searcher)

	mustSet(t, m, "religion", "Hinduism")
	_, err := m.Search(context.Background())

	assert.EqualError(t, err, "connection refused")
	_, ok := m.LatestSearch()
	assert.False(t, ok)
}

func TestSearch_DiscardsStaleResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	searcher := searcherFunc(func(ctx context.Context, f models.FilterCriteria, _ string) ([]*models.Profile, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return []*models.Profile{{ID: "OLD00001"}}, nil
		}
		return []*models.Profile{{ID: "NEW00001"}}, nil
	})
	m := newTestManager(t, nil, searcher)
	ctx := context.Background()

	mustSet(t, m, "ageMin", 25)
	errCh := make(chan error, 1)
	go func() {
		_, err := m.Search(ctx)
		errCh <- err
	}()
	<-started

	mustSet(t, m, "religion", "Hinduism")
	profiles, err := m.Search(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "NEW00001", profiles[0].ID)

	close(release)
	assert.ErrorIs(t, <-errCh, ErrStaleResponse)

	latest, ok := m.LatestSearch()
	require.True(t, ok)
	assert.Equal(t, "Hinduism", latest.Religion)
}

// blockedSearch starts m.Search with the searcher held until release is
// closed, and returns the channel that receives its error.
func blockedSearch(t *testing.T, m *Manager, started chan struct{}) <-chan error {
	t.Helper()
	errCh := make(chan error, 1)
	go func() {
		_, err := m.Search(context.Background())
		errCh <- err
	}()
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("search did not reach the searcher")
	}
	return errCh
}

func TestSearch_ClearWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	searcher := searcherFunc(func(ctx context.Context, f models.FilterCriteria, _ string) ([]*models.Profile, error) {
		close(started)
		<-release
		return []*models.Profile{{ID: "OLD00001"}}, nil
	})
	store := NewMemoryStore()
	m := newTestManager(t, store, searcher)

	mustSet(t, m, "religion", "Hinduism")
	errCh := blockedSearch(t, m, started)

	require.NoError(t, m.ClearFilters())
	close(release)
	assert.ErrorIs(t, <-errCh, ErrStaleResponse)

	_, ok := m.LatestSearch()
	assert.False(t, ok)
	assert.Empty(t, m.Active())
	assert.True(t, m.Filters().IsEmpty())
	_, err := store.Get(constants.StorageKeyLatestSearch)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSearch_LoadPresetWhileInFlight(t *testing.T) {
	var blocking atomic.Bool
	started := make(chan struct{})
	release := make(chan struct{})
	searcher := searcherFunc(func(ctx context.Context, f models.FilterCriteria, _ string) ([]*models.Profile, error) {
		if blocking.Load() {
			close(started)
			<-release
		}
		return []*models.Profile{}, nil
	})
	m := newTestManager(t, nil, searcher)

	mustSet(t, m, "religion", "Islam")
	preset, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)

	mustSet(t, m, "religion", "Hinduism")
	blocking.Store(true)
	errCh := blockedSearch(t, m, started)

	require.NoError(t, m.LoadPreset(preset.ID))
	close(release)
	assert.ErrorIs(t, <-errCh, ErrStaleResponse)

	assert.Equal(t, preset.ID, m.Active())
	assert.Equal(t, "Islam", m.Filters().Religion)
	_, ok := m.LatestSearch()
	assert.False(t, ok)
}

func TestSearch_FieldChangeWhileInFlight(t *testing.T) {
	var blocking atomic.Bool
	started := make(chan struct{})
	release := make(chan struct{})
	searcher := searcherFunc(func(ctx context.Context, f models.FilterCriteria, _ string) ([]*models.Profile, error) {
		if blocking.Load() {
			close(started)
			<-release
		}
		return []*models.Profile{}, nil
	})
	m := newTestManager(t, nil, searcher)

	mustSet(t, m, "religion", "Hinduism")
	blocking.Store(true)
	errCh := blockedSearch(t, m, started)

	mustSet(t, m, "city", "Pune")
	close(release)
	assert.ErrorIs(t, <-errCh, ErrStaleResponse)

	_, ok := m.LatestSearch()
	assert.False(t, ok)
	assert.Empty(t, m.Active())
}

func TestDebouncedSearchCollapsesEdits(t *testing.T) {
	searcher := &recordingSearcher{profiles: []*models.Profile{}}
	results := make(chan error, 4)

	m, err := New(NewMemoryStore(), searcher, Config{Debounce: 30 * time.Millisecond},
		WithResultHandler(func(_ []*models.Profile, err error) { results <- err }))
	require.NoError(t, err)
	defer m.Close()

	for _, city := range []string{"P", "Pu", "Pun", "Pune"} {
		mustSet(t, m, "city", city)
	}

	select {
	case err := <-results:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced search did not run")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, searcher.calls())
	assert.Equal(t, "Pune", searcher.requests[0].City)
}

func TestNew_RestoresFromFileStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	first := newTestManager(t, store, nil)
	savePresets(t, first, "Hinduism", "Islam")
	mustSet(t, first, "city", "Pune")
	_, err = first.Search(ctx)
	require.NoError(t, err)
	first.Close()

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	second := newTestManager(t, reopened, nil)

	assert.Equal(t, []string{"Save 1", "Save 2"}, presetNames(second))
	assert.Equal(t, "Pune", second.Filters().City)
	assert.Equal(t, "Islam", second.Filters().Religion)
	assert.Equal(t, LatestSearchID, second.Active())
}

func TestNew_MarksUserNamedPresetsCustom(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(constants.StorageKeySavedFilters, []byte(`[
		{"id":"a","name":"Save 1","religion":"Hinduism"},
		{"id":"b","name":"Weekend","religion":"Islam"},
		{"id":"c","name":"Save 3","religion":"Sikhism"}
	]`)))
	m := newTestManager(t, store, nil)

	presets := m.Presets()
	require.Len(t, presets, 3)
	assert.False(t, presets[0].Custom)
	assert.True(t, presets[1].Custom)

	require.NoError(t, m.DeletePreset("a"))
	assert.Equal(t, []string{"Weekend", "Save 1"}, presetNames(m))

	mustSet(t, m, "religion", "Jainism")
	saved, err := m.SaveCurrentAsPreset()
	require.NoError(t, err)
	assert.Equal(t, "Save 2", saved.Name)
}

func TestNew_CorruptStorage(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(constants.StorageKeySavedFilters, []byte("{not json")))

	_, err := New(store, &recordingSearcher{}, Config{})
	assert.Error(t, err)
}
