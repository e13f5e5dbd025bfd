// Package filterstate maintains the working search filter of a client, keeps
// named presets and the latest meaningful search in durable storage, and drives
// debounced searches against a Searcher.
package filterstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
)

// LatestSearchID marks the "Latest Search" slot as active.
const LatestSearchID = "latest"

// Searcher runs a profile search. *client.Client satisfies it.
type Searcher interface {
	SearchProfiles(ctx context.Context, filters models.FilterCriteria, excludeUserID string) ([]*models.Profile, error)
}

// Config tunes a Manager. Zero values take the package defaults.
type Config struct {
	AgeMin        int
	AgeMax        int
	Debounce      time.Duration
	ExcludeUserID string
}

// ResultHandler receives the outcome of a debounced search. Stale responses
// are dropped before reaching it.
type ResultHandler func(profiles []*models.Profile, err error)

// Manager owns the working filter, the preset list and the latest search.
// All methods are safe for concurrent use.
type Manager struct {
	cfg      Config
	store    Storage
	searcher Searcher
	onResult ResultHandler

	mu      sync.Mutex
	working models.FilterCriteria
	presets []models.SavedFilterPreset
	latest  *models.FilterCriteria
	active  string
	timer   *time.Timer
	closed  bool

	seq atomic.Uint64
}

// Option configures a Manager.
type Option func(*Manager)

// WithResultHandler enables debounced searches after SetField, LoadPreset and
// ClearFilters, delivering each result to h.
func WithResultHandler(h ResultHandler) Option {
	return func(m *Manager) {
		m.onResult = h
	}
}

// New builds a Manager and restores presets and the latest search from store.
// A restored latest search becomes the working filter; the preset equal to it,
// or else the latest search slot, becomes active.
func New(store Storage, searcher Searcher, cfg Config, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("filterstate: storage is required")
	}
	if searcher == nil {
		return nil, fmt.Errorf("filterstate: searcher is required")
	}
	if cfg.AgeMin == 0 {
		cfg.AgeMin = constants.DefaultAgeMin
	}
	if cfg.AgeMax == 0 {
		cfg.AgeMax = constants.DefaultAgeMax
	}
	if cfg.Debounce == 0 {
		cfg.Debounce = constants.DefaultSearchDebounce
	}

	m := &Manager{
		cfg:      cfg,
		store:    store,
		searcher: searcher,
		working:  models.NewFilterCriteria(),
		presets:  []models.SavedFilterPreset{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.restore(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) restore() error {
	if err := m.load(constants.StorageKeySavedFilters, &m.presets); err != nil && !errors.Is(err, ErrKeyNotFound) {
		return err
	}
	if m.presets == nil {
		m.presets = []models.SavedFilterPreset{}
	}
	// Presets written without the custom flag keep a user-chosen name out of renumbering.
	for i := range m.presets {
		if _, ok := models.ParseAutoPresetName(m.presets[i].Name); !ok {
			m.presets[i].Custom = true
		}
	}

	var latest models.FilterCriteria
	if err := m.load(constants.StorageKeyLatestSearch, &latest); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil
		}
		return err
	}
	if latest.IsEmpty() {
		return nil
	}
	m.latest = &latest
	m.working = latest.Clone()
	m.active = LatestSearchID
	if p := m.findEqualLocked(latest); p != nil {
		m.active = p.ID
	}
	return nil
}

func (m *Manager) load(key string, out interface{}) error {
	data, err := m.store.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("filterstate: corrupt %s: %w", key, err)
	}
	return nil
}

func (m *Manager) save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("filterstate: failed to encode %s: %w", key, err)
	}
	return m.store.Set(key, data)
}

// Filters returns a copy of the working filter.
func (m *Manager) Filters() models.FilterCriteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.working.Clone()
}

// Presets returns a copy of the saved presets in list order.
func (m *Manager) Presets() []models.SavedFilterPreset {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SavedFilterPreset, len(m.presets))
	for i, p := range m.presets {
		out[i] = p
		out[i].FilterCriteria = p.FilterCriteria.Clone()
	}
	return out
}

// Active returns the id of the active preset, LatestSearchID, or "".
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// LatestSearch returns the persisted latest search, if any.
func (m *Manager) LatestSearch() (models.FilterCriteria, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest == nil {
		return models.FilterCriteria{}, false
	}
	return m.latest.Clone(), true
}

// SetField merges one field into the working filter, applying the range clamp
// rules, and schedules a debounced search.
func (m *Manager) SetField(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.working.Clone()
	if err := assignField(&next, key, value); err != nil {
		return err
	}

	switch key {
	case FieldAgeMin, FieldAgeMax:
		clampAge(&next, key, m.cfg.AgeMin, m.cfg.AgeMax)
	case FieldHeightMin:
		if err := checkOption(key, next.HeightMin, catalog.ListHeight); err != nil {
			return err
		}
		clampHeight(&next, key)
	case FieldHeightMax:
		if err := checkOption(key, next.HeightMax, catalog.ListHeight); err != nil {
			return err
		}
		clampHeight(&next, key)
	case FieldAnnualIncomeMin:
		if err := checkOption(key, next.AnnualIncomeMin, catalog.ListIncomeMin); err != nil {
			return err
		}
		clampIncome(&next, key)
	case FieldAnnualIncomeMax:
		if err := checkOption(key, next.AnnualIncomeMax, catalog.ListIncomeMax); err != nil {
			return err
		}
		clampIncome(&next, key)
	}

	m.working = next
	m.invalidateLocked()
	m.scheduleLocked()
	return nil
}

// ClearFilters resets the working filter to the empty baseline and removes
// the persisted latest search.
func (m *Manager) ClearFilters() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(constants.StorageKeyLatestSearch); err != nil {
		return err
	}
	m.working = models.NewFilterCriteria()
	m.latest = nil
	m.active = ""
	m.invalidateLocked()
	m.scheduleLocked()

	log.Debug().Str("category", constants.LogCategoryFilters).Msg("Filters cleared")
	return nil
}

// SaveCurrentAsPreset stores the working filter under the next free "Save N"
// name. It fails without changes when the filter is empty or duplicates an
// existing preset.
func (m *Manager) SaveCurrentAsPreset() (models.SavedFilterPreset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.working.IsEmpty() {
		return models.SavedFilterPreset{}, ErrEmptyFilter
	}
	if p := m.findEqualLocked(m.working); p != nil {
		return models.SavedFilterPreset{}, fmt.Errorf("%w: %s", ErrDuplicatePreset, p.Name)
	}

	preset := models.SavedFilterPreset{
		ID:             uuid.NewString(),
		Name:           models.AutoPresetName(m.nextAutoNumberLocked()),
		FilterCriteria: m.working.Clone(),
	}
	next := append(m.clonePresetsLocked(), preset)
	if err := m.save(constants.StorageKeySavedFilters, next); err != nil {
		return models.SavedFilterPreset{}, err
	}
	m.presets = next
	m.active = preset.ID

	log.Info().
		Str("category", constants.LogCategoryFilters).
		Str("preset", preset.Name).
		Int("filter_fields", preset.FieldCount()).
		Msg("Filter preset saved")
	return preset, nil
}

// LoadPreset replaces the working filter with the preset's fields and marks
// it active.
func (m *Manager) LoadPreset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return ErrPresetNotFound
	}
	m.working = m.presets[i].FilterCriteria.Clone()
	m.active = id
	m.invalidateLocked()
	m.scheduleLocked()
	return nil
}

// FindPreset resolves a preset by id or, failing that, by exact name.
func (m *Manager) FindPreset(idOrName string) (models.SavedFilterPreset, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexLocked(idOrName); i >= 0 {
		return m.presets[i], true
	}
	for _, p := range m.presets {
		if p.Name == idOrName {
			return p, true
		}
	}
	return models.SavedFilterPreset{}, false
}

// RenamePreset gives a preset a custom name, which also excludes it from
// renumbering. Names compare case-sensitively.
func (m *Manager) RenamePreset(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidPresetName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return ErrPresetNotFound
	}
	for j, p := range m.presets {
		if j != i && p.Name == name {
			return ErrPresetNameTaken
		}
	}

	next := m.clonePresetsLocked()
	next[i].Name = name
	next[i].Custom = true
	if err := m.save(constants.StorageKeySavedFilters, next); err != nil {
		return err
	}
	m.presets = next
	return nil
}

// DeletePreset removes a preset and renumbers the remaining auto-named
// presets to Save 1..n in their current order.
func (m *Manager) DeletePreset(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexLocked(id)
	if i < 0 {
		return ErrPresetNotFound
	}

	next := m.clonePresetsLocked()
	next = append(next[:i], next[i+1:]...)
	renumber(next)
	if err := m.save(constants.StorageKeySavedFilters, next); err != nil {
		return err
	}
	m.presets = next
	if m.active == id {
		m.active = ""
	}
	return nil
}

// Search sends the working filter to the searcher. A response that was
// overtaken by a later Search call or by a change to the working filter
// returns ErrStaleResponse and changes nothing. A meaningful filter is persisted as the latest search and either
// the equal preset or the latest search slot becomes active.
func (m *Manager) Search(ctx context.Context) ([]*models.Profile, error) {
	seq := m.seq.Add(1)

	m.mu.Lock()
	filters := m.working.Clone()
	m.mu.Unlock()

	start := time.Now()
	profiles, err := m.searcher.SearchProfiles(ctx, filters, m.cfg.ExcludeUserID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seq.Load() != seq || !filters.Equal(m.working) {
		log.Debug().
			Str("category", constants.LogCategoryFilters).
			Uint64("seq", seq).
			Msg("Discarding stale search response")
		return nil, ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}

	if !filters.IsEmpty() {
		if err := m.save(constants.StorageKeyLatestSearch, filters); err != nil {
			log.Warn().Err(err).Str("category", constants.LogCategoryFilters).Msg("Failed to persist latest search")
		} else {
			m.latest = &filters
		}
		m.active = LatestSearchID
		if p := m.findEqualLocked(filters); p != nil {
			m.active = p.ID
		}
	}

	log.Debug().
		Str("category", constants.LogCategoryFilters).
		Int("filter_fields", filters.FieldCount()).
		Int("results", len(profiles)).
		Dur("duration", time.Since(start)).
		Msg("Search completed")
	return profiles, nil
}

// Close stops a pending debounced search.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// invalidateLocked makes any search still in flight stale. Called after every
// change to the working filter.
func (m *Manager) invalidateLocked() {
	m.seq.Add(1)
}

// scheduleLocked restarts the debounce window. Without a result handler
// searches only run through Search.
func (m *Manager) scheduleLocked() {
	if m.onResult == nil || m.closed || m.cfg.Debounce < 0 {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(m.cfg.Debounce, m.runDebounced)
}

func (m *Manager) runDebounced() {
	profiles, err := m.Search(context.Background())
	if errors.Is(err, ErrStaleResponse) {
		return
	}
	m.onResult(profiles, err)
}

func (m *Manager) indexLocked(id string) int {
	for i, p := range m.presets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) findEqualLocked(f models.FilterCriteria) *models.SavedFilterPreset {
	for i := range m.presets {
		if m.presets[i].FilterCriteria.Equal(f) {
			return &m.presets[i]
		}
	}
	return nil
}

// nextAutoNumberLocked returns the smallest N whose "Save N" name is unused.
func (m *Manager) nextAutoNumberLocked() int {
	used := make(map[int]struct{}, len(m.presets))
	for _, p := range m.presets {
		if n, ok := models.ParseAutoPresetName(p.Name); ok {
			used[n] = struct{}{}
		}
	}
	for n := 1; ; n++ {
		if _, ok := used[n]; !ok {
			return n
		}
	}
}

func (m *Manager) clonePresetsLocked() []models.SavedFilterPreset {
	out := make([]models.SavedFilterPreset, len(m.presets))
	copy(out, m.presets)
	return out
}

// renumber assigns Save 1..n to auto-named presets in list order, skipping
// numbers whose name a custom preset already holds.
func renumber(presets []models.SavedFilterPreset) {
	taken := make(map[int]struct{})
	for _, p := range presets {
		if !p.Custom {
			continue
		}
		if n, ok := models.ParseAutoPresetName(p.Name); ok {
			taken[n] = struct{}{}
		}
	}
	n := 1
	for i := range presets {
		if presets[i].Custom {
			continue
		}
		for {
			if _, ok := taken[n]; !ok {
				break
			}
			n++
		}
		presets[i].Name = models.AutoPresetName(n)
		n++
	}
}
