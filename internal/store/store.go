package store

import (
	"context"
	"sync"
	"time"

	"github.com/waste-analytics/internal/analytics"
	"github.com/waste-analytics/internal/domain"
	"github.com/waste-analytics/internal/domain/repository"
)

// Store - загруженный датасет и текущая отфильтрованная выборка.
// Записи публикуются целиком: читатели видят либо прежний набор, либо новый.
type Store struct {
	mu        sync.RWMutex
	records   []domain.Record
	filtered  []domain.Record
	predicate analytics.PredicateSet
	loaded    bool
	loadedAt  time.Time
	source    string
}

// Selection - результат фильтра и размер датасета, из которого он получен
type Selection struct {
	Total     int
	Records   []domain.Record
	Predicate analytics.PredicateSet
}

func New() *Store {
	return &Store{}
}

// Load fetches the full dataset from repo and publishes it. On failure the
// previous state is kept and a *domain.LoadError is returned.
func (s *Store) Load(ctx context.Context, repo repository.DatasetRepository) ([]domain.Record, error) {
	records, err := repo.Fetch(ctx)
	if err != nil {
		if domain.IsLoadError(err) {
			return nil, err
		}
		return nil, domain.NewLoadError(repo.Name(), err)
	}

	if records == nil {
		records = []domain.Record{}
	}
	s.Replace(repo.Name(), records)
	return records, nil
}

// Replace publishes an already decoded record set and resets the filtered view.
func (s *Store) Replace(source string, records []domain.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
	s.publish(records)
}

func (s *Store) publish(records []domain.Record) {
	if records == nil {
		records = []domain.Record{}
	}
	s.records = records
	s.filtered = records
	s.predicate = analytics.PredicateSet{}
	s.loaded = true
	s.loadedAt = time.Now().UTC()
}

// All returns every record in load order.
func (s *Store) All() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Filtered returns the records selected by the last SetFiltered call.
func (s *Store) Filtered() []domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filtered
}

// Predicate returns the filter behind Filtered.
func (s *Store) Predicate() analytics.PredicateSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predicate
}

// SetFiltered recomputes the filtered view from all records. Total and
// Records come from the same record set even if a reload runs concurrently.
func (s *Store) SetFiltered(p analytics.PredicateSet) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predicate = p
	s.filtered = analytics.Apply(s.records, p)
	return Selection{Total: len(s.records), Records: s.filtered, Predicate: p}
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Info - снимок состояния для API
func (s *Store) Info() domain.DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DatasetInfo{
		Source:   s.source,
		Loaded:   s.loaded,
		Records:  len(s.records),
		Filtered: len(s.filtered),
		LoadedAt: s.loadedAt,
	}
}
