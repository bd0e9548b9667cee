package resources

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/resistance-admin/internal/api/dto"
	"github.com/spec-kit/resistance-admin/internal/domain"
	apperrors "github.com/spec-kit/resistance-admin/pkg/util"
)

// mockService is an in-memory collection kept in insertion order. The hooks give each
// collection its own keys, filters and field rules.
type mockService[T, C, U any] struct {
	entity  string
	latency time.Duration
	now     func() time.Time

	key     func(item *T) string
	matches func(item *T, params domain.ListParams) bool
	build   func(ctx context.Context, id int64, input C, now time.Time) (T, error)
	apply   func(item *T, input U, now time.Time)

	afterCreate func(ctx context.Context, item *T, input C) error
	afterDelete func(ctx context.Context, item *T) error

	mu     sync.RWMutex
	items  []T
	nextID int64
}

func (s *mockService[T, C, U]) List(ctx context.Context, params domain.ListParams) (*domain.Page[T], error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]T, 0, len(s.items))
	for i := range s.items {
		if s.matches == nil || s.matches(&s.items[i], params) {
			filtered = append(filtered, s.items[i])
		}
	}
	return domain.Paginate(filtered, params.Page, params.Limit), nil
}

func (s *mockService[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, s.notFound(id)
	}
	item := s.items[idx]
	return &item, nil
}

func (s *mockService[T, C, U]) Create(ctx context.Context, input C) (*T, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.build(ctx, s.nextID, input, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if s.indexOf(s.key(&item)) >= 0 {
		return nil, apperrors.NewConflict(s.entity+" with this name already exists", map[string]any{"id": s.key(&item)})
	}
	if s.afterCreate != nil {
		if err := s.afterCreate(ctx, &item, input); err != nil {
			return nil, err
		}
	}
	s.nextID++
	s.items = append(s.items, item)
	return &item, nil
}

func (s *mockService[T, C, U]) Update(ctx context.Context, id string, input U) (*T, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, s.notFound(id)
	}
	s.apply(&s.items[idx], input, s.now().UTC())
	item := s.items[idx]
	return &item, nil
}

func (s *mockService[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := sleep(ctx, s.latency); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return s.notFound(id)
	}
	if s.afterDelete != nil {
		if err := s.afterDelete(ctx, &s.items[idx]); err != nil {
			return err
		}
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

func (s *mockService[T, C, U]) indexOf(id string) int {
	for i := range s.items {
		if s.key(&s.items[i]) == id {
			return i
		}
	}
	return -1
}

func (s *mockService[T, C, U]) notFound(id string) error {
	return apperrors.NewNotFound(s.entity, map[string]any{"id": id})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
