package inmemory

import (
	"context"
	"sort"
	"sync"

	"taskDashboard/internal/logger"
	"taskDashboard/internal/models/task"
	repo "taskDashboard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

// загрузка фикстур; повторный uuid перезаписывает задачу на том же месте
func (s *TaskStorage) Seed(ctx context.Context, tasks ...*task.Task) error {
	for _, t := range tasks {
		if err := repo.ValidateSeed(t); err != nil {
			return err
		}
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, t := range tasks {
		copied := *t
		if _, exists := s.storage[t.UUID]; !exists {
			s.ids = append(s.ids, t.UUID)
		}
		s.storage[t.UUID] = &copied
	}

	logger.Info("Repository: Фикстуры загружены", zap.Int("count", len(tasks)))
	return nil
}

// задачи, подходящие под фильтр, по сроку выполнения
func (s *TaskStorage) List(ctx context.Context, criteria repo.Criteria) ([]*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if !criteria.Matches(t) {
			continue
		}
		copied := *t
		res = append(res, &copied)
	}

	// без срока в конце
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].DueTime, res[j].DueTime
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.Before(b)
	})
	return res, nil
}
