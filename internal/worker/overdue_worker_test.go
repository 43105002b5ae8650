package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"taskDashboard/internal/models/task"
	"taskDashboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, criteria repository.Criteria) ([]*task.Task, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

type gauge struct {
	value atomic.Int64
	sets  atomic.Int64
}

func (g *gauge) SetOverdue(n int) {
	g.value.Store(int64(n))
	g.sets.Add(1)
}

var now = time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)

func TestOverdueWorker_Check(t *testing.T) {
	repo := new(MockTaskRepository)
	g := &gauge{}
	w := NewOverdueWorker(repo, g, time.Minute)
	w.now = func() time.Time { return now }

	repo.On("List", mock.Anything, mock.MatchedBy(func(c repository.Criteria) bool {
		return c.DueFrom == nil && c.DueTo != nil && c.DueTo.Equal(now)
	})).Return([]*task.Task{
		task.New("late", task.WithStatus(task.StatusInProgress)),
		task.New("late but done", task.WithStatus(task.StatusDone)),
		task.New("late blocked", task.WithStatus(task.StatusBlocked)),
	}, nil)

	count, err := w.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, int64(2), g.value.Load())
	repo.AssertExpectations(t)
}

func TestOverdueWorker_CheckError(t *testing.T) {
	repo := new(MockTaskRepository)
	g := &gauge{}
	w := NewOverdueWorker(repo, g, time.Minute)

	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	_, err := w.Check(context.Background())
	assert.Error(t, err)
	assert.Zero(t, g.sets.Load())
}

func TestOverdueWorker_StartStops(t *testing.T) {
	repo := new(MockTaskRepository)
	g := &gauge{}
	w := NewOverdueWorker(repo, g, 10*time.Millisecond)

	repo.On("List", mock.Anything, mock.Anything).Return([]*task.Task{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return g.sets.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker не остановился")
	}
}

func TestNewOverdueWorker_DefaultInterval(t *testing.T) {
	w := NewOverdueWorker(new(MockTaskRepository), nil, 0)
	assert.Equal(t, defaultInterval, w.interval)
}
