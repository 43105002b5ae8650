package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskDashboard/internal/config"
	"taskDashboard/internal/logger"
	"taskDashboard/internal/models/task"
	repo "taskDashboard/internal/repository"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const slowQuery = 100 * time.Millisecond

type Storage struct {
	pool       *pgxpool.Pool
	connString string
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connString: cfg.URL}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// buildListQuery mirrors repository.Criteria.Matches in SQL.
func buildListQuery(c repo.Criteria) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(c.Statuses) > 0 {
		add("status = ANY($%d)", toStrings(c.Statuses))
	}
	if len(c.Priorities) > 0 {
		add("priority = ANY($%d)", toStrings(c.Priorities))
	}
	if c.AssigneeID != "" {
		add("assignee_id = $%d", c.AssigneeID)
	}
	if c.DueFrom != nil {
		add("due_time >= $%d", *c.DueFrom)
	}
	if c.DueTo != nil {
		add("due_time < $%d", *c.DueTo)
	}
	if c.Search != "" {
		add("(title ILIKE $%[1]d OR description ILIKE $%[1]d)", "%"+escapeLike(c.Search)+"%")
	}

	query := `SELECT
				uuid,
				title,
				description,
				status,
				priority,
				assignee_id,
				due_time,
				created_at,
				updated_at
				FROM tasks`
	if len(conds) > 0 {
		query += "\n\t\t\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\t\t\tORDER BY due_time NULLS LAST, created_at, uuid"

	return query, args
}

func (s *Storage) List(ctx context.Context, criteria repo.Criteria) ([]*task.Task, error) {
	start := time.Now()
	query, args := buildListQuery(criteria)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}
		var due *time.Time

		err := rows.Scan(
			&t.UUID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.AssigneeID,
			&due,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		if due != nil {
			t.DueTime = *due
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)), zap.Int("conditions", len(args)))
	}
	return tasks, nil
}

// загрузка фикстур одним батчем; повторный uuid перезаписывает строку
func (s *Storage) Seed(ctx context.Context, tasks ...*task.Task) error {
	for _, t := range tasks {
		if err := repo.ValidateSeed(t); err != nil {
			return err
		}
	}
	if len(tasks) == 0 {
		return nil
	}
	start := time.Now()

	query := `INSERT INTO tasks
				(uuid, title, description, status, priority, assignee_id, due_time, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (uuid) DO UPDATE SET
					title = EXCLUDED.title,
					description = EXCLUDED.description,
					status = EXCLUDED.status,
					priority = EXCLUDED.priority,
					assignee_id = EXCLUDED.assignee_id,
					due_time = EXCLUDED.due_time,
					updated_at = NOW()`

	batch := &pgx.Batch{}
	for _, t := range tasks {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		var due *time.Time
		if !t.DueTime.IsZero() {
			due = &t.DueTime
		}
		batch.Queue(query,
			t.UUID,
			t.Title,
			t.Description,
			string(t.Status),
			string(t.Priority),
			t.AssigneeID,
			due,
			createdAt,
		)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		logger.Error("Repository: Не удалось загрузить фикстуры", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("загрузка фикстур: %w", err)
	}

	logger.Info("Repository: Фикстуры загружены", zap.Int("count", len(tasks)), zap.Duration("ms", time.Since(start)))
	return nil
}

func (s *Storage) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(s.connString))
	if err != nil {
		return nil, fmt.Errorf("инициализация миграций: %w", err)
	}
	return m, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Repository: Применение миграций")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Ошибка миграций", err)
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Ошибка применения миграций", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	logger.Info("Repository: Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Repository: Откат миграций")

	m, err := s.migrator()
	if err != nil {
		logger.Error("Repository: Ошибка миграций", err)
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Ошибка отката миграций", err)
		return fmt.Errorf("откат миграций: %w", err)
	}
	return nil
}

// golang-migrate's pgx/v5 driver registers the pgx5 scheme
func migrateURL(connString string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toStrings[T ~string](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	return out
}
