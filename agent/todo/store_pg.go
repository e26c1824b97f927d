package todo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/tanpawarit/agentic-todos/agent/contract"
)

type PostgresConfig struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" split_words:"true" default:"5s"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"4"`
}

type todoRow struct {
	bun.BaseModel `bun:"table:todos,alias:t"`

	ID        string    `bun:"id,pk"`
	Title     string    `bun:"title,notnull"`
	Content   string    `bun:"content"`
	DueDate   time.Time `bun:"due_date,notnull"`
	ContactID string    `bun:"contact_id"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// PostgresStore persists todos in Postgres through bun. List order is
// creation order, same as the in-memory store.
type PostgresStore struct {
	db *bun.DB
}

var _ contractx.TodoStore = (*PostgresStore)(nil)

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithDialTimeout(cfg.DialTimeout),
	)
	sqldb := sql.OpenDB(connector)
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &PostgresStore{
		db: bun.NewDB(sqldb, pgdialect.New()),
	}, nil
}

// Init creates the todos table when it does not exist yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().
		Model((*todoRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, todo contractx.Todo) error {
	row := todoRow{
		ID:        todo.ID,
		Title:     todo.Title,
		Content:   todo.Content,
		DueDate:   todo.DueDate,
		ContactID: todo.ContactID,
		CreatedAt: todo.CreatedAt,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]contractx.Todo, error) {
	var rows []todoRow
	if err := s.db.NewSelect().
		Model(&rows).
		Order("created_at ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("select todos: %w", err)
	}

	todos := make([]contractx.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, contractx.Todo{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			DueDate:   row.DueDate,
			ContactID: row.ContactID,
			CreatedAt: row.CreatedAt,
		})
	}
	return todos, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
