package objects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LorenzoDOrtona/life-logger/internal/common"
	"github.com/LorenzoDOrtona/life-logger/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, path string) (*Object, error) {
	return getObject(ctx, r.db, path)
}

func getObject(ctx context.Context, db dbx.DBTX, path string) (*Object, error) {
	query :=
		`SELECT path, data, version, message, updated_at FROM objects
		 WHERE path = $1
		 `

	obj := &Object{}
	err := db.QueryRowContext(ctx, query, path).
		Scan(&obj.Path, &obj.Data, &obj.Version, &obj.Message, &obj.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return obj, nil
}

func (r *PostgresRepository) Create(ctx context.Context, obj *Object) error {
	query :=
		`INSERT INTO objects (path, data, version, message, updated_at)
		 VALUES ($1, $2, $3, $4, now())
		 ON CONFLICT (path) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, obj.Path, obj.Data, obj.Version, obj.Message)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadyExists
	}
	return nil
}

// Update commits the new data only when the stored version still equals
// expectedVersion. The conditional write and the zero-rows disambiguation
// (absent path vs stale version) run in one transaction so the answer is
// consistent.
func (r *PostgresRepository) Update(ctx context.Context, path string, data []byte, expectedVersion, newVersion, message string) error {
	query :=
		`UPDATE objects SET data = $1, version = $2, message = $3, updated_at = now()
		 WHERE path = $4 AND version = $5
		 `

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, query, data, newVersion, message, path, expectedVersion)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n > 0 {
			return nil
		}

		if _, err := getObject(ctx, tx, path); err != nil {
			return err
		}
		return common.ErrVersionConflict
	})
}
