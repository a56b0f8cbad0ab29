package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is a single result row keyed by column name.
type Row map[string]any

// String returns the column as a string. Missing or NULL columns yield "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the column as an int64. Missing, NULL or non-numeric
// columns yield 0.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	default:
		return 0
	}
}

// Querier executes raw SQL with positional $N arguments.
type Querier interface {
	// Query runs a statement that returns rows and reads them all.
	Query(ctx context.Context, query string, args ...any) ([]Row, error)

	// Exec runs a statement and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
}

// sqlQuerier runs queries through database/sql.
type sqlQuerier struct {
	db *sql.DB
}

func (q *sqlQuerier) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			// Drivers may reuse byte slices between rows.
			if b, ok := vals[i].([]byte); ok {
				vals[i] = string(b)
			}
			row[col] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return out, nil
}

func (q *sqlQuerier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	return n, nil
}

// poolQuerier runs queries through a pgx connection pool.
type poolQuerier struct {
	pool *pgxpool.Pool
}

func (q *poolQuerier) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := q.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		row := make(Row, len(fields))
		for i, f := range fields {
			row[f.Name] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return out, nil
}

func (q *poolQuerier) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := q.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	return tag.RowsAffected(), nil
}
