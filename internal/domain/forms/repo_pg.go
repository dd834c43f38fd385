package forms

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

type formRepoPG struct{ pool *pgxpool.Pool }

func NewFormRepoPG(pool *pgxpool.Pool) FormRepository {
	return &formRepoPG{pool: pool}
}

const formCols = `id, name, fields, status, created_at, updated_at`

func scanForm(row pgx.Row) (*Form, error) {
	var f Form
	err := row.Scan(&f.ID, &f.Name, &f.Fields, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *formRepoPG) Create(ctx context.Context, f *Form) error {
	f.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO form (id, name, fields, status) VALUES ($1,$2,$3,$4)`,
		f.ID, f.Name, f.Fields, f.Status)
	return err
}

func (r *formRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Form, error) {
	return scanForm(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+formCols+` FROM form WHERE id = $1`, id))
}

func (r *formRepoPG) Update(ctx context.Context, f *Form) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE form SET name=$2, fields=$3, status=$4, updated_at=NOW() WHERE id = $1`,
		f.ID, f.Name, f.Fields, f.Status)
	return err
}

func (r *formRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM form WHERE id = $1`, id)
	return err
}

var formSearchParams = map[string]db.SearchParamConfig{
	"name":   {Type: db.SearchParamString, Column: "name"},
	"status": {Type: db.SearchParamToken, Column: "status"},
}

func (r *formRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Form, int, error) {
	qb := db.NewSearchQuery("form", formCols)
	qb.ApplyParams(params, formSearchParams)
	qb.OrderBy("name ASC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}
