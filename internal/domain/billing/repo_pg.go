package billing

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

// =========== Tax Repository ===========

type taxRepoPG struct{ pool *pgxpool.Pool }

func NewTaxRepoPG(pool *pgxpool.Pool) TaxRepository {
	return &taxRepoPG{pool: pool}
}

const taxCols = `id, name, rate, created_at, updated_at`

func scanTax(row pgx.Row) (*Tax, error) {
	var t Tax
	err := row.Scan(&t.ID, &t.Name, &t.Rate, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *taxRepoPG) Create(ctx context.Context, t *Tax) error {
	t.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO tax (id, name, rate) VALUES ($1,$2,$3)`, t.ID, t.Name, t.Rate)
	return err
}

func (r *taxRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Tax, error) {
	return scanTax(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+taxCols+` FROM tax WHERE id = $1`, id))
}

func (r *taxRepoPG) GetByName(ctx context.Context, name string) (*Tax, error) {
	return scanTax(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+taxCols+` FROM tax WHERE lower(name) = lower($1)`, name))
}

func (r *taxRepoPG) Update(ctx context.Context, t *Tax) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE tax SET name=$2, rate=$3, updated_at=NOW() WHERE id = $1`, t.ID, t.Name, t.Rate)
	return err
}

func (r *taxRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM tax WHERE id = $1`, id)
	return err
}

var taxSearchParams = map[string]db.SearchParamConfig{
	"name": {Type: db.SearchParamString, Column: "name"},
	"rate": {Type: db.SearchParamNumber, Column: "rate"},
}

func (r *taxRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Tax, int, error) {
	qb := db.NewSearchQuery("tax", taxCols)
	qb.ApplyParams(params, taxSearchParams)
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
	var items []*Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}

// =========== TaxGroup Repository ===========

type taxGroupRepoPG struct{ pool *pgxpool.Pool }

func NewTaxGroupRepoPG(pool *pgxpool.Pool) TaxGroupRepository {
	return &taxGroupRepoPG{pool: pool}
}

const taxGroupCols = `id, name, tax_ids, created_at, updated_at`

func scanTaxGroup(row pgx.Row) (*TaxGroup, error) {
	var g TaxGroup
	err := row.Scan(&g.ID, &g.Name, &g.TaxIDs, &g.CreatedAt, &g.UpdatedAt)
	return &g, err
}

func (r *taxGroupRepoPG) Create(ctx context.Context, g *TaxGroup) error {
	g.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO tax_group (id, name, tax_ids) VALUES ($1,$2,$3)`, g.ID, g.Name, g.TaxIDs)
	return err
}

func (r *taxGroupRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TaxGroup, error) {
	return scanTaxGroup(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+taxGroupCols+` FROM tax_group WHERE id = $1`, id))
}

func (r *taxGroupRepoPG) GetByName(ctx context.Context, name string) (*TaxGroup, error) {
	return scanTaxGroup(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+taxGroupCols+` FROM tax_group WHERE lower(name) = lower($1)`, name))
}

func (r *taxGroupRepoPG) Update(ctx context.Context, g *TaxGroup) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE tax_group SET name=$2, tax_ids=$3, updated_at=NOW() WHERE id = $1`, g.ID, g.Name, g.TaxIDs)
	return err
}

func (r *taxGroupRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM tax_group WHERE id = $1`, id)
	return err
}

var taxGroupSearchParams = map[string]db.SearchParamConfig{
	"name": {Type: db.SearchParamString, Column: "name"},
}

func (r *taxGroupRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*TaxGroup, int, error) {
	qb := db.NewSearchQuery("tax_group", taxGroupCols)
	qb.ApplyParams(params, taxGroupSearchParams)
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
	var items []*TaxGroup
	for rows.Next() {
		g, err := scanTaxGroup(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, g)
	}
	return items, total, nil
}

// =========== FinanceRecord Repository ===========

type financeRecordRepoPG struct{ pool *pgxpool.Pool }

func NewFinanceRecordRepoPG(pool *pgxpool.Pool) FinanceRecordRepository {
	return &financeRecordRepoPG{pool: pool}
}

const financeCols = `id, kind, category, amount, date, note, created_at, updated_at`

func scanFinanceRecord(row pgx.Row) (*FinanceRecord, error) {
	var f FinanceRecord
	err := row.Scan(&f.ID, &f.Kind, &f.Category, &f.Amount, &f.Date, &f.Note, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *financeRecordRepoPG) Create(ctx context.Context, f *FinanceRecord) error {
	f.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO finance_record (id, kind, category, amount, date, note)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		f.ID, f.Kind, f.Category, f.Amount, f.Date, f.Note)
	return err
}

func (r *financeRecordRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*FinanceRecord, error) {
	return scanFinanceRecord(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+financeCols+` FROM finance_record WHERE id = $1`, id))
}

func (r *financeRecordRepoPG) Update(ctx context.Context, f *FinanceRecord) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE finance_record SET kind=$2, category=$3, amount=$4, date=$5, note=$6, updated_at=NOW()
		WHERE id = $1`,
		f.ID, f.Kind, f.Category, f.Amount, f.Date, f.Note)
	return err
}

func (r *financeRecordRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM finance_record WHERE id = $1`, id)
	return err
}

var financeSearchParams = map[string]db.SearchParamConfig{
	"kind":     {Type: db.SearchParamToken, Column: "kind"},
	"category": {Type: db.SearchParamToken, Column: "category"},
	"date":     {Type: db.SearchParamToken, Column: "date"},
	"amount":   {Type: db.SearchParamNumber, Column: "amount"},
}

func (r *financeRecordRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*FinanceRecord, int, error) {
	qb := db.NewSearchQuery("finance_record", financeCols)
	qb.ApplyParams(params, financeSearchParams)
	qb.OrderBy("date DESC, created_at DESC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*FinanceRecord
	for rows.Next() {
		f, err := scanFinanceRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, nil
}
