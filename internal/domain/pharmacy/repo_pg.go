package pharmacy

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

// =========== Medicine Repository ===========

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository {
	return &medicineRepoPG{pool: pool}
}

const medicineCols = `id, name, brand_id, supplier_id, price, stock, expiry, created_at, updated_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.BrandID, &m.SupplierID, &m.Price,
		&m.Stock, &m.Expiry, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO medicine (id, name, brand_id, supplier_id, price, stock, expiry)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.Name, m.BrandID, m.SupplierID, m.Price, m.Stock, m.Expiry)
	return err
}

func (r *medicineRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+medicineCols+` FROM medicine WHERE id = $1`, id))
}

func (r *medicineRepoPG) Update(ctx context.Context, m *Medicine) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE medicine SET name=$2, brand_id=$3, supplier_id=$4, price=$5,
			stock=$6, expiry=$7, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.BrandID, m.SupplierID, m.Price, m.Stock, m.Expiry)
	return err
}

func (r *medicineRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM medicine WHERE id = $1`, id)
	return err
}

var medicineSearchParams = map[string]db.SearchParamConfig{
	"name":        {Type: db.SearchParamString, Column: "name"},
	"brand_id":    {Type: db.SearchParamRef, Column: "brand_id"},
	"supplier_id": {Type: db.SearchParamRef, Column: "supplier_id"},
	"stock":       {Type: db.SearchParamNumber, Column: "stock"},
}

func (r *medicineRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error) {
	qb := db.NewSearchQuery("medicine", medicineCols)
	qb.ApplyParams(params, medicineSearchParams)
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
	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}

// =========== Purchase Repository ===========

type purchaseRepoPG struct{ pool *pgxpool.Pool }

func NewPurchaseRepoPG(pool *pgxpool.Pool) PurchaseRepository {
	return &purchaseRepoPG{pool: pool}
}

const purchaseCols = `id, supplier_id, items, total, date, created_at, updated_at`

func scanPurchase(row pgx.Row) (*Purchase, error) {
	var p Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.Items, &p.Total, &p.Date, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *purchaseRepoPG) Create(ctx context.Context, p *Purchase) error {
	p.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO purchase (id, supplier_id, items, total, date)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.SupplierID, p.Items, p.Total, p.Date)
	return err
}

func (r *purchaseRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	return scanPurchase(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+purchaseCols+` FROM purchase WHERE id = $1`, id))
}

func (r *purchaseRepoPG) Update(ctx context.Context, p *Purchase) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE purchase SET supplier_id=$2, items=$3, total=$4, date=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.SupplierID, p.Items, p.Total, p.Date)
	return err
}

func (r *purchaseRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM purchase WHERE id = $1`, id)
	return err
}

var purchaseSearchParams = map[string]db.SearchParamConfig{
	"supplier_id": {Type: db.SearchParamRef, Column: "supplier_id"},
	"date":        {Type: db.SearchParamToken, Column: "date"},
}

func (r *purchaseRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Purchase, int, error) {
	qb := db.NewSearchQuery("purchase", purchaseCols)
	qb.ApplyParams(params, purchaseSearchParams)
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
	var items []*Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// =========== Brand Repository ===========

type brandRepoPG struct{ pool *pgxpool.Pool }

func NewBrandRepoPG(pool *pgxpool.Pool) BrandRepository {
	return &brandRepoPG{pool: pool}
}

const brandCols = `id, name, created_at, updated_at`

func scanBrand(row pgx.Row) (*Brand, error) {
	var b Brand
	err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *brandRepoPG) Create(ctx context.Context, b *Brand) error {
	b.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO brand (id, name) VALUES ($1,$2)`, b.ID, b.Name)
	return err
}

func (r *brandRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Brand, error) {
	return scanBrand(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+brandCols+` FROM brand WHERE id = $1`, id))
}

func (r *brandRepoPG) GetByName(ctx context.Context, name string) (*Brand, error) {
	return scanBrand(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+brandCols+` FROM brand WHERE lower(name) = lower($1)`, name))
}

func (r *brandRepoPG) Update(ctx context.Context, b *Brand) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE brand SET name=$2, updated_at=NOW() WHERE id = $1`, b.ID, b.Name)
	return err
}

func (r *brandRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM brand WHERE id = $1`, id)
	return err
}

var brandSearchParams = map[string]db.SearchParamConfig{
	"name": {Type: db.SearchParamString, Column: "name"},
}

func (r *brandRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Brand, int, error) {
	qb := db.NewSearchQuery("brand", brandCols)
	qb.ApplyParams(params, brandSearchParams)
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
	var items []*Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, nil
}

// =========== Supplier Repository ===========

type supplierRepoPG struct{ pool *pgxpool.Pool }

func NewSupplierRepoPG(pool *pgxpool.Pool) SupplierRepository {
	return &supplierRepoPG{pool: pool}
}

const supplierCols = `id, name, email, phone, address, created_at, updated_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *supplierRepoPG) Create(ctx context.Context, s *Supplier) error {
	s.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO supplier (id, name, email, phone, address)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Name, s.Email, s.Phone, s.Address)
	return err
}

func (r *supplierRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Supplier, error) {
	return scanSupplier(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+supplierCols+` FROM supplier WHERE id = $1`, id))
}

func (r *supplierRepoPG) Update(ctx context.Context, s *Supplier) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE supplier SET name=$2, email=$3, phone=$4, address=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Email, s.Phone, s.Address)
	return err
}

func (r *supplierRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM supplier WHERE id = $1`, id)
	return err
}

var supplierSearchParams = map[string]db.SearchParamConfig{
	"name":  {Type: db.SearchParamString, Column: "name"},
	"email": {Type: db.SearchParamToken, Column: "email"},
}

func (r *supplierRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Supplier, int, error) {
	qb := db.NewSearchQuery("supplier", supplierCols)
	qb.ApplyParams(params, supplierSearchParams)
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
	var items []*Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
