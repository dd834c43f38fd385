package lab

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

// =========== LabTest Repository ===========

type labTestRepoPG struct{ pool *pgxpool.Pool }

func NewLabTestRepoPG(pool *pgxpool.Pool) LabTestRepository {
	return &labTestRepoPG{pool: pool}
}

const labTestCols = `id, name, price, unit, reference_range, created_at, updated_at`

func scanLabTest(row pgx.Row) (*LabTest, error) {
	var t LabTest
	err := row.Scan(&t.ID, &t.Name, &t.Price, &t.Unit, &t.ReferenceRange, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *labTestRepoPG) Create(ctx context.Context, t *LabTest) error {
	t.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO lab_test (id, name, price, unit, reference_range)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.Name, t.Price, t.Unit, t.ReferenceRange)
	return err
}

func (r *labTestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return scanLabTest(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+labTestCols+` FROM lab_test WHERE id = $1`, id))
}

func (r *labTestRepoPG) Update(ctx context.Context, t *LabTest) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE lab_test SET name=$2, price=$3, unit=$4, reference_range=$5, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Name, t.Price, t.Unit, t.ReferenceRange)
	return err
}

func (r *labTestRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM lab_test WHERE id = $1`, id)
	return err
}

var labTestSearchParams = map[string]db.SearchParamConfig{
	"name":  {Type: db.SearchParamString, Column: "name"},
	"price": {Type: db.SearchParamNumber, Column: "price"},
}

func (r *labTestRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error) {
	qb := db.NewSearchQuery("lab_test", labTestCols)
	qb.ApplyParams(params, labTestSearchParams)
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
	var items []*LabTest
	for rows.Next() {
		t, err := scanLabTest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}

// =========== LabBooking Repository ===========

type labBookingRepoPG struct{ pool *pgxpool.Pool }

func NewLabBookingRepoPG(pool *pgxpool.Pool) LabBookingRepository {
	return &labBookingRepoPG{pool: pool}
}

const labBookingCols = `id, patient_id, test_ids, date, total, paid, created_at, updated_at`

func scanLabBooking(row pgx.Row) (*LabBooking, error) {
	var b LabBooking
	err := row.Scan(&b.ID, &b.PatientID, &b.TestIDs, &b.Date, &b.Total, &b.Paid, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *labBookingRepoPG) Create(ctx context.Context, b *LabBooking) error {
	b.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO lab_booking (id, patient_id, test_ids, date, total, paid)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.PatientID, b.TestIDs, b.Date, b.Total, b.Paid)
	return err
}

func (r *labBookingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabBooking, error) {
	return scanLabBooking(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+labBookingCols+` FROM lab_booking WHERE id = $1`, id))
}

func (r *labBookingRepoPG) Update(ctx context.Context, b *LabBooking) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE lab_booking SET patient_id=$2, test_ids=$3, date=$4, total=$5, paid=$6, updated_at=NOW()
		WHERE id = $1`,
		b.ID, b.PatientID, b.TestIDs, b.Date, b.Total, b.Paid)
	return err
}

func (r *labBookingRepoPG) MarkPaid(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE lab_booking SET paid=TRUE, updated_at=NOW() WHERE id = $1`, id)
	return err
}

func (r *labBookingRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM lab_booking WHERE id = $1`, id)
	return err
}

var labBookingSearchParams = map[string]db.SearchParamConfig{
	"patient_id": {Type: db.SearchParamRef, Column: "patient_id"},
	"date":       {Type: db.SearchParamToken, Column: "date"},
	"paid":       {Type: db.SearchParamToken, Column: "paid"},
}

func (r *labBookingRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabBooking, int, error) {
	qb := db.NewSearchQuery("lab_booking", labBookingCols)
	qb.ApplyParams(params, labBookingSearchParams)
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
	var items []*LabBooking
	for rows.Next() {
		b, err := scanLabBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, nil
}

// =========== LabResult Repository ===========

type labResultRepoPG struct{ pool *pgxpool.Pool }

func NewLabResultRepoPG(pool *pgxpool.Pool) LabResultRepository {
	return &labResultRepoPG{pool: pool}
}

const labResultCols = `id, booking_id, test_id, value, note, created_at, updated_at`

func scanLabResult(row pgx.Row) (*LabResult, error) {
	var lr LabResult
	err := row.Scan(&lr.ID, &lr.BookingID, &lr.TestID, &lr.Value, &lr.Note, &lr.CreatedAt, &lr.UpdatedAt)
	return &lr, err
}

func (r *labResultRepoPG) Create(ctx context.Context, lr *LabResult) error {
	lr.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO lab_result (id, booking_id, test_id, value, note)
		VALUES ($1,$2,$3,$4,$5)`,
		lr.ID, lr.BookingID, lr.TestID, lr.Value, lr.Note)
	return err
}

func (r *labResultRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	return scanLabResult(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+labResultCols+` FROM lab_result WHERE id = $1`, id))
}

func (r *labResultRepoPG) Update(ctx context.Context, lr *LabResult) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE lab_result SET value=$2, note=$3, updated_at=NOW()
		WHERE id = $1`,
		lr.ID, lr.Value, lr.Note)
	return err
}

func (r *labResultRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM lab_result WHERE id = $1`, id)
	return err
}

func (r *labResultRepoPG) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*LabResult, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+labResultCols+` FROM lab_result WHERE booking_id = $1 ORDER BY created_at ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LabResult
	for rows.Next() {
		lr, err := scanLabResult(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lr)
	}
	return items, nil
}

var labResultSearchParams = map[string]db.SearchParamConfig{
	"booking_id": {Type: db.SearchParamRef, Column: "booking_id"},
	"test_id":    {Type: db.SearchParamRef, Column: "test_id"},
}

func (r *labResultRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabResult, int, error) {
	qb := db.NewSearchQuery("lab_result", labResultCols)
	qb.ApplyParams(params, labResultSearchParams)
	qb.OrderBy("created_at DESC")

	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabResult
	for rows.Next() {
		lr, err := scanLabResult(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, lr)
	}
	return items, total, nil
}
