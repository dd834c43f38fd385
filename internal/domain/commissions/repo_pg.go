package commissions

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

// =========== Commission Repository ===========

type commissionRepoPG struct{ pool *pgxpool.Pool }

func NewCommissionRepoPG(pool *pgxpool.Pool) CommissionRepository {
	return &commissionRepoPG{pool: pool}
}

const commissionCols = `id, doctor_id, appointment_id, amount, status, created_at, updated_at`

func scanCommission(row pgx.Row) (*Commission, error) {
	var c Commission
	err := row.Scan(&c.ID, &c.DoctorID, &c.AppointmentID, &c.Amount, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *commissionRepoPG) Create(ctx context.Context, c *Commission) error {
	c.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO commission (id, doctor_id, appointment_id, amount, status)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.DoctorID, c.AppointmentID, c.Amount, c.Status)
	return err
}

func (r *commissionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Commission, error) {
	return scanCommission(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+commissionCols+` FROM commission WHERE id = $1`, id))
}

func (r *commissionRepoPG) Update(ctx context.Context, c *Commission) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE commission SET doctor_id=$2, appointment_id=$3, amount=$4, status=$5, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.DoctorID, c.AppointmentID, c.Amount, c.Status)
	return err
}

func (r *commissionRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE commission SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *commissionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM commission WHERE id = $1`, id)
	return err
}

var commissionSearchParams = map[string]db.SearchParamConfig{
	"doctor_id":      {Type: db.SearchParamToken, Column: "doctor_id"},
	"appointment_id": {Type: db.SearchParamToken, Column: "appointment_id"},
	"status":         {Type: db.SearchParamToken, Column: "status"},
	"amount":         {Type: db.SearchParamNumber, Column: "amount"},
}

func (r *commissionRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Commission, int, error) {
	qb := db.NewSearchQuery("commission", commissionCols)
	qb.ApplyParams(params, commissionSearchParams)
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
	var items []*Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// =========== CommissionSetting Repository ===========

type commissionSettingRepoPG struct{ pool *pgxpool.Pool }

func NewCommissionSettingRepoPG(pool *pgxpool.Pool) CommissionSettingRepository {
	return &commissionSettingRepoPG{pool: pool}
}

const settingCols = `id, doctor_id, rate, kind, created_at, updated_at`

func scanSetting(row pgx.Row) (*CommissionSetting, error) {
	var s CommissionSetting
	err := row.Scan(&s.ID, &s.DoctorID, &s.Rate, &s.Kind, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *commissionSettingRepoPG) Create(ctx context.Context, s *CommissionSetting) error {
	s.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO commission_setting (id, doctor_id, rate, kind)
		VALUES ($1,$2,$3,$4)`,
		s.ID, s.DoctorID, s.Rate, s.Kind)
	return err
}

func (r *commissionSettingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CommissionSetting, error) {
	return scanSetting(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+settingCols+` FROM commission_setting WHERE id = $1`, id))
}

func (r *commissionSettingRepoPG) GetByDoctor(ctx context.Context, doctorID uuid.UUID) (*CommissionSetting, error) {
	return scanSetting(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+settingCols+` FROM commission_setting WHERE doctor_id = $1`, doctorID))
}

func (r *commissionSettingRepoPG) Update(ctx context.Context, s *CommissionSetting) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE commission_setting SET doctor_id=$2, rate=$3, kind=$4, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.DoctorID, s.Rate, s.Kind)
	return err
}

func (r *commissionSettingRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM commission_setting WHERE id = $1`, id)
	return err
}

var settingSearchParams = map[string]db.SearchParamConfig{
	"doctor_id": {Type: db.SearchParamToken, Column: "doctor_id"},
	"kind":      {Type: db.SearchParamToken, Column: "kind"},
}

func (r *commissionSettingRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*CommissionSetting, int, error) {
	qb := db.NewSearchQuery("commission_setting", settingCols)
	qb.ApplyParams(params, settingSearchParams)
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
	var items []*CommissionSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
