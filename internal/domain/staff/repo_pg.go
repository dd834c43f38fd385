package staff

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

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepoPG{pool: pool}
}

const doctorCols = `id, name, email, phone, specialty, commission_rate, status, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.Specialty,
		&d.CommissionRate, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO doctor (id, name, email, phone, specialty, commission_rate, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.Name, d.Email, d.Phone, d.Specialty, d.CommissionRate, d.Status)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE doctor SET name=$2, email=$3, phone=$4, specialty=$5,
			commission_rate=$6, status=$7, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Email, d.Phone, d.Specialty, d.CommissionRate, d.Status)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

var doctorSearchParams = map[string]db.SearchParamConfig{
	"name":      {Type: db.SearchParamString, Column: "name"},
	"email":     {Type: db.SearchParamToken, Column: "email"},
	"specialty": {Type: db.SearchParamToken, Column: "specialty"},
	"status":    {Type: db.SearchParamToken, Column: "status"},
}

func (r *doctorRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	qb := db.NewSearchQuery("doctor", doctorCols)
	qb.ApplyParams(params, doctorSearchParams)
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
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

// =========== User Repository ===========

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userCols = `id, name, email, role_id, status, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO app_user (id, name, email, role_id, status)
		VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Name, u.Email, u.RoleID, u.Status)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE lower(email) = lower($1)`, email))
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE app_user SET name=$2, email=$3, role_id=$4, status=$5, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.RoleID, u.Status)
	return err
}

func (r *userRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE app_user SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	return err
}

func (r *userRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	return err
}

var userSearchParams = map[string]db.SearchParamConfig{
	"name":    {Type: db.SearchParamString, Column: "name"},
	"email":   {Type: db.SearchParamToken, Column: "email"},
	"role_id": {Type: db.SearchParamRef, Column: "role_id"},
	"status":  {Type: db.SearchParamToken, Column: "status"},
}

func (r *userRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*User, int, error) {
	qb := db.NewSearchQuery("app_user", userCols)
	qb.ApplyParams(params, userSearchParams)
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
	var items []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, nil
}

// =========== Role Repository ===========

type roleRepoPG struct{ pool *pgxpool.Pool }

func NewRoleRepoPG(pool *pgxpool.Pool) RoleRepository {
	return &roleRepoPG{pool: pool}
}

const roleCols = `id, name, permissions, created_at, updated_at`

func scanRole(row pgx.Row) (*Role, error) {
	var rl Role
	err := row.Scan(&rl.ID, &rl.Name, &rl.Permissions, &rl.CreatedAt, &rl.UpdatedAt)
	return &rl, err
}

func (r *roleRepoPG) Create(ctx context.Context, rl *Role) error {
	rl.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO role (id, name, permissions)
		VALUES ($1,$2,$3)`,
		rl.ID, rl.Name, rl.Permissions)
	return err
}

func (r *roleRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	return scanRole(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+roleCols+` FROM role WHERE id = $1`, id))
}

func (r *roleRepoPG) Update(ctx context.Context, rl *Role) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE role SET name=$2, permissions=$3, updated_at=NOW()
		WHERE id = $1`,
		rl.ID, rl.Name, rl.Permissions)
	return err
}

func (r *roleRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM role WHERE id = $1`, id)
	return err
}

var roleSearchParams = map[string]db.SearchParamConfig{
	"name": {Type: db.SearchParamString, Column: "name"},
}

func (r *roleRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Role, int, error) {
	qb := db.NewSearchQuery("role", roleCols)
	qb.ApplyParams(params, roleSearchParams)
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
	var items []*Role
	for rows.Next() {
		rl, err := scanRole(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rl)
	}
	return items, total, nil
}
