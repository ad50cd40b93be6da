package patient

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Repository over a pgx pool. The schema comes from the
// SQL migrations applied by db.Migrator.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn() queryable { return r.pool }

const patientCols = `cpf, full_name, age, appointment_date, appointment_time, created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.CPF, &p.FullName, &p.Age, &p.AppointmentDate, &p.AppointmentTime, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	tag, err := r.conn().Exec(ctx, `
		INSERT INTO patients (cpf, full_name, age, appointment_date, appointment_time)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (cpf) DO NOTHING`,
		p.CPF, p.FullName, p.Age, p.AppointmentDate, p.AppointmentTime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *repoPG) GetByCPF(ctx context.Context, cpf string) (*Patient, error) {
	p, err := r.scanPatient(r.conn().QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE cpf = $1`, cpf))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn().Exec(ctx, `
		UPDATE patients SET full_name=$2, age=$3, appointment_date=$4, appointment_time=$5, updated_at=NOW()
		WHERE cpf = $1`,
		p.CPF, p.FullName, p.Age, p.AppointmentDate, p.AppointmentTime)
	return err
}

func (r *repoPG) Delete(ctx context.Context, cpf string) error {
	_, err := r.conn().Exec(ctx, `DELETE FROM patients WHERE cpf = $1`, cpf)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn().QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientCols + ` FROM patients ORDER BY appointment_date, appointment_time, cpf`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.conn().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
