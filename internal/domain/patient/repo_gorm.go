package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repoGorm struct{ db *gorm.DB }

// NewRepoGorm returns a Repository backed by gorm. The caller owns the
// *gorm.DB and must have migrated the Patient model.
func NewRepoGorm(db *gorm.DB) Repository { return &repoGorm{db: db} }

// AutoMigrate creates or updates the patients table for gorm backends.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Patient{}); err != nil {
		return fmt.Errorf("migrate patients: %w", err)
	}
	return nil
}

func (r *repoGorm) Create(ctx context.Context, p *Patient) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "cpf"}}, DoNothing: true}).
		Create(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *repoGorm) GetByCPF(ctx context.Context, cpf string) (*Patient, error) {
	var p Patient
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoGorm) Update(ctx context.Context, p *Patient) error {
	// A map forces zero values such as age 0 to be written.
	return r.db.WithContext(ctx).Model(&Patient{}).
		Where("cpf = ?", p.CPF).
		Updates(map[string]interface{}{
			"full_name":        p.FullName,
			"age":              p.Age,
			"appointment_date": p.AppointmentDate,
			"appointment_time": p.AppointmentTime,
			"updated_at":       time.Now(),
		}).Error
}

func (r *repoGorm) Delete(ctx context.Context, cpf string) error {
	return r.db.WithContext(ctx).Where("cpf = ?", cpf).Delete(&Patient{}).Error
}

func (r *repoGorm) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Patient{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := r.db.WithContext(ctx).Order("appointment_date ASC").Order("appointment_time ASC").Order("cpf ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var items []*Patient
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

func (r *repoGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
