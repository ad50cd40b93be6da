package patient

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and storage layout of AppointmentDate.
const DateLayout = "2006-01-02"

// MaxAge bounds the accepted age; it also keeps values inside a 32-bit
// INTEGER column.
const MaxAge = 150

// Patient maps to the patients table. It is the single definition of the
// schema: gorm reads the gorm tags, the SQL migration mirrors the db tags.
type Patient struct {
	CPF             string    `gorm:"column:cpf;primaryKey;size:11" db:"cpf" json:"cpf"`
	FullName        string    `gorm:"column:full_name;not null" db:"full_name" json:"full_name"`
	Age             int       `gorm:"column:age;not null" db:"age" json:"age"`
	AppointmentDate time.Time `gorm:"column:appointment_date;type:date;not null" db:"appointment_date" json:"appointment_date"`
	AppointmentTime string    `gorm:"column:appointment_time;size:5;not null" db:"appointment_time" json:"appointment_time"`
	CreatedAt       time.Time `gorm:"column:created_at" db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" db:"updated_at" json:"updated_at"`
}

// TableName pins the gorm table name to the one used by the SQL migration.
func (Patient) TableName() string { return "patients" }

// FormattedCPF returns the CPF with its usual punctuation.
func (p *Patient) FormattedCPF() string { return FormatCPF(p.CPF) }

// Date returns AppointmentDate as YYYY-MM-DD.
func (p *Patient) Date() string { return p.AppointmentDate.Format(DateLayout) }

// Form carries the raw values submitted by the create and edit pages. The
// values are kept verbatim so a rejected submission can be shown back to
// the user unchanged.
type Form struct {
	CPF  string `form:"cpf" json:"cpf"`
	Name string `form:"nome" json:"nome"`
	Age  string `form:"idade" json:"idade"`
	Date string `form:"diaMarcado" json:"diaMarcado"`
	Time string `form:"horaMarcada" json:"horaMarcada"`
}

// FormFromPatient fills a form with a stored record for the edit page.
func FormFromPatient(p *Patient) Form {
	return Form{
		CPF:  p.CPF,
		Name: p.FullName,
		Age:  strconv.Itoa(p.Age),
		Date: p.Date(),
		Time: p.AppointmentTime,
	}
}

// Validate checks the form in a fixed order and reports the first failing
// field. It has no side effects.
func (f Form) Validate() error {
	if !ValidCPF(f.CPF) {
		return &ValidationError{Field: FieldCPF, Message: "CPF inválido."}
	}
	if !ValidTime(f.Time) {
		return &ValidationError{Field: FieldTime, Message: "Hora inválida. Deve estar no formato de 24 horas (HH:MM)."}
	}
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: FieldName, Message: "Nome completo é obrigatório."}
	}
	if age, err := strconv.Atoi(strings.TrimSpace(f.Age)); err != nil || age < 0 || age > MaxAge {
		return &ValidationError{Field: FieldAge, Message: "Idade inválida."}
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(f.Date)); err != nil {
		return &ValidationError{Field: FieldDate, Message: "Data inválida. Use o formato AAAA-MM-DD."}
	}
	return nil
}

// Record validates the form and converts it into a Patient keyed by the
// cleaned CPF.
func (f Form) Record() (*Patient, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	age, _ := strconv.Atoi(strings.TrimSpace(f.Age))
	date, _ := time.Parse(DateLayout, strings.TrimSpace(f.Date))
	return &Patient{
		CPF:             CleanCPF(f.CPF),
		FullName:        strings.TrimSpace(f.Name),
		Age:             age,
		AppointmentDate: date,
		AppointmentTime: f.Time,
	}, nil
}
