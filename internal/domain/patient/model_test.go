package patient

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{CPF: "111.444.777-35", Name: "Maria da Silva", Age: "42", Date: "2026-11-03", Time: "08:30"}
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Form)
		field  string
	}{
		{"valid", func(f *Form) {}, ""},
		{"bad cpf", func(f *Form) { f.CPF = "111.444.777-36" }, FieldCPF},
		{"bad time", func(f *Form) { f.Time = "8:30" }, FieldTime},
		{"blank name", func(f *Form) { f.Name = "   " }, FieldName},
		{"non-numeric age", func(f *Form) { f.Age = "quarenta" }, FieldAge},
		{"negative age", func(f *Form) { f.Age = "-1" }, FieldAge},
		{"age above limit", func(f *Form) { f.Age = "151" }, FieldAge},
		{"age overflowing int32", func(f *Form) { f.Age = "9223372036854775807" }, FieldAge},
		{"age at limit", func(f *Form) { f.Age = "150" }, ""},
		{"age zero", func(f *Form) { f.Age = "0" }, ""},
		{"bad date", func(f *Form) { f.Date = "03/11/2026" }, FieldDate},
		{"impossible date", func(f *Form) { f.Date = "2026-02-30" }, FieldDate},
		{"cpf checked before time", func(f *Form) { f.CPF = "1"; f.Time = "99:99" }, FieldCPF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.NotEmpty(t, ve.Message)
		})
	}
}

func TestForm_Record(t *testing.T) {
	f := validForm()
	f.Name = "  Maria da Silva  "
	f.Age = " 42 "

	p, err := f.Record()
	require.NoError(t, err)
	assert.Equal(t, "11144477735", p.CPF)
	assert.Equal(t, "Maria da Silva", p.FullName)
	assert.Equal(t, 42, p.Age)
	assert.Equal(t, time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC), p.AppointmentDate)
	assert.Equal(t, "08:30", p.AppointmentTime)

	// The form itself keeps the raw submission.
	assert.Equal(t, "111.444.777-35", f.CPF)
}

func TestForm_RecordInvalid(t *testing.T) {
	f := validForm()
	f.Time = "24:00"
	p, err := f.Record()
	assert.Nil(t, p)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, FieldTime, ve.Field)
}

func TestFormFromPatient(t *testing.T) {
	p := &Patient{
		CPF:             "52998224725",
		FullName:        "Carlos Pereira",
		Age:             0,
		AppointmentDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "09:15",
	}
	f := FormFromPatient(p)
	assert.Equal(t, Form{CPF: "52998224725", Name: "Carlos Pereira", Age: "0", Date: "2026-12-01", Time: "09:15"}, f)
	assert.NoError(t, f.Validate())
	assert.Equal(t, "529.982.247-25", p.FormattedCPF())
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := &StoreError{Op: "create", Message: "Erro ao criar paciente.", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create")
}
