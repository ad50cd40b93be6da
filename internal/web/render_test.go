package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinica/agenda/internal/domain/patient"
	"github.com/clinica/agenda/pkg/pagination"
)

func render(t *testing.T, name string, data interface{}) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data, nil); err != nil {
		t.Fatalf("Render(%q) error: %v", name, err)
	}
	return buf.String()
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	if err := r.Render(&bytes.Buffer{}, "missing", nil, nil); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderer_CreateForm(t *testing.T) {
	out := render(t, "createPaciente", patient.FormView{
		Error:    "CPF inválido.",
		Paciente: patient.Form{CPF: "123", Name: `<script>alert(1)</script>`, Age: "5", Date: "2026-01-02", Time: "07:00"},
	})

	for _, want := range []string{
		`action="/pacientes/criar"`,
		`<div class="error">CPF inválido.</div>`,
		`value="123"`,
		`value="2026-01-02"`,
		`value="07:00"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("expected name to be escaped")
	}
}

func TestRenderer_UpdateFormReadonlyCPF(t *testing.T) {
	out := render(t, "updatePaciente", patient.FormView{Paciente: patient.Form{CPF: "11144477735"}})

	if !strings.Contains(out, `value="11144477735" readonly`) {
		t.Error("expected readonly CPF input")
	}
	if !strings.Contains(out, `action="/pacientes/atualizar"`) {
		t.Error("expected form to post to /pacientes/atualizar")
	}
	if strings.Contains(out, `class="error"`) {
		t.Error("expected no error block without an error")
	}
}

func TestRenderer_List(t *testing.T) {
	items := []*patient.Patient{{
		CPF:             "11144477735",
		FullName:        "Maria da Silva",
		Age:             42,
		AppointmentDate: time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "08:30",
	}}
	out := render(t, "pacientes", patient.ListView{Pacientes: items, Total: 3, Page: pagination.Params{Limit: 1, Offset: 1}})

	for _, want := range []string{
		"111.444.777-35",
		"Maria da Silva",
		"2026-11-03",
		"08:30",
		`href="/pacientes/editar/11144477735"`,
		`href="/pacientes/deletar/11144477735"`,
		"Anterior",
		"Próxima",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_EmptyList(t *testing.T) {
	out := render(t, "pacientes", patient.ListView{})
	if !strings.Contains(out, "Nenhum paciente cadastrado.") {
		t.Error("expected empty-state message")
	}
}

func TestRegister_HomeAndStatic(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}
	e := echo.New()
	Register(e, r)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Agenda de Pacientes") {
		t.Error("expected landing page")
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/style.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /static/style.css expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("expected text/css, got %q", ct)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing asset, got %d", rec.Code)
	}
}
