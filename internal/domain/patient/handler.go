package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinica/agenda/pkg/pagination"
)

// Template names rendered by the handler.
const (
	viewList   = "pacientes"
	viewCreate = "createPaciente"
	viewUpdate = "updatePaciente"
)

const listPath = "/pacientes"

// FormView is the data passed to the create and edit templates.
type FormView struct {
	Error    string
	Paciente Form
}

// ListView is the data passed to the listing template.
type ListView struct {
	Pacientes []*Patient
	Total     int
	Page      pagination.Params
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group(listPath)
	g.GET("", h.List)
	g.GET("/novo", h.New)
	g.POST("/criar", h.Create)
	g.GET("/editar/:cpf", h.Edit)
	g.POST("/atualizar", h.Update)
	g.GET("/deletar/:cpf", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return c.String(http.StatusInternalServerError, publicMessage(err, msgListFailed))
	}
	return c.Render(http.StatusOK, viewList, ListView{Pacientes: items, Total: total, Page: pg})
}

func (h *Handler) New(c echo.Context) error {
	return c.Render(http.StatusOK, viewCreate, FormView{})
}

func (h *Handler) Create(c echo.Context) error {
	var f Form
	if err := c.Bind(&f); err != nil {
		return c.Render(http.StatusBadRequest, viewCreate, FormView{Error: "Dados do formulário inválidos.", Paciente: f})
	}
	if _, err := h.svc.Create(c.Request().Context(), f); err != nil {
		return c.Render(writeStatus(err), viewCreate, FormView{Error: publicMessage(err, msgCreateFailed), Paciente: f})
	}
	return c.Redirect(http.StatusFound, listPath)
}

func (h *Handler) Edit(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("cpf"))
	if errors.Is(err, ErrNotFound) {
		return c.String(http.StatusNotFound, "Paciente não encontrado.")
	}
	if err != nil {
		return c.String(http.StatusInternalServerError, publicMessage(err, msgReadFailed))
	}
	return c.Render(http.StatusOK, viewUpdate, FormView{Paciente: FormFromPatient(p)})
}

func (h *Handler) Update(c echo.Context) error {
	var f Form
	if err := c.Bind(&f); err != nil {
		return c.Render(http.StatusBadRequest, viewUpdate, FormView{Error: "Dados do formulário inválidos.", Paciente: f})
	}
	if _, err := h.svc.Update(c.Request().Context(), f); err != nil {
		return c.Render(writeStatus(err), viewUpdate, FormView{Error: publicMessage(err, msgUpdateFailed), Paciente: f})
	}
	return c.Redirect(http.StatusFound, listPath)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("cpf")); err != nil {
		return c.String(http.StatusInternalServerError, publicMessage(err, msgDeleteFailed))
	}
	return c.Redirect(http.StatusFound, listPath)
}

func writeStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, ErrDuplicate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage picks the text shown to the user. Store causes never leak.
func publicMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ErrDuplicate) {
		return "CPF já cadastrado."
	}
	var se *StoreError
	if errors.As(err, &se) {
		return se.Message
	}
	return fallback
}
