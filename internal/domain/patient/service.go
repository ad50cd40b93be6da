package patient

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Outcomes passed to Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Recorder receives one observation per write attempt.
type Recorder interface {
	ObserveWrite(op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveWrite(string, string) {}

// Generic texts shown for store failures; the cause is only logged.
const (
	msgCreateFailed = "Erro ao criar paciente."
	msgUpdateFailed = "Erro ao atualizar paciente."
	msgReadFailed   = "Erro ao buscar paciente."
	msgListFailed   = "Erro ao buscar pacientes."
	msgDeleteFailed = "Erro ao deletar paciente."
)

type Service struct {
	repo    Repository
	logger  zerolog.Logger
	metrics Recorder
}

func NewService(repo Repository, logger zerolog.Logger, rec Recorder) *Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Service{repo: repo, logger: logger.With().Str("component", "patient").Logger(), metrics: rec}
}

// Create validates the form and inserts a new record. Validation errors
// are returned before the repository is touched.
func (s *Service) Create(ctx context.Context, f Form) (*Patient, error) {
	p, err := f.Record()
	if err != nil {
		s.metrics.ObserveWrite("create", OutcomeInvalid)
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicate) {
			s.metrics.ObserveWrite("create", OutcomeConflict)
			return nil, err
		}
		s.metrics.ObserveWrite("create", OutcomeError)
		return nil, s.storeError("create", msgCreateFailed, err, p.CPF)
	}
	s.metrics.ObserveWrite("create", OutcomeOK)
	s.logger.Info().Str("cpf", maskCPF(p.CPF)).Msg("patient created")
	return p, nil
}

// Update validates the form and rewrites every field except the CPF.
func (s *Service) Update(ctx context.Context, f Form) (*Patient, error) {
	p, err := f.Record()
	if err != nil {
		s.metrics.ObserveWrite("update", OutcomeInvalid)
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.metrics.ObserveWrite("update", OutcomeError)
		return nil, s.storeError("update", msgUpdateFailed, err, p.CPF)
	}
	s.metrics.ObserveWrite("update", OutcomeOK)
	s.logger.Info().Str("cpf", maskCPF(p.CPF)).Msg("patient updated")
	return p, nil
}

// Get looks a record up by CPF, ignoring formatting characters.
func (s *Service) Get(ctx context.Context, rawCPF string) (*Patient, error) {
	p, err := s.repo.GetByCPF(ctx, CleanCPF(rawCPF))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, s.storeError("get", msgReadFailed, err, CleanCPF(rawCPF))
	}
	return p, nil
}

// Delete removes the record if present. Deleting an unknown CPF succeeds.
func (s *Service) Delete(ctx context.Context, rawCPF string) error {
	cpf := CleanCPF(rawCPF)
	if err := s.repo.Delete(ctx, cpf); err != nil {
		s.metrics.ObserveWrite("delete", OutcomeError)
		return s.storeError("delete", msgDeleteFailed, err, cpf)
	}
	s.metrics.ObserveWrite("delete", OutcomeOK)
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	items, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, s.storeError("list", msgListFailed, err, "")
	}
	return items, total, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) storeError(op, msg string, err error, cpf string) error {
	evt := s.logger.Error().Err(err).Str("op", op)
	if cpf != "" {
		evt = evt.Str("cpf", maskCPF(cpf))
	}
	evt.Msg("patient store failure")
	return &StoreError{Op: op, Message: msg, Err: err}
}

// maskCPF keeps the first three and the check digits so log lines stay
// correlatable without carrying the full identifier.
func maskCPF(cpf string) string {
	if len(cpf) != cpfLength {
		return "***"
	}
	return cpf[:3] + ".***.***-" + cpf[9:]
}
