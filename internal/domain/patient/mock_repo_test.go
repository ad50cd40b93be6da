package patient

import (
	"context"
	"sort"
	"sync"
	"time"
)

// mockRepo is an in-memory Repository. failWith, when set, is returned by
// every call.
type mockRepo struct {
	mu       sync.Mutex
	rows     map[string]*Patient
	failWith error
	writes   int
}

func newMockRepo() *mockRepo {
	return &mockRepo{rows: make(map[string]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.rows[p.CPF]; ok {
		return ErrDuplicate
	}
	cp := *p
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.rows[p.CPF] = &cp
	m.writes++
	return nil
}

func (m *mockRepo) GetByCPF(_ context.Context, cpf string) (*Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.rows[cpf]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	existing, ok := m.rows[p.CPF]
	if !ok {
		return nil
	}
	existing.FullName = p.FullName
	existing.Age = p.Age
	existing.AppointmentDate = p.AppointmentDate
	existing.AppointmentTime = p.AppointmentTime
	existing.UpdatedAt = time.Now()
	m.writes++
	return nil
}

func (m *mockRepo) Delete(_ context.Context, cpf string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	delete(m.rows, cpf)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, 0, m.failWith
	}
	items := make([]*Patient, 0, len(m.rows))
	for _, p := range m.rows {
		cp := *p
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].AppointmentDate.Equal(items[j].AppointmentDate) {
			return items[i].AppointmentDate.Before(items[j].AppointmentDate)
		}
		return items[i].AppointmentTime < items[j].AppointmentTime
	})
	total := len(items)
	if limit > 0 {
		if offset > total {
			offset = total
		}
		end := offset + limit
		if end > total {
			end = total
		}
		items = items[offset:end]
	}
	return items, total, nil
}

func (m *mockRepo) Ping(context.Context) error {
	return m.failWith
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: make(map[string]int)}
}

func (r *countingRecorder) ObserveWrite(op, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[op+"/"+outcome]++
}

func (r *countingRecorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}
