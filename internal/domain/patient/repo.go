package patient

import "context"

// Repository is the persistence contract for patient records. The CPF
// arguments are always already cleaned to 11 digits.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByCPF(ctx context.Context, cpf string) (*Patient, error)
	// Update rewrites every column except the CPF. Updating a CPF that has
	// no row writes nothing and is not an error.
	Update(ctx context.Context, p *Patient) error
	// Delete is idempotent.
	Delete(ctx context.Context, cpf string) error
	// List returns records ordered by appointment date and time. A limit
	// of zero or less returns every record.
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Ping(ctx context.Context) error
}
