package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository is the Driver Assignment Ledger.
type AssignmentRepository interface {
	// CountActive returns the number of non-terminal assignments of a driver.
	CountActive(ctx context.Context, driverID kernel.UUID) (int, error)

	// AddIfUnderCapacity inserts the assignment only while the driver holds
	// fewer than limit active assignments, as one conditional statement.
	// It returns a CapacityExceededError when nothing was inserted.
	AddIfUnderCapacity(ctx context.Context, aggregate *assignment.Assignment, limit int) error

	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)
	Update(ctx context.Context, aggregate *assignment.Assignment) error
}
