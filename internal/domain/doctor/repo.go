package doctor

import (
	"context"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*Doctor, error)
	// UpdateProfile overwrites specialization, experience, and fees in
	// place; the approval flag is untouched.
	UpdateProfile(ctx context.Context, d *Doctor) error
	// SetApproved flips the approval flag and reports whether the row
	// exists.
	SetApproved(ctx context.Context, id int64, approved bool) (bool, error)
	ListApproved(ctx context.Context) ([]*Doctor, error)
	ListAll(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}
