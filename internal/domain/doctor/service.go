package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medconnect/medconnect/internal/platform/db"
)

var (
	ErrNotFound   = errors.New("doctor not found")
	ErrValidation = errors.New("invalid input")
)

type Service struct {
	doctors DoctorRepository
	tx      db.TxRunner
}

func NewService(doctors DoctorRepository, tx db.TxRunner) *Service {
	return &Service{doctors: doctors, tx: tx}
}

// Upsert creates the caller's doctor profile, or overwrites its three
// mutable fields if one already exists. The approval flag is never touched
// here: a fresh profile starts unapproved and an existing one keeps its
// state. The lookup and write run in one transaction.
func (s *Service) Upsert(ctx context.Context, userID int64, in ProfileInput) (*Doctor, error) {
	if strings.TrimSpace(in.Specialization) == "" {
		return nil, fmt.Errorf("%w: specialization is required", ErrValidation)
	}
	if in.Experience < 0 {
		return nil, fmt.Errorf("%w: experience must be non-negative", ErrValidation)
	}
	if in.Fees < 0 {
		return nil, fmt.Errorf("%w: fees must be non-negative", ErrValidation)
	}

	var out *Doctor
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.doctors.GetByUserID(ctx, userID)
		if errors.Is(err, ErrNotFound) {
			d := &Doctor{
				UserID:         userID,
				Specialization: in.Specialization,
				Experience:     in.Experience,
				Fees:           in.Fees,
			}
			if err := s.doctors.Create(ctx, d); err != nil {
				return err
			}
			out, err = s.doctors.GetByID(ctx, d.ID)
			return err
		}
		if err != nil {
			return err
		}

		existing.Specialization = in.Specialization
		existing.Experience = in.Experience
		existing.Fees = in.Fees
		if err := s.doctors.UpdateProfile(ctx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Approve sets the approval flag. Approving an already-approved doctor is
// a no-op success.
func (s *Service) Approve(ctx context.Context, doctorID int64) error {
	found, err := s.doctors.SetApproved(ctx, doctorID, true)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

// GetByUserID returns the doctor profile owned by the given user.
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

// GetByID returns a doctor profile by its own id.
func (s *Service) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// ListApproved returns every approved doctor. No authentication required.
func (s *Service) ListApproved(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.ListApproved(ctx)
}

// ListAll returns every doctor regardless of approval.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.ListAll(ctx, limit, offset)
}
