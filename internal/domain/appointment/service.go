package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/medconnect/medconnect/internal/domain/doctor"
	"github.com/medconnect/medconnect/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("appointment not found")
	ErrForbidden = errors.New("not allowed")
	// ErrDoctorNotFound covers both a missing doctor id and an unapproved
	// one; callers cannot tell the two apart.
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrInvalidStatus  = errors.New("invalid status")
	ErrValidation     = errors.New("invalid input")
)

// DoctorDirectory is the slice of the doctor service the ledger needs.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id int64) (*doctor.Doctor, error)
	GetByUserID(ctx context.Context, userID int64) (*doctor.Doctor, error)
}

type Service struct {
	appts   AppointmentRepository
	doctors DoctorDirectory
	tx      db.TxRunner
}

func NewService(appts AppointmentRepository, doctors DoctorDirectory, tx db.TxRunner) *Service {
	return &Service{appts: appts, doctors: doctors, tx: tx}
}

// Book creates a pending appointment for the caller against an approved
// doctor. Unapproved and nonexistent doctors yield the same error. Slot
// collisions are not checked; identical bookings may coexist. The doctor
// check and the insert run in one transaction.
func (s *Service) Book(ctx context.Context, patientID, doctorID int64, date time.Time, timeSlot string) (*Appointment, error) {
	if strings.TrimSpace(timeSlot) == "" {
		return nil, fmt.Errorf("%w: time slot is required", ErrValidation)
	}

	var out *Appointment
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		d, err := s.doctors.GetByID(ctx, doctorID)
		if errors.Is(err, doctor.ErrNotFound) {
			return ErrDoctorNotFound
		}
		if err != nil {
			return err
		}
		if !d.Approved {
			return ErrDoctorNotFound
		}

		a := &Appointment{
			DoctorID:  doctorID,
			PatientID: patientID,
			Date:      date,
			TimeSlot:  timeSlot,
			Status:    StatusPending,
		}
		if err := s.appts.Create(ctx, a); err != nil {
			return err
		}
		out, err = s.appts.GetByID(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus updates an appointment's status on behalf of the doctor who
// owns it. Ownership runs through the doctor record: the appointment's
// doctor must be owned by the calling user. Any known status value is
// accepted; transitions are not restricted beyond ownership.
func (s *Service) SetStatus(ctx context.Context, doctorUserID, appointmentID int64, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.appts.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		d, err := s.doctors.GetByID(ctx, a.DoctorID)
		if errors.Is(err, doctor.ErrNotFound) {
			// dangling doctor reference
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if d.UserID != doctorUserID {
			return ErrForbidden
		}
		return s.appts.UpdateStatus(ctx, appointmentID, status)
	})
}

// Cancel sets the caller's appointment to cancelled. The overwrite is
// unconditional: cancelling an already-rejected appointment succeeds.
func (s *Service) Cancel(ctx context.Context, patientID, appointmentID int64) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		a, err := s.appts.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if a.PatientID != patientID {
			return ErrForbidden
		}
		return s.appts.UpdateStatus(ctx, appointmentID, StatusCancelled)
	})
}

// ListForDoctor returns the appointments booked against the caller's own
// doctor record. Callers without a doctor profile get ErrNotFound.
func (s *Service) ListForDoctor(ctx context.Context, doctorUserID int64) ([]*Appointment, error) {
	d, err := s.doctors.GetByUserID(ctx, doctorUserID)
	if errors.Is(err, doctor.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.appts.ListByDoctor(ctx, d.ID)
}

// ListForPatient returns the caller's own bookings.
func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return s.appts.ListByPatient(ctx, patientID)
}

// ListAll returns every appointment, unfiltered.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListAll(ctx, limit, offset)
}
