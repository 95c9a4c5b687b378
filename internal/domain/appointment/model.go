package appointment

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusRejected:  true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is one of the known appointment statuses.
func ValidStatus(s string) bool { return validStatuses[s] }

// Appointment links one patient to one doctor for a requested date and
// free-text time slot. Records are never deleted; cancellation is a status.
type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	DoctorID  int64     `db:"doctor_id" json:"doctor_id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	Date      time.Time `db:"date" json:"date"`
	TimeSlot  string    `db:"time_slot" json:"time_slot"`
	Status    string    `db:"status" json:"status"`

	// Doctor and Patient carry display data when loaded via a join.
	Doctor  *DoctorRef  `json:"doctor,omitempty"`
	Patient *PatientRef `json:"patient,omitempty"`
}

// DoctorRef is the display shape of the booked doctor.
type DoctorRef struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Fees           float64 `json:"fees"`
}

// PatientRef is the display shape of the booking patient.
type PatientRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
