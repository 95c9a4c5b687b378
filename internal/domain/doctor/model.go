package doctor

// Doctor maps to the doctors table. Exactly one Doctor may exist per owning
// user; visibility to patients is gated by the admin-controlled approval
// flag.
type Doctor struct {
	ID             int64   `db:"id" json:"id"`
	UserID         int64   `db:"user_id" json:"user_id"`
	Specialization string  `db:"specialization" json:"specialization"`
	Experience     int     `db:"experience" json:"experience"`
	Fees           float64 `db:"fees" json:"fees"`
	Approved       bool    `db:"approved" json:"approved"`

	// User carries the owning user's public fields when loaded via a join.
	User *OwnerUser `json:"user,omitempty"`
}

// OwnerUser is the public shape of the user owning a doctor profile.
type OwnerUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProfileInput holds the doctor-mutable profile fields.
type ProfileInput struct {
	Specialization string  `json:"specialization"`
	Experience     int     `json:"experience"`
	Fees           float64 `json:"fees"`
}
