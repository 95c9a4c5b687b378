package admin

import "context"

// Stats holds the aggregate counts shown on the admin dashboard.
type Stats struct {
	Users        int `json:"users"`
	Doctors      int `json:"doctors"`
	Appointments int `json:"appointments"`
}

type StatsRepository interface {
	Counts(ctx context.Context) (Stats, error)
}
