package domain

import "time"

// LinkJobStatus is the lifecycle state of a pending link job.
type LinkJobStatus string

const (
	LinkJobPending LinkJobStatus = "pending"
	LinkJobDone    LinkJobStatus = "done"
	LinkJobFailed  LinkJobStatus = "failed"
)

// LinkJob records a guest-to-account booking link that could not be applied
// inline after registration. The upstream link-all call is idempotent (it
// matches on email), so a job can be retried safely until it sticks or the
// attempt budget runs out.
type LinkJob struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	UserID    string        `json:"userId"`
	Attempts  int           `json:"attempts"`
	Status    LinkJobStatus `json:"status"`
	LastError string        `json:"lastError,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
