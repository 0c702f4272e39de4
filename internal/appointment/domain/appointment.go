package domain

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusPending, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

type Appointment struct {
	ID                 string    `bson:"_id,omitempty" json:"id"`
	PatientName        string    `bson:"patient_name" json:"patientName"`
	Physician          string    `bson:"physician" json:"physician"`
	Schedule           time.Time `bson:"schedule" json:"schedule"`
	Status             Status    `bson:"status" json:"status"`
	Reason             string    `bson:"reason" json:"reason"`
	CancellationReason string    `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"-"`
	UpdatedAt          time.Time `bson:"updated_at" json:"-"`
}
