package leave

import (
	"time"

	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
)

type Category string

const (
	CategoryCasual    Category = "casual"
	CategorySick      Category = "sick"
	CategoryEarned    Category = "earned"
	CategoryUnpaid    Category = "unpaid"
	CategoryMaternity Category = "maternity"
	CategoryPaternity Category = "paternity"
	CategoryHalfDay   Category = "half-day"
)

var AllCategories = []Category{
	CategoryCasual, CategorySick, CategoryEarned, CategoryUnpaid,
	CategoryMaternity, CategoryPaternity, CategoryHalfDay,
}

func (c Category) IsValid() bool {
	for _, cat := range AllCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// LedgerCategory is the balance a category draws from: half days are taken from casual leave.
func (c Category) LedgerCategory() Category {
	if c == CategoryHalfDay {
		return CategoryCasual
	}
	return c
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

var (
	ErrNotFound        = errors.WithMessage(core.ErrNotFound, "leave request")
	ErrNotPending      = errors.New("leave request has already been decided")
	ErrInvalidDecision = errors.New("leave request can only be approved or rejected")
)

// Request is a leave application.
type Request struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	Category    Category   `json:"category"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"` // equals StartDate for half days
	Duration    float64    `json:"duration"`
	Reason      string     `json:"reason"`
	Status      Status     `json:"status"`
	Attachment  string     `json:"attachment,omitempty"`
	DecidedBy   string     `json:"decided_by,omitempty"`
	Remarks     string     `json:"remarks,omitempty"`
	CreatedAt   time.Time  `json:"created_at"` // UTC
	UpdatedAt   time.Time  `json:"updated_at"` // UTC
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// Transition moves a pending request to approved or rejected. Decided requests are immutable.
func (r *Request) Transition(to Status, d Decision, now time.Time) error {
	if r.Status.IsTerminal() {
		return ErrNotPending
	}
	if !to.IsTerminal() {
		return ErrInvalidDecision
	}
	r.Status = to
	r.DecidedBy = core.CleanString(d.DecidedBy)
	r.Remarks = core.CleanString(d.Remarks)
	r.DecidedAt = &now
	r.UpdatedAt = now
	return nil
}

// Overlaps reports whether both requests share at least one calendar day.
func (r Request) Overlaps(start, end time.Time) bool {
	return !r.EndDate.Before(start) && !r.StartDate.After(end)
}

// NewRequest contains information needed to submit a leave Request.
type NewRequest struct {
	RequesterID string   `json:"requester_id" validate:"required"`
	Category    Category `json:"category" validate:"required,leavecategory"`
	StartDate   string   `json:"start_date" validate:"required,isodate"`
	EndDate     string   `json:"end_date" validate:"omitempty,isodate"`
	Reason      string   `json:"reason" validate:"required"`
	Attachment  string   `json:"attachment" validate:"omitempty,max=255"`
}

func (nr *NewRequest) Clean() {
	nr.RequesterID = core.CleanString(nr.RequesterID)
	nr.Category = Category(core.CleanString(string(nr.Category), true /* lower */))
	nr.StartDate = core.CleanString(nr.StartDate)
	nr.EndDate = core.CleanString(nr.EndDate)
	nr.Reason = core.CleanString(nr.Reason)
	nr.Attachment = core.CleanString(nr.Attachment)
}

// Decision carries the approver's details.
type Decision struct {
	DecidedBy string `json:"decided_by"`
	Remarks   string `json:"remarks" validate:"max=500"`
}
