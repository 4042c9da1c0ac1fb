package leave

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/muhammadsami84343/ecampus/core"
	"github.com/muhammadsami84343/ecampus/core/calendar"
	"github.com/muhammadsami84343/ecampus/core/query"
)

const DefaultReasonMinLength = 10

var nowFunc = time.Now // mockable

type (
	Repository interface {
		CreateRequest(ctx context.Context, req Request) (Request, error)
		GetRequest(ctx context.Context, id string) (Request, error)
		// QueryRequests returns every request in creation order.
		QueryRequests(ctx context.Context) ([]Request, error)
		// UpdateRequest applies fn to the stored request and saves it, serialised with other updates of the same id.
		// Nothing is saved when fn fails.
		UpdateRequest(ctx context.Context, id string, fn func(req *Request) error) (Request, error)
	}

	Service interface {
		Submit(ctx context.Context, nr NewRequest) (Request, error)
		Approve(ctx context.Context, id string, d Decision) (Request, error)
		Reject(ctx context.Context, id string, d Decision) (Request, error)
		Get(ctx context.Context, id string) (Request, error)
		Query(ctx context.Context, q Query, page, size int) (query.Page[Request], error)
		Balances(ctx context.Context, requesterID string) (map[Category]Balance, error)
	}

	Options struct {
		ReasonMinLength int
		Counter         calendar.Counter
		Notifier        core.Notifier
	}

	service struct {
		repo     Repository
		ledger   Ledger
		validate *validator.Validate
		opts     Options
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, ledger Ledger, validate *validator.Validate, opts Options) Service {
	if opts.ReasonMinLength <= 0 {
		opts.ReasonMinLength = DefaultReasonMinLength
	}
	if opts.Notifier == nil {
		opts.Notifier = core.NopNotifier
	}
	return &service{repo: repo, ledger: ledger, validate: validate, opts: opts}
}

func (svc *service) notify(sev core.Severity, format string, args ...interface{}) {
	svc.opts.Notifier.Notify(core.NewNotification("leave", sev, fmt.Sprintf(format, args...)))
}

func (svc *service) validateNew(nr *NewRequest) (start, end time.Time, err error) {
	nr.Clean()
	if err = svc.validate.Struct(nr); err != nil {
		return
	}
	if utf8.RuneCountInString(nr.Reason) < svc.opts.ReasonMinLength {
		err = core.NewValidationError(nil, core.FieldError{
			Field: "reason",
			Error: fmt.Sprintf("reason must be at least %d characters long", svc.opts.ReasonMinLength),
		})
		return
	}
	if start, err = calendar.ParseDate(nr.StartDate); err != nil {
		return
	}
	end = start
	if nr.EndDate != "" {
		end, err = calendar.ParseDate(nr.EndDate)
	}
	return
}

// Submit validates and stores a pending request.
// The balance is only checked here; days are reserved when the request is approved.
func (svc *service) Submit(ctx context.Context, nr NewRequest) (Request, error) {
	start, end, err := svc.validateNew(&nr)
	if err != nil {
		return Request{}, err
	}
	duration, err := Duration(svc.opts.Counter, nr.Category, start, end)
	if err != nil {
		return Request{}, err
	}
	if nr.Category == CategoryHalfDay {
		end = start
	}

	bal, err := svc.ledger.Available(ctx, nr.RequesterID, nr.Category)
	if err != nil {
		return Request{}, errors.Wrap(err, "checking balance")
	}
	if !bal.Covers(duration) {
		svc.notify(core.SeverityWarning, "Insufficient %s leave balance: %g day(s) requested, %s left", nr.Category, duration, bal)
		return Request{}, ErrInsufficientBalance
	}

	if err = svc.checkOverlap(ctx, nr.RequesterID, start, end); err != nil {
		return Request{}, err
	}

	now := nowFunc().UTC()
	req, err := svc.repo.CreateRequest(ctx, Request{
		ID:          uuid.NewString(),
		RequesterID: nr.RequesterID,
		Category:    nr.Category,
		StartDate:   calendar.Date(start),
		EndDate:     calendar.Date(end),
		Duration:    duration,
		Reason:      nr.Reason,
		Status:      StatusPending,
		Attachment:  nr.Attachment,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Request{}, errors.Wrap(err, "creating leave request")
	}

	svc.notify(core.SeveritySuccess, "Leave application submitted: %g day(s) of %s leave", req.Duration, req.Category)
	return req, nil
}

// checkOverlap rejects a request sharing a day with another pending or approved request of the same requester.
func (svc *service) checkOverlap(ctx context.Context, requesterID string, start, end time.Time) error {
	requests, err := svc.repo.QueryRequests(ctx)
	if err != nil {
		return errors.Wrap(err, "querying leave requests")
	}
	for _, r := range requests {
		if r.RequesterID == requesterID && r.Status != StatusRejected && r.Overlaps(start, end) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "start_date",
				Error: fmt.Sprintf("overlaps leave request %s (%s to %s)", r.ID, r.StartDate.Format(core.DateLayout), r.EndDate.Format(core.DateLayout)),
			})
		}
	}
	return nil
}

// Approve reserves the request's days on the ledger and marks it approved.
func (svc *service) Approve(ctx context.Context, id string, d Decision) (Request, error) {
	if err := svc.validate.Struct(d); err != nil {
		return Request{}, err
	}

	var reserved *Request
	req, err := svc.repo.UpdateRequest(ctx, id, func(req *Request) error {
		if req.Status.IsTerminal() {
			return ErrNotPending
		}
		if _, err := svc.ledger.Reserve(ctx, req.RequesterID, req.Category, req.Duration); err != nil {
			return err
		}
		r := *req
		reserved = &r
		return req.Transition(StatusApproved, d, nowFunc().UTC())
	})
	if err != nil {
		if reserved != nil {
			// the request was not saved, give the days back
			if _, rErr := svc.ledger.Release(ctx, reserved.RequesterID, reserved.Category, reserved.Duration); rErr != nil {
				return Request{}, errors.Wrapf(rErr, "releasing balance after failed approval: %v", err)
			}
		}
		if errors.Is(err, ErrInsufficientBalance) {
			svc.notify(core.SeverityWarning, "Cannot approve leave request %s: insufficient balance", id)
		}
		return Request{}, err
	}

	svc.notify(core.SeveritySuccess, "Leave request %s approved", req.ID)
	return req, nil
}

func (svc *service) Reject(ctx context.Context, id string, d Decision) (Request, error) {
	if err := svc.validate.Struct(d); err != nil {
		return Request{}, err
	}
	req, err := svc.repo.UpdateRequest(ctx, id, func(req *Request) error {
		return req.Transition(StatusRejected, d, nowFunc().UTC())
	})
	if err != nil {
		return Request{}, err
	}

	svc.notify(core.SeverityInfo, "Leave request %s rejected", req.ID)
	return req, nil
}

func (svc *service) Get(ctx context.Context, id string) (Request, error) {
	return svc.repo.GetRequest(ctx, core.CleanString(id))
}

func (svc *service) Query(ctx context.Context, q Query, page, size int) (query.Page[Request], error) {
	requests, err := svc.repo.QueryRequests(ctx)
	if err != nil {
		return query.Page[Request]{}, errors.Wrap(err, "querying leave requests")
	}
	return query.Paginate(Filter(requests, q), page, size), nil
}

// Balances returns the balance of every ledger category of a requester.
func (svc *service) Balances(ctx context.Context, requesterID string) (map[Category]Balance, error) {
	requesterID = core.CleanString(requesterID)
	res := make(map[Category]Balance, len(AllCategories))
	for _, cat := range AllCategories {
		if cat.LedgerCategory() != cat {
			continue
		}
		bal, err := svc.ledger.Available(ctx, requesterID, cat)
		if err != nil {
			return nil, errors.Wrapf(err, "getting %s balance", cat)
		}
		res[cat] = bal
	}
	return res, nil
}
