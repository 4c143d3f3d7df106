package requests

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("participation request not found")
	ErrConflict = errors.New("participation request conflict")
	// ErrLimitReached is returned when the event's participant limit is
	// exhausted.
	ErrLimitReached = errors.New("participant limit reached")
)

// Status of a participation request.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusRejected  Status = "REJECTED"
	StatusCanceled  Status = "CANCELED"
)

type Request struct {
	ID          int64
	Created     time.Time
	EventID     int64
	RequesterID int64
	Status      Status
}

// StatusUpdate is the owner's moderation decision over a batch of pending
// requests.
type StatusUpdate struct {
	RequestIDs []int64
	Status     Status
}

// StatusUpdateResult reports which requests were confirmed and which were
// rejected (including surplus auto-rejections).
type StatusUpdateResult struct {
	Confirmed []Request
	Rejected  []Request
}

type Repository interface {
	Create(ctx context.Context, eventID, requesterID int64, status Status, created time.Time) (*Request, error)
	GetByID(ctx context.Context, id int64) (*Request, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]Request, error)
	ListByEvent(ctx context.Context, eventID int64) ([]Request, error)
	FindByEventAndIDs(ctx context.Context, eventID int64, ids []int64) ([]Request, error)
	// LockEvent takes a row lock on the event so that concurrent
	// confirmations serialize on its participant limit. Only meaningful
	// inside a transaction.
	LockEvent(ctx context.Context, eventID int64) error
	CountByEventAndStatus(ctx context.Context, eventID int64, status Status) (int64, error)
	ExistsByEventAndRequester(ctx context.Context, eventID, requesterID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Request, error)
	UpdateStatuses(ctx context.Context, ids []int64, status Status) ([]Request, error)
}

// TxRunner runs a function against a transaction-bound repository.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
