package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrNotJoined     = errors.New("not joined to this event")
)

type Event struct {
	ID          int64
	Sport       string
	Location    string
	DateTime    time.Time
	SkillLevel  int
	AgeGroup    string
	CreatedByID int64
	CreatedAt   time.Time
}

// Listing is an event annotated for display: creator name, total attendee
// count, and whether the viewing user has joined.
type Listing struct {
	Event
	CreatorName    string
	CreatorSurname string
	AttendeeCount  int64
	UserJoined     bool
}

type CreateParams struct {
	Sport       string
	Location    string
	DateTime    time.Time
	SkillLevel  int
	AgeGroup    string
	CreatedByID int64
}

// Repository gives access to events and the attendance relation. Join must
// be a single atomic insert; the (event, user) uniqueness constraint in the
// store is the source of truth for duplicate prevention, and the
// implementation classifies that conflict into ErrAlreadyJoined.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Event, error)

	// List returns all events ascending by date/time, annotated for
	// viewerID. viewerID 0 means no user context: UserJoined is false on
	// every row.
	List(ctx context.Context, viewerID int64) ([]Listing, error)

	Join(ctx context.Context, eventID, userID int64) error
	Leave(ctx context.Context, eventID, userID int64) error

	ListCreatedBy(ctx context.Context, userID int64) ([]Listing, error)

	// ListJoinedBy excludes events the user also created; those are
	// reported only by ListCreatedBy.
	ListJoinedBy(ctx context.Context, userID int64) ([]Listing, error)
}
