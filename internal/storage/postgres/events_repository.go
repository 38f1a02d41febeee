package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pickuphub/server/internal/domain/events"
)

const (
	attendeesUniqueConstraint  = "event_attendees_event_id_user_id_key"
	attendeesEventFKConstraint = "event_attendees_event_id_fkey"
)

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (sport, location, date_time, skill_level, age_group, created_by_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, sport, location, date_time, skill_level, age_group, created_by_id, created_at
`, params.Sport, params.Location, params.DateTime, params.SkillLevel, params.AgeGroup, params.CreatedByID)

	var event events.Event
	err := row.Scan(
		&event.ID,
		&event.Sport,
		&event.Location,
		&event.DateTime,
		&event.SkillLevel,
		&event.AgeGroup,
		&event.CreatedByID,
		&event.CreatedAt,
	)
	if err != nil {
		return events.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// List annotates every event with creator name, attendee count, and whether
// viewerID has joined. viewerID 0 never matches an attendance row, so
// unauthenticated listings report user_joined = false throughout.
func (r *EventRepository) List(ctx context.Context, viewerID int64) ([]events.Listing, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT e.id, e.sport, e.location, e.date_time, e.skill_level, e.age_group, e.created_by_id, e.created_at,
       u.name, u.surname,
       COUNT(ea.id) AS attendee_count,
       COALESCE(BOOL_OR(ea.user_id = $1), false) AS user_joined
  FROM events e
  JOIN users u ON u.id = e.created_by_id
  LEFT JOIN event_attendees ea ON ea.event_id = e.id
 GROUP BY e.id, u.name, u.surname
 ORDER BY e.date_time ASC
`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	return scanListings(rows, true)
}

// Join is a single atomic insert. The unique constraint on
// (event_id, user_id) is what prevents duplicate attendance under
// concurrent requests; its violation is reported as ErrAlreadyJoined.
func (r *EventRepository) Join(ctx context.Context, eventID, userID int64) error {
	_, err := r.queryer().Exec(ctx, `
INSERT INTO event_attendees (event_id, user_id) VALUES ($1, $2)
`, eventID, userID)
	if err != nil {
		if isUniqueViolation(err, attendeesUniqueConstraint) {
			return events.ErrAlreadyJoined
		}
		if isForeignKeyViolation(err, attendeesEventFKConstraint) {
			return events.ErrNotFound
		}
		return fmt.Errorf("join event: %w", err)
	}
	return nil
}

func (r *EventRepository) Leave(ctx context.Context, eventID, userID int64) error {
	tag, err := r.queryer().Exec(ctx, `
DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2
`, eventID, userID)
	if err != nil {
		return fmt.Errorf("leave event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotJoined
	}
	return nil
}

func (r *EventRepository) ListCreatedBy(ctx context.Context, userID int64) ([]events.Listing, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT e.id, e.sport, e.location, e.date_time, e.skill_level, e.age_group, e.created_by_id, e.created_at,
       COUNT(ea.id) AS attendee_count
  FROM events e
  LEFT JOIN event_attendees ea ON ea.event_id = e.id
 WHERE e.created_by_id = $1
 GROUP BY e.id
 ORDER BY e.date_time ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list created events: %w", err)
	}
	defer rows.Close()

	return scanListings(rows, false)
}

func (r *EventRepository) ListJoinedBy(ctx context.Context, userID int64) ([]events.Listing, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT e.id, e.sport, e.location, e.date_time, e.skill_level, e.age_group, e.created_by_id, e.created_at,
       u.name, u.surname,
       COUNT(ea.id) AS attendee_count
  FROM events e
  JOIN users u ON u.id = e.created_by_id
  JOIN event_attendees mine ON mine.event_id = e.id AND mine.user_id = $1
  LEFT JOIN event_attendees ea ON ea.event_id = e.id
 WHERE e.created_by_id <> $1
 GROUP BY e.id, u.name, u.surname
 ORDER BY e.date_time ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list joined events: %w", err)
	}
	defer rows.Close()

	listings, err := scanJoinedListings(rows)
	if err != nil {
		return nil, err
	}
	for i := range listings {
		listings[i].UserJoined = true
	}
	return listings, nil
}

func scanListings(rows pgx.Rows, withViewer bool) ([]events.Listing, error) {
	listings := make([]events.Listing, 0)
	for rows.Next() {
		var listing events.Listing
		var err error
		if withViewer {
			err = rows.Scan(
				&listing.ID,
				&listing.Sport,
				&listing.Location,
				&listing.DateTime,
				&listing.SkillLevel,
				&listing.AgeGroup,
				&listing.CreatedByID,
				&listing.CreatedAt,
				&listing.CreatorName,
				&listing.CreatorSurname,
				&listing.AttendeeCount,
				&listing.UserJoined,
			)
		} else {
			err = rows.Scan(
				&listing.ID,
				&listing.Sport,
				&listing.Location,
				&listing.DateTime,
				&listing.SkillLevel,
				&listing.AgeGroup,
				&listing.CreatedByID,
				&listing.CreatedAt,
				&listing.AttendeeCount,
			)
		}
		if err != nil {
			return nil, fmt.Errorf("scan event listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event listings: %w", err)
	}
	return listings, nil
}

func scanJoinedListings(rows pgx.Rows) ([]events.Listing, error) {
	listings := make([]events.Listing, 0)
	for rows.Next() {
		var listing events.Listing
		err := rows.Scan(
			&listing.ID,
			&listing.Sport,
			&listing.Location,
			&listing.DateTime,
			&listing.SkillLevel,
			&listing.AgeGroup,
			&listing.CreatedByID,
			&listing.CreatedAt,
			&listing.CreatorName,
			&listing.CreatorSurname,
			&listing.AttendeeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan joined listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate joined listings: %w", err)
	}
	return listings, nil
}
