package events

import (
	"context"
	"fmt"
)

// AgeGroups lists the labels the event creation UI offers. The field is
// stored as free text; these are not enforced server-side.
var AgeGroups = []string{"18-25", "26-35", "36-45", "45+", "All ages"}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Event, error) {
	event, err := s.repo.Create(ctx, params)
	if err != nil {
		return Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *Service) List(ctx context.Context, viewerID int64) ([]Listing, error) {
	return s.repo.List(ctx, viewerID)
}

func (s *Service) Join(ctx context.Context, eventID, userID int64) error {
	return s.repo.Join(ctx, eventID, userID)
}

func (s *Service) Leave(ctx context.Context, eventID, userID int64) error {
	return s.repo.Leave(ctx, eventID, userID)
}

// UserEvents are the caller's events in two disjoint sets: created ones and
// joined ones. An event the caller both created and joined appears only in
// Created.
type UserEvents struct {
	Created []Listing
	Joined  []Listing
}

func (s *Service) ListForUser(ctx context.Context, userID int64) (UserEvents, error) {
	created, err := s.repo.ListCreatedBy(ctx, userID)
	if err != nil {
		return UserEvents{}, fmt.Errorf("list created events: %w", err)
	}

	joined, err := s.repo.ListJoinedBy(ctx, userID)
	if err != nil {
		return UserEvents{}, fmt.Errorf("list joined events: %w", err)
	}

	return UserEvents{Created: created, Joined: joined}, nil
}
