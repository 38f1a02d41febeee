package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pickuphub/server/internal/api/apierror"
	"github.com/pickuphub/server/internal/api/middleware"
	"github.com/pickuphub/server/internal/domain/events"
)

type EventsHandler struct {
	Events *events.Service
}

func NewEventsHandler(eventsService *events.Service) *EventsHandler {
	return &EventsHandler{Events: eventsService}
}

type createEventRequest struct {
	Sport      string `json:"sport" validate:"required"`
	Location   string `json:"location" validate:"required"`
	DateTime   string `json:"dateTime" validate:"required"`
	SkillLevel int    `json:"skillLevel" validate:"required,min=1,max=5"`
	AgeGroup   string `json:"ageGroup" validate:"required"`
}

type eventPayload struct {
	ID          int64     `json:"id"`
	Sport       string    `json:"sport"`
	Location    string    `json:"location"`
	DateTime    time.Time `json:"dateTime"`
	SkillLevel  int       `json:"skillLevel"`
	AgeGroup    string    `json:"ageGroup"`
	CreatedByID int64     `json:"createdById"`
}

type listingPayload struct {
	eventPayload
	CreatorName    string `json:"creator_name,omitempty"`
	CreatorSurname string `json:"creator_surname,omitempty"`
	AttendeeCount  int64  `json:"attendee_count"`
	UserJoined     bool   `json:"user_joined"`
}

type userEventsResponse struct {
	Created []listingPayload `json:"created"`
	Joined  []listingPayload `json:"joined"`
}

// List is public; authentication only annotates whether the caller has
// joined each event.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	listings, err := h.Events.List(r.Context(), viewerID)
	if err != nil {
		apierror.Write(w, r, http.StatusInternalServerError, "could not list events", err)
		return
	}

	payload := make([]listingPayload, 0, len(listings))
	for _, listing := range listings {
		payload = append(payload, publicListing(listing))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "no token provided", nil)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "dateTime must be RFC 3339", err)
		return
	}

	event, err := h.Events.Create(r.Context(), events.CreateParams{
		Sport:       req.Sport,
		Location:    req.Location,
		DateTime:    dateTime,
		SkillLevel:  req.SkillLevel,
		AgeGroup:    req.AgeGroup,
		CreatedByID: userID,
	})
	if err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "could not create event", err)
		return
	}

	writeJSON(w, http.StatusOK, publicEvent(event))
}

func (h *EventsHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "no token provided", nil)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid event id", err)
		return
	}

	if err := h.Events.Join(r.Context(), eventID, userID); err != nil {
		switch {
		case errors.Is(err, events.ErrAlreadyJoined):
			apierror.Write(w, r, http.StatusBadRequest, "already joined this event", err)
		case errors.Is(err, events.ErrNotFound):
			apierror.Write(w, r, http.StatusBadRequest, "event not found", err)
		default:
			apierror.Write(w, r, http.StatusBadRequest, "could not join event", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "joined event successfully"})
}

func (h *EventsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "no token provided", nil)
		return
	}

	eventID, err := eventIDParam(r)
	if err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "invalid event id", err)
		return
	}

	if err := h.Events.Leave(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, events.ErrNotJoined) {
			apierror.Write(w, r, http.StatusBadRequest, "not joined to this event", err)
			return
		}
		apierror.Write(w, r, http.StatusBadRequest, "could not leave event", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "left event successfully"})
}

// UserEvents reports the caller's created and joined events as disjoint
// sets; an event the caller both created and joined appears only under
// created.
func (h *EventsHandler) UserEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, r, http.StatusUnauthorized, "no token provided", nil)
		return
	}

	mine, err := h.Events.ListForUser(r.Context(), userID)
	if err != nil {
		apierror.Write(w, r, http.StatusBadRequest, "could not list user events", err)
		return
	}

	response := userEventsResponse{
		Created: make([]listingPayload, 0, len(mine.Created)),
		Joined:  make([]listingPayload, 0, len(mine.Joined)),
	}
	for _, listing := range mine.Created {
		response.Created = append(response.Created, publicListing(listing))
	}
	for _, listing := range mine.Joined {
		response.Joined = append(response.Joined, publicListing(listing))
	}
	writeJSON(w, http.StatusOK, response)
}

func publicEvent(event events.Event) eventPayload {
	return eventPayload{
		ID:          event.ID,
		Sport:       event.Sport,
		Location:    event.Location,
		DateTime:    event.DateTime,
		SkillLevel:  event.SkillLevel,
		AgeGroup:    event.AgeGroup,
		CreatedByID: event.CreatedByID,
	}
}

func publicListing(listing events.Listing) listingPayload {
	return listingPayload{
		eventPayload:   publicEvent(listing.Event),
		CreatorName:    listing.CreatorName,
		CreatorSurname: listing.CreatorSurname,
		AttendeeCount:  listing.AttendeeCount,
		UserJoined:     listing.UserJoined,
	}
}
