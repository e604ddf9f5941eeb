package service

import (
	"context"
	"encoding/json"
	"time"

	"evently/internal/access"
	"evently/internal/auth"
	"evently/internal/cache"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

const eventCacheTTL = 5 * time.Minute

// CreateEventInput carries the fields accepted at event creation. The owner
// is always the authenticated caller, never taken from the request.
type CreateEventInput struct {
	Type        string
	Title       string
	Description string
	Date        string
	From        string
	To          string
	Location    string
	Group       []string
	Organizer   string
	IsPublic    bool
}

// UpdateEventInput carries the optional fields of a partial event update.
// Empty fields are left untouched; IsPublic is a pointer since false is a
// meaningful value.
type UpdateEventInput struct {
	OwnerID     string
	Type        string
	Title       string
	Description string
	Date        string
	From        string
	To          string
	Location    string
	Group       []string
	Organizer   string
	IsPublic    *bool
}

// EventPage is one page of events with the listing totals.
type EventPage struct {
	Events      []model.Event `json:"events"`
	PageSize    int64         `json:"pageSize"`
	CurrentPage int64         `json:"currentPage"`
	TotalData   int64         `json:"totalData"`
}

// EventNotifier fans an event invitation out to recipients over the selected
// channels. Best effort: per-recipient failures are logged, never returned.
type EventNotifier interface {
	Share(ctx context.Context, event *model.Event, methods, recipients []string)
}

// EventService exposes event CRUD, listing and sharing.
type EventService interface {
	Create(ctx context.Context, caller auth.Identity, input CreateEventInput) (*model.Event, error)
	GetVisible(ctx context.Context, caller auth.Identity, id string) (*model.Event, error)
	UpdatePartial(ctx context.Context, caller auth.Identity, id string, input UpdateEventInput) (changed bool, err error)
	Delete(ctx context.Context, caller auth.Identity, id string) error
	ListFor(ctx context.Context, caller auth.Identity, q repository.PageQuery) (*EventPage, error)
	Share(ctx context.Context, id string, methods, recipients []string) error
}

type eventService struct {
	repo     repository.EventRepository
	policy   access.Policy
	notifier EventNotifier
	cache    *cache.Client
}

// NewEventService builds an EventService.
func NewEventService(repo repository.EventRepository, policy access.Policy, notifier EventNotifier, cache *cache.Client) EventService {
	return &eventService{repo: repo, policy: policy, notifier: notifier, cache: cache}
}

func eventCacheKey(id string) string {
	return "event:" + id
}

// Create persists a new event owned by the caller. Group defaults to
// ["default"] when absent.
func (s *eventService) Create(ctx context.Context, caller auth.Identity, input CreateEventInput) (*model.Event, error) {
	group := input.Group
	if len(group) == 0 {
		group = model.DefaultEventGroup
	}

	event := &model.Event{
		OwnerID:     caller.SubjectID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		From:        input.From,
		To:          input.To,
		Location:    input.Location,
		Group:       group,
		Organizer:   input.Organizer,
		IsPublic:    input.IsPublic,
	}
	return s.repo.Create(ctx, event)
}

func (s *eventService) getCached(ctx context.Context, id string) (*model.Event, error) {
	if data, _ := s.cache.Get(ctx, eventCacheKey(id)); data != nil {
		var cached model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, eventCacheKey(id), payload, eventCacheTTL)
	}
	return event, nil
}

// GetVisible returns the event iff the caller may see it: public events are
// visible to everyone, private ones to their owner and elevated roles.
func (s *eventService) GetVisible(ctx context.Context, caller auth.Identity, id string) (*model.Event, error) {
	event, err := s.getCached(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanView(event, caller) {
		return nil, apperrors.ErrForbidden
	}
	return event, nil
}

// UpdatePartial applies only the non-empty fields of input after the
// ownership gate. The access check runs before any write.
func (s *eventService) UpdatePartial(ctx context.Context, caller auth.Identity, id string, input UpdateEventInput) (bool, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !s.policy.CanModify(caller, event.OwnerID) {
		return false, apperrors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if input.OwnerID != "" {
		fields["ownerId"] = input.OwnerID
	}
	if input.Type != "" {
		fields["type"] = input.Type
	}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.Date != "" {
		fields["date"] = input.Date
	}
	if input.From != "" {
		fields["from"] = input.From
	}
	if input.To != "" {
		fields["to"] = input.To
	}
	if input.Location != "" {
		fields["location"] = input.Location
	}
	if len(input.Group) > 0 {
		fields["group"] = input.Group
	}
	if input.Organizer != "" {
		fields["organizer"] = input.Organizer
	}
	if input.IsPublic != nil {
		fields["is_public"] = *input.IsPublic
	}

	res, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return false, err
	}
	if !res.Matched {
		return false, apperrors.ErrEventNotFound
	}

	_ = s.cache.Delete(ctx, eventCacheKey(id))
	return res.Changed, nil
}

// Delete removes an event after the ownership gate.
func (s *eventService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.policy.CanModify(caller, event.OwnerID) {
		return apperrors.ErrForbidden
	}

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.ErrEventNotFound
	}
	_ = s.cache.Delete(ctx, eventCacheKey(id))
	return nil
}

// ListFor pages events: superAdmin sees all, everyone else their own.
func (s *eventService) ListFor(ctx context.Context, caller auth.Identity, q repository.PageQuery) (*EventPage, error) {
	q = q.Normalize()

	var (
		events []model.Event
		total  int64
		err    error
	)
	if caller.Role == model.RoleSuperAdmin {
		events, total, err = s.repo.List(ctx, q)
	} else {
		events, total, err = s.repo.ListForOwner(ctx, caller.SubjectID, q)
	}
	if err != nil {
		return nil, err
	}

	return &EventPage{
		Events:      events,
		PageSize:    q.Size,
		CurrentPage: q.Page,
		TotalData:   total,
	}, nil
}

// Share fans the invitation out once the event is known to exist.
func (s *eventService) Share(ctx context.Context, id string, methods, recipients []string) error {
	event, err := s.getCached(ctx, id)
	if err != nil {
		return err
	}
	s.notifier.Share(ctx, event, methods, recipients)
	return nil
}
