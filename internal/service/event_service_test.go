package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"evently/internal/access"
	"evently/internal/auth"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

func newEventService(repo repository.EventRepository, notifier EventNotifier) EventService {
	return NewEventService(repo, access.Policy{}, notifier, nilCache)
}

func asUser(id string) auth.Identity {
	return auth.Identity{SubjectID: id, Role: model.RoleUser}
}

func TestEventService_Create_Defaults(t *testing.T) {
	mockRepo := new(MockEventRepository)

	var stored *model.Event
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*model.Event)
			stored.ID = primitive.NewObjectID()
		}).
		Return(&model.Event{}, nil)

	svc := newEventService(mockRepo, new(MockNotifier))

	_, err := svc.Create(context.Background(), asUser("owner-1"), CreateEventInput{
		Type:        "meetup",
		Title:       "Go meetup",
		Description: "Monthly meetup",
		Date:        "2026-09-12",
		From:        "18:00",
		To:          "20:00",
		Location:    "Main hall",
		Organizer:   "Community",
	})
	assert.NoError(t, err)
	assert.NotNil(t, stored)

	// owner bound to caller, group and visibility defaulted
	assert.Equal(t, "owner-1", stored.OwnerID)
	assert.Equal(t, []string{"default"}, stored.Group)
	assert.False(t, stored.IsPublic)

	mockRepo.AssertExpectations(t)
}

func TestEventService_GetVisible(t *testing.T) {
	private := &model.Event{ID: primitive.NewObjectID(), OwnerID: "owner-1", IsPublic: false}

	tests := []struct {
		name          string
		caller        auth.Identity
		expectedError error
	}{
		{"owner sees private event", asUser("owner-1"), nil},
		{"stranger gets forbidden", asUser("stranger"), apperrors.ErrForbidden},
		{"admin sees private event", auth.Identity{SubjectID: "other", Role: model.RoleAdmin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockEventRepository)
			mockRepo.On("FindByID", mock.Anything, private.ID.Hex()).Return(private, nil)

			svc := newEventService(mockRepo, new(MockNotifier))

			event, err := svc.GetVisible(context.Background(), tt.caller, private.ID.Hex())
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, event)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, private, event)
			}
		})
	}
}

func TestEventService_UpdatePartial_Ownership(t *testing.T) {
	existing := &model.Event{ID: primitive.NewObjectID(), OwnerID: "owner-1"}

	tests := []struct {
		name          string
		caller        auth.Identity
		expectedError error
	}{
		{"owner with role user may update", asUser("owner-1"), nil},
		{"non-owner with role user is forbidden", asUser("stranger"), apperrors.ErrForbidden},
		{"admin may update regardless of ownership", auth.Identity{SubjectID: "other", Role: model.RoleAdmin}, nil},
		{"superAdmin may update regardless of ownership", auth.Identity{SubjectID: "other", Role: model.RoleSuperAdmin}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockEventRepository)
			mockRepo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
			if tt.expectedError == nil {
				mockRepo.On("UpdateFields", mock.Anything, existing.ID.Hex(), mock.Anything).
					Return(repository.UpdateResult{Matched: true, Changed: true}, nil)
			}

			svc := newEventService(mockRepo, new(MockNotifier))

			changed, err := svc.UpdatePartial(context.Background(), tt.caller, existing.ID.Hex(), UpdateEventInput{Title: "New title"})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.True(t, changed)
			}

			// the access check runs before any write
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEventService_UpdatePartial_OnlyProvidedFields(t *testing.T) {
	existing := &model.Event{ID: primitive.NewObjectID(), OwnerID: "owner-1"}

	mockRepo := new(MockEventRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)

	var fields map[string]interface{}
	mockRepo.On("UpdateFields", mock.Anything, existing.ID.Hex(), mock.Anything).
		Run(func(args mock.Arguments) {
			fields = args.Get(2).(map[string]interface{})
		}).
		Return(repository.UpdateResult{Matched: true, Changed: true}, nil)

	svc := newEventService(mockRepo, new(MockNotifier))

	visible := true
	_, err := svc.UpdatePartial(context.Background(), asUser("owner-1"), existing.ID.Hex(), UpdateEventInput{
		Title:    "Renamed",
		IsPublic: &visible,
	})
	assert.NoError(t, err)

	assert.Len(t, fields, 2)
	assert.Equal(t, "Renamed", fields["title"])
	assert.Equal(t, true, fields["is_public"])
}

func TestEventService_Delete(t *testing.T) {
	existing := &model.Event{ID: primitive.NewObjectID(), OwnerID: "owner-1"}

	t.Run("forbidden for non-owner", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)

		svc := newEventService(mockRepo, new(MockNotifier))
		err := svc.Delete(context.Background(), asUser("stranger"), existing.ID.Hex())
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("FindByID", mock.Anything, existing.ID.Hex()).Return(existing, nil)
		mockRepo.On("DeleteByID", mock.Anything, existing.ID.Hex()).Return(true, nil)

		svc := newEventService(mockRepo, new(MockNotifier))
		assert.NoError(t, svc.Delete(context.Background(), asUser("owner-1"), existing.ID.Hex()))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.ErrEventNotFound)

		svc := newEventService(mockRepo, new(MockNotifier))
		err := svc.Delete(context.Background(), asUser("owner-1"), "missing")
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventService_ListFor(t *testing.T) {
	q := repository.PageQuery{Page: 1, Size: 10}
	all := []model.Event{{Title: "a"}, {Title: "b"}}
	own := []model.Event{{Title: "a"}}

	t.Run("superAdmin sees all", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("List", mock.Anything, q).Return(all, int64(2), nil)

		svc := newEventService(mockRepo, new(MockNotifier))
		page, err := svc.ListFor(context.Background(), auth.Identity{SubjectID: "x", Role: model.RoleSuperAdmin}, q)
		assert.NoError(t, err)
		assert.Equal(t, all, page.Events)
		assert.Equal(t, int64(2), page.TotalData)
	})

	t.Run("user sees own", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("ListForOwner", mock.Anything, "owner-1", q).Return(own, int64(1), nil)

		svc := newEventService(mockRepo, new(MockNotifier))
		page, err := svc.ListFor(context.Background(), asUser("owner-1"), q)
		assert.NoError(t, err)
		assert.Equal(t, own, page.Events)
		assert.Equal(t, int64(1), page.TotalData)
	})
}

func TestEventService_Share(t *testing.T) {
	event := &model.Event{ID: primitive.NewObjectID(), Title: "Go meetup"}
	methods := []string{"sms", "email"}
	recipients := []string{"a@example.com", "b@example.com"}

	t.Run("delegates to notifier", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("FindByID", mock.Anything, event.ID.Hex()).Return(event, nil)

		mockNotifier := new(MockNotifier)
		mockNotifier.On("Share", mock.Anything, event, methods, recipients).Return()

		svc := newEventService(mockRepo, mockNotifier)
		assert.NoError(t, svc.Share(context.Background(), event.ID.Hex(), methods, recipients))
		mockNotifier.AssertExpectations(t)
	})

	t.Run("unknown event never fans out", func(t *testing.T) {
		mockRepo := new(MockEventRepository)
		mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, apperrors.ErrEventNotFound)

		mockNotifier := new(MockNotifier)

		svc := newEventService(mockRepo, mockNotifier)
		err := svc.Share(context.Background(), "missing", methods, recipients)
		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		mockNotifier.AssertNotCalled(t, "Share")
	})
}
