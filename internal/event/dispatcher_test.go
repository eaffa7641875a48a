package event

import (
	"context"
	"errors"
	"testing"

	"go-applicant-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatcher_PublishRunsListenersInOrder(t *testing.T) {
	d := NewDispatcher()
	var calls []string
	d.Subscribe(domain.EventRegistered, func(ctx context.Context, ev domain.Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(domain.EventRegistered, func(ctx context.Context, ev domain.Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(domain.EventVerified, func(ctx context.Context, ev domain.Event) error {
		calls = append(calls, "other")
		return nil
	})

	d.Publish(context.Background(), domain.Event{Name: domain.EventRegistered})

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_ListenerErrorIsLoggedAndDoesNotStopOthers(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher()
	d.log = zap.New(core)

	ran := false
	d.Subscribe(domain.EventRegistered, func(ctx context.Context, ev domain.Event) error {
		return errors.New("smtp down")
	})
	d.Subscribe(domain.EventRegistered, func(ctx context.Context, ev domain.Event) error {
		ran = true
		return nil
	})

	d.Publish(context.Background(), domain.Event{Name: domain.EventRegistered, User: &domain.User{ID: 4}})

	assert.True(t, ran)
	entries := logs.FilterMessage("Event listener failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(4), entries[0].ContextMap()["user_id"])
	}
}

type stubVerification struct {
	domain.VerificationUsecase
	sent []*domain.User
}

func (s *stubVerification) SendLink(ctx context.Context, user *domain.User) error {
	s.sent = append(s.sent, user)
	return nil
}

func TestSendVerificationLink_SkipsVerifiedUsers(t *testing.T) {
	stub := &stubVerification{}
	l := SendVerificationLink(stub)

	assert.NoError(t, l(context.Background(), domain.Event{User: &domain.User{ID: 1}}))
	verified := &domain.User{ID: 2}
	now := verified.CreatedAt
	verified.EmailVerifiedAt = &now
	assert.NoError(t, l(context.Background(), domain.Event{User: verified}))

	if assert.Len(t, stub.sent, 1) {
		assert.Equal(t, int64(1), stub.sent[0].ID)
	}
}
