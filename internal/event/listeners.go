package event

import (
	"context"
	"strconv"

	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/security"
)

// SendVerificationLink mails a signed verification link to newly registered users.
func SendVerificationLink(verification domain.VerificationUsecase) Listener {
	return func(ctx context.Context, ev domain.Event) error {
		if ev.User == nil || ev.User.IsVerified() {
			return nil
		}
		return verification.SendLink(ctx, ev.User)
	}
}

// Audit writes the event to the security log.
func Audit(sl *security.SecurityLogger, eventType security.EventType) Listener {
	return func(ctx context.Context, ev domain.Event) error {
		if ev.User == nil {
			return nil
		}
		sl.LogUserEvent(ctx, eventType, strconv.FormatInt(ev.User.ID, 10), map[string]interface{}{
			"email": security.MaskEmail(ev.User.Email),
		})
		return nil
	}
}

// Register wires the default listeners.
func Register(d *Dispatcher, verification domain.VerificationUsecase, sl *security.SecurityLogger) {
	d.Subscribe(domain.EventRegistered, SendVerificationLink(verification))
	d.Subscribe(domain.EventVerified, Audit(sl, security.EventEmailVerified))
	d.Subscribe(domain.EventPasswordReset, Audit(sl, security.EventPasswordReset))
}
