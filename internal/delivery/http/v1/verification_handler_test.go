package v1

import (
	"net/http"
	"testing"

	"go-applicant-tracker/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVerifyRedirectsToDashboard(t *testing.T) {
	s := newTestServer(t)
	s.verification.On("Verify", mock.Anything, int64(3), "abc", "sig").Return(nil)

	w := s.do(http.MethodGet, "/v1/email/verify/3/abc?signature=sig", nil, false)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://front.test/dashboard", w.Header().Get("Location"))
}

func TestVerifyRejectsBadSignature(t *testing.T) {
	s := newTestServer(t)
	s.verification.On("Verify", mock.Anything, int64(3), "abc", "bad").Return(apperror.Forbidden("Invalid signature."))

	w := s.do(http.MethodGet, "/v1/email/verify/3/abc?signature=bad", nil, false)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/v1/email/verify/x/abc?signature=bad", nil, false)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResendVerification(t *testing.T) {
	s := newTestServer(t)
	s.actAs(8)
	s.verification.On("Resend", mock.Anything).Return(true, nil).Once()
	s.verification.On("Resend", mock.Anything).Return(false, nil).Once()

	w := s.do(http.MethodPost, "/v1/email/verification-notification", nil, true)
	assert.Equal(t, "User Has Already verified!", decode(t, w).Message)

	w = s.do(http.MethodPost, "/v1/email/verification-notification", nil, true)
	assert.Equal(t, "Verification link sent!", decode(t, w).Message)
}

func TestVerificationStatus(t *testing.T) {
	s := newTestServer(t)
	s.actAs(8)
	s.verification.On("Status", mock.Anything).Return(false, nil)

	w := s.do(http.MethodGet, "/v1/user/verification-status", nil, true)

	var data map[string]bool
	decodeData(t, decode(t, w), &data)
	assert.Equal(t, map[string]bool{"verified": false}, data)
}
