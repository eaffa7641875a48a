package v1

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"go-applicant-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestRecordThenCheckAttempt(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1)
	s.attempts.On("Record", mock.Anything, domain.RecordAttemptInput{JobID: "7", AssessmentID: "3", AssessmentScore: 80}).
		Return(&domain.Attempt{ID: 1, UserID: 1, JobID: "7", AssessmentID: "3", AssessmentScore: int64Ptr(80), Status: domain.StatusInReview}, nil)
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.attempts.On("Check", mock.Anything, "7", "3").
		Return(&domain.AttemptCheck{Attempted: true, AssessmentScore: int64Ptr(80), AttemptDate: &at}, nil)

	w := s.do(http.MethodPost, "/v1/user/assessment-attempts", map[string]interface{}{
		"job_id": 7, "assessment_id": "3", "assessment_score": 80,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	decodeData(t, decode(t, w), &created)
	assert.Equal(t, "In Review", created["status"])

	w = s.do(http.MethodGet, "/v1/user/check-test-attempt?job_id=7&assessment_id=3", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var check map[string]interface{}
	decodeData(t, decode(t, w), &check)
	assert.Equal(t, true, check["attempted"])
	assert.Equal(t, float64(80), check["assessment_score"])
	assert.Equal(t, "01/05/2024", check["attempt_date"])
}

func TestRecordAttemptRequiresScore(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1)

	w := s.do(http.MethodPost, "/v1/user/shortlistedapplicants", map[string]interface{}{"job_id": 7, "assessment_id": 3}, true)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Errors, "assessment_score")
}

func TestUpdateAttemptSendsOnlyPresentFields(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentEdit)
	approved := domain.StatusApproved
	s.shortlist.On("Update", mock.Anything, int64(7), domain.AttemptPatch{PracticalScore: int64Ptr(80), Status: &approved}).
		Return(&domain.Attempt{ID: 7, PracticalScore: int64Ptr(80), Status: approved}, nil)

	w := s.do(http.MethodPut, "/v1/user/shortlistedapplicants/7", map[string]interface{}{"practical_score": 80, "status": "Approved"}, true)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLegacyUpdateTakesIDFromBody(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentEdit)
	job := "9"
	s.attempts.On("Update", mock.Anything, int64(4), domain.AttemptPatch{JobID: &job}).
		Return(&domain.Attempt{ID: 4, JobID: "9"}, nil)

	w := s.do(http.MethodPut, "/v1/user/updateAssessmentAttempt", map[string]interface{}{"id": 4, "job_id": 9}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/v1/user/updateAssessmentAttempt", map[string]interface{}{"job_id": 9}, true)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode(t, w).Errors, "id")
}

func TestListByJobRendersRoster(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentList)
	s.attempts.On("ListByJob", mock.Anything, "7").Return([]domain.Attempt{
		{ID: 2, UserID: 5, JobID: "7", AssessmentScore: int64Ptr(90), ApplicantName: "Ann", ApplicantEmail: "ann@x.io"},
		{ID: 1, UserID: 6, JobID: "7", AssessmentScore: int64Ptr(60), ApplicantName: "Bo", ApplicantEmail: "bo@x.io"},
	}, nil)

	w := s.do(http.MethodGet, "/v1/user/specific-job-applicants?job_id=7", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	var roster []struct {
		Applicant map[string]interface{} `json:"applicant"`
	}
	decodeData(t, decode(t, w), &roster)
	require.Len(t, roster, 2)
	assert.Equal(t, "Ann", roster[0].Applicant["name"])
	assert.Equal(t, float64(90), roster[0].Applicant["assessment_score"])
}

func TestListByJobRequiresJobID(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentList)

	w := s.do(http.MethodGet, "/v1/user/applicants-by-job", nil, true)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGroupByJob(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentList)
	s.shortlist.On("GroupByJob", mock.Anything).Return([]domain.JobGroup{
		{JobID: "7", Attempts: []domain.Attempt{{ID: 1, JobID: "7"}}},
		{JobID: "3", Attempts: []domain.Attempt{{ID: 2, JobID: "3"}}},
	}, nil)

	w := s.do(http.MethodGet, "/v1/user/shortlisted-by-job", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	var groups []struct {
		JobID      string            `json:"job_id"`
		Applicants []json.RawMessage `json:"applicants"`
	}
	decodeData(t, decode(t, w), &groups)
	require.Len(t, groups, 2)
	assert.Equal(t, "7", groups[0].JobID)
	assert.Len(t, groups[1].Applicants, 1)
}

func TestExportByJob(t *testing.T) {
	s := newTestServer(t)
	s.actAs(1, domain.PermAssessmentList)
	s.attempts.On("ExportByJob", mock.Anything, "7").Return([]byte("PK-xlsx"), nil)

	w := s.do(http.MethodGet, "/v1/user/specific-job-applicants/export?job_id=7", nil, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "assessment_attempts_job_7.xlsx")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}

func TestFlexStringAcceptsNumbersAndStrings(t *testing.T) {
	var req struct {
		A flexString  `json:"a"`
		B *flexString `json:"b"`
		C *flexString `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 7, "b": "x9"}`), &req))
	assert.Equal(t, flexString("7"), req.A)
	assert.Equal(t, "x9", *req.B.ptr())
	assert.Nil(t, req.C.ptr())
}
