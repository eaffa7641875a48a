package v1

import (
	"fmt"
	"net/http"

	"go-applicant-tracker/internal/delivery/http/resource"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttemptHandler serves one attempt kind; assessment attempts and shortlist
// entries register the same handlers under different paths.
type AttemptHandler struct {
	attemptUC domain.AttemptUsecase
	label     string
}

// NewAssessmentAttemptHandler registers the assessment attempt routes.
func NewAssessmentAttemptHandler(protected *gin.RouterGroup, uc domain.AttemptUsecase) {
	h := &AttemptHandler{attemptUC: uc, label: "Assessment attempt"}

	user := protected.Group("/user")
	{
		user.GET("/assessment-attempts", h.ListMine)
		user.POST("/assessment-attempts", h.Record)
		user.GET("/assessment-attempts/:id", h.Show)
		user.PUT("/assessment-attempts/:id", h.Update)
		user.DELETE("/assessment-attempts/:id", h.Delete)
		user.PUT("/updateAssessmentAttempt", h.UpdateFromBody)

		user.GET("/check-test-attempt", h.Check)
		user.GET("/all-jobs-applicants", h.GroupByJob)
		user.GET("/specific-job-applicants", h.ListByJob)
		user.GET("/specific-job-applicants/export", h.ExportByJob)
	}
}

// NewShortlistHandler registers the shortlisted applicant routes.
func NewShortlistHandler(protected *gin.RouterGroup, uc domain.AttemptUsecase) {
	h := &AttemptHandler{attemptUC: uc, label: "Shortlisted applicant"}

	user := protected.Group("/user")
	{
		user.GET("/shortlistedapplicants", h.GroupByJob)
		user.POST("/shortlistedapplicants", h.Record)
		user.GET("/shortlistedapplicants/:id", h.Show)
		user.PUT("/shortlistedapplicants/:id", h.Update)
		user.DELETE("/shortlistedapplicants/:id", h.Delete)
		user.PUT("/updateShortlistedApplicant", h.UpdateFromBody)
		user.GET("/specificJobApplication/:id", h.Show)

		user.GET("/my-applications", h.ListMine)
		user.GET("/applications-by-user", h.ListByUser)
		user.GET("/shortlisted-by-job", h.GroupByJob)
		user.GET("/applicants-by-job", h.ListByJob)
		user.GET("/jobshortlistedapplicants", h.ListByJob)
		user.GET("/applicants-by-job/export", h.ExportByJob)
	}
}

type RecordAttemptRequest struct {
	JobID           flexString `json:"job_id" binding:"required"`
	AssessmentID    flexString `json:"assessment_id" binding:"required"`
	AssessmentScore *int64     `json:"assessment_score" binding:"required"`
}

// UpdateAttemptRequest carries only the fields to change.
type UpdateAttemptRequest struct {
	ID              int64       `json:"id"`
	JobID           *flexString `json:"job_id"`
	AssessmentID    *flexString `json:"assessment_id"`
	AssessmentScore *int64      `json:"assessment_score"`
	PracticalScore  *int64      `json:"practical_score"`
	InterviewScore  *int64      `json:"interview_score"`
	Status          *string     `json:"status"`
}

func (r UpdateAttemptRequest) patch() domain.AttemptPatch {
	p := domain.AttemptPatch{
		JobID:           r.JobID.ptr(),
		AssessmentID:    r.AssessmentID.ptr(),
		AssessmentScore: r.AssessmentScore,
		PracticalScore:  r.PracticalScore,
		InterviewScore:  r.InterviewScore,
	}
	if r.Status != nil {
		s := domain.AttemptStatus(*r.Status)
		p.Status = &s
	}
	return p
}

// Record godoc
// @Summary      Record an attempt for the caller
// @Tags         attempts
// @Accept       json
// @Produce      json
// @Param        request  body  RecordAttemptRequest  true  "Attempt"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /user/assessment-attempts [post]
// @Security     BearerAuth
func (h *AttemptHandler) Record(c *gin.Context) {
	var req RecordAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	attempt, err := h.attemptUC.Record(c.Request.Context(), domain.RecordAttemptInput{
		JobID:           string(req.JobID),
		AssessmentID:    string(req.AssessmentID),
		AssessmentScore: *req.AssessmentScore,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, h.label+" recorded successfully", resource.NewAttempt(*attempt))
}

// Check godoc
// @Summary      Whether the caller attempted an assessment
// @Tags         attempts
// @Produce      json
// @Param        job_id         query  int  true  "Job ID"
// @Param        assessment_id  query  int  true  "Assessment ID"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /user/check-test-attempt [get]
// @Security     BearerAuth
func (h *AttemptHandler) Check(c *gin.Context) {
	check, err := h.attemptUC.Check(c.Request.Context(), c.Query("job_id"), c.Query("assessment_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Attempt status", resource.NewAttemptCheck(check))
}

// Show godoc
// @Summary      Show an attempt
// @Tags         attempts
// @Produce      json
// @Param        id   path  int  true  "Attempt ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/assessment-attempts/{id} [get]
// @Security     BearerAuth
func (h *AttemptHandler) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	attempt, err := h.attemptUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" retrieved", resource.NewAttempt(*attempt))
}

// Update godoc
// @Summary      Partially update an attempt
// @Description  Only the fields present are changed. Requires assessment-edit.
// @Tags         attempts
// @Accept       json
// @Produce      json
// @Param        id       path  int                   true  "Attempt ID"
// @Param        request  body  UpdateAttemptRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /user/assessment-attempts/{id} [put]
// @Security     BearerAuth
func (h *AttemptHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	h.update(c, id, req)
}

// UpdateFromBody is the legacy update that takes the id in the body.
func (h *AttemptHandler) UpdateFromBody(c *gin.Context) {
	var req UpdateAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	if req.ID < 1 {
		c.Error(requiredField("id"))
		return
	}
	h.update(c, req.ID, req)
}

func (h *AttemptHandler) update(c *gin.Context, id int64, req UpdateAttemptRequest) {
	attempt, err := h.attemptUC.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" updated successfully", resource.NewAttempt(*attempt))
}

// Delete godoc
// @Summary      Delete an attempt
// @Tags         attempts
// @Produce      json
// @Param        id   path  int  true  "Attempt ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/assessment-attempts/{id} [delete]
// @Security     BearerAuth
func (h *AttemptHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.attemptUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" deleted successfully", nil)
}

// ListMine godoc
// @Summary      The caller's attempts
// @Tags         attempts
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/assessment-attempts [get]
// @Security     BearerAuth
func (h *AttemptHandler) ListMine(c *gin.Context) {
	attempts, err := h.attemptUC.ListMine(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+"s retrieved", resource.Collection(attempts, resource.NewAttempt))
}

// ListByUser godoc
// @Summary      Attempts of one user
// @Tags         attempts
// @Produce      json
// @Param        user_id  query  int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /user/applications-by-user [get]
// @Security     BearerAuth
func (h *AttemptHandler) ListByUser(c *gin.Context) {
	userID := int64(queryInt(c, "user_id", 0))
	if userID < 1 {
		c.Error(requiredField("user_id"))
		return
	}
	attempts, err := h.attemptUC.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+"s retrieved", resource.Collection(attempts, resource.NewAttempt))
}

// ListByJob godoc
// @Summary      Ranked roster of one job
// @Description  Sorted by assessment score, highest first; unscored last.
// @Tags         attempts
// @Produce      json
// @Param        job_id  query  int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /user/specific-job-applicants [get]
// @Security     BearerAuth
func (h *AttemptHandler) ListByJob(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		c.Error(requiredField("job_id"))
		return
	}
	attempts, err := h.attemptUC.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", resource.Collection(attempts, resource.NewRosterEntry))
}

// GroupByJob godoc
// @Summary      Every attempt grouped by job
// @Tags         attempts
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /user/all-jobs-applicants [get]
// @Security     BearerAuth
func (h *AttemptHandler) GroupByJob(c *gin.Context) {
	groups, err := h.attemptUC.GroupByJob(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants grouped by job", resource.Collection(groups, resource.NewJobGroup))
}

// ExportByJob godoc
// @Summary      Ranked roster of one job as XLSX
// @Tags         attempts
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        job_id  query  int  true  "Job ID"
// @Success      200  {file}  file
// @Failure      403  {object}  response.Response
// @Router       /user/specific-job-applicants/export [get]
// @Security     BearerAuth
func (h *AttemptHandler) ExportByJob(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		c.Error(requiredField("job_id"))
		return
	}
	data, err := h.attemptUC.ExportByJob(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("%s_job_%s.xlsx", h.attemptUC.Kind(), jobID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
