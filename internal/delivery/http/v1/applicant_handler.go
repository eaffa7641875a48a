package v1

import (
	"net/http"

	"go-applicant-tracker/internal/delivery/http/resource"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicantHandler struct {
	applicantUC domain.ApplicantUsecase
}

func NewApplicantHandler(public, protected *gin.RouterGroup, uc domain.ApplicantUsecase) {
	handler := &ApplicantHandler{applicantUC: uc}

	public.GET("/applicants", handler.List)
	public.GET("/applicants/:id", handler.Show)

	protected.GET("/user/educationdetails", handler.EducationDetails)
}

// List godoc
// @Summary      List applicants with their profiles
// @Tags         applicants
// @Produce      json
// @Param        page      query  int  false  "Page number"
// @Param        per_page  query  int  false  "Page size (default 15)"
// @Success      200  {object}  response.Response
// @Router       /applicants [get]
func (h *ApplicantHandler) List(c *gin.Context) {
	result, err := h.applicantUC.List(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "per_page", 0))
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Applicants retrieved",
		resource.Collection(result.Items, resource.NewApplicant), result.Pagination)
}

// Show godoc
// @Summary      One applicant with their profile
// @Tags         applicants
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applicants/{id} [get]
func (h *ApplicantHandler) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	applicant, err := h.applicantUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicant retrieved", resource.NewApplicant(*applicant))
}

// EducationDetails godoc
// @Summary      The caller's profile in one payload
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/educationdetails [get]
// @Security     BearerAuth
func (h *ApplicantHandler) EducationDetails(c *gin.Context) {
	details, err := h.applicantUC.EducationDetails(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education details retrieved", resource.NewEducationDetails(details))
}
