package v1

import (
	"errors"
	"net/http"

	"go-applicant-tracker/internal/delivery/http/resource"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// profileRequest is the bound body of a profile sub-resource create or update.
type profileRequest[T domain.OwnedRecord] interface {
	toRecord() T
}

// ProfileHandler serves CRUD for one profile sub-resource kind. Bodies may be
// JSON or multipart; certificates only arrive as multipart files.
type ProfileHandler[T domain.OwnedRecord, R profileRequest[T]] struct {
	uc        domain.ProfileUsecase[T]
	label     string
	certField string
	render    func(T) interface{}
}

func registerProfileRoutes[T domain.OwnedRecord, R profileRequest[T]](r *gin.RouterGroup, path string, h *ProfileHandler[T, R]) {
	g := r.Group(path)
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Show)
		g.PUT("/:id", h.Update)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

// ProfileUsecases bundles the four profile sub-resource usecases.
type ProfileUsecases struct {
	PersonalDetails            domain.ProfileUsecase[*domain.PersonalDetails]
	HighestEducationLevel      domain.ProfileUsecase[*domain.HighestEducationLevel]
	SecondaryEducation         domain.ProfileUsecase[*domain.SecondaryEducation]
	ProfessionalQualifications domain.ProfileUsecase[*domain.ProfessionalQualification]
}

// NewProfileHandlers registers /user/personaldetails, /user/highestEducationLevel,
// /user/secondaryEducation and /user/professionalQualification.
func NewProfileHandlers(protected *gin.RouterGroup, ucs ProfileUsecases) {
	personal := &ProfileHandler[*domain.PersonalDetails, PersonalDetailsRequest]{
		uc:     ucs.PersonalDetails,
		label:  "Personal details",
		render: func(p *domain.PersonalDetails) interface{} { return resource.NewPersonalDetails(p) },
	}
	highest := &ProfileHandler[*domain.HighestEducationLevel, HighestEducationLevelRequest]{
		uc:        ucs.HighestEducationLevel,
		label:     "Highest education level",
		certField: "certificate",
		render:    func(h *domain.HighestEducationLevel) interface{} { return resource.NewHighestEducationLevel(h) },
	}
	secondary := &ProfileHandler[*domain.SecondaryEducation, SecondaryEducationRequest]{
		uc:        ucs.SecondaryEducation,
		label:     "High School Details",
		certField: "kcseCertificate",
		render:    func(s *domain.SecondaryEducation) interface{} { return resource.NewSecondaryEducation(s) },
	}
	professional := &ProfileHandler[*domain.ProfessionalQualification, ProfessionalQualificationRequest]{
		uc:        ucs.ProfessionalQualifications,
		label:     "Professional qualifications",
		certField: "professionalCertificate",
		render:    func(q *domain.ProfessionalQualification) interface{} { return resource.NewProfessionalQualification(q) },
	}

	user := protected.Group("/user")
	registerProfileRoutes(user, "/personaldetails", personal)
	registerProfileRoutes(user, "/highestEducationLevel", highest)
	registerProfileRoutes(user, "/secondaryEducation", secondary)
	registerProfileRoutes(user, "/professionalQualification", professional)

	protected.PUT("/update-professional-qualifications/:id", professional.Update)
}

type PersonalDetailsRequest struct {
	Firstname  string `json:"firstname" form:"firstname" binding:"required,max=255,valid_name"`
	Lastname   string `json:"lastname" form:"lastname" binding:"required,max=255,valid_name"`
	NationalID string `json:"nationalId" form:"nationalId" binding:"required,max=50"`
	ContactNo  string `json:"contactNo" form:"contactNo" binding:"required,valid_phone"`
	Address    string `json:"address" form:"address" binding:"required,max=255,no_emoji"`
	Gender     string `json:"gender" form:"gender" binding:"required,max=20"`
}

func (r PersonalDetailsRequest) toRecord() *domain.PersonalDetails {
	return &domain.PersonalDetails{
		Firstname:  r.Firstname,
		Lastname:   r.Lastname,
		NationalID: r.NationalID,
		ContactNo:  r.ContactNo,
		Address:    r.Address,
		Gender:     r.Gender,
	}
}

type HighestEducationLevelRequest struct {
	Institution    string `json:"institution" form:"institution" binding:"required,max=255"`
	Course         string `json:"course" form:"course" binding:"required,max=255"`
	GraduationYear int    `json:"graduationYear" form:"graduationYear" binding:"required,gte=1900,max_current_year"`
	Grade          string `json:"grade" form:"grade" binding:"required,max=50"`
}

func (r HighestEducationLevelRequest) toRecord() *domain.HighestEducationLevel {
	return &domain.HighestEducationLevel{
		Institution:    r.Institution,
		Course:         r.Course,
		GraduationYear: r.GraduationYear,
		Grade:          r.Grade,
	}
}

type SecondaryEducationRequest struct {
	School   string `json:"school" form:"school" binding:"required,max=255"`
	KCSEYear int    `json:"kcseYear" form:"kcseYear" binding:"required,gte=1900,max_current_year"`
	Grade    string `json:"grade" form:"grade" binding:"required,max=50"`
}

func (r SecondaryEducationRequest) toRecord() *domain.SecondaryEducation {
	return &domain.SecondaryEducation{School: r.School, KCSEYear: r.KCSEYear, Grade: r.Grade}
}

type ProfessionalQualificationRequest struct {
	Institution string `json:"institution" form:"institution" binding:"required,max=255"`
	Body        string `json:"body" form:"body" binding:"required,max=255"`
	Award       string `json:"award" form:"award" binding:"required,max=255"`
}

func (r ProfessionalQualificationRequest) toRecord() *domain.ProfessionalQualification {
	return &domain.ProfessionalQualification{Institution: r.Institution, Body: r.Body, Award: r.Award}
}

func (h *ProfileHandler[T, R]) bind(c *gin.Context) (T, *domain.CertificateUpload, error) {
	var zero T
	var req R
	if err := c.ShouldBind(&req); err != nil {
		return zero, nil, bindError(err)
	}
	upload, err := certificateUpload(c, h.certField)
	if err != nil {
		return zero, nil, err
	}
	return req.toRecord(), upload, nil
}

// List godoc
// @Summary      List profile records
// @Description  Callers with user-list see every record, others only their own.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/personaldetails [get]
// @Security     BearerAuth
func (h *ProfileHandler[T, R]) List(c *gin.Context) {
	records, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" retrieved", resource.Collection(records, h.render))
}

// Create godoc
// @Summary      Create the caller's profile record
// @Tags         profile
// @Accept       json,mpfd
// @Produce      json
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /user/personaldetails [post]
// @Security     BearerAuth
func (h *ProfileHandler[T, R]) Create(c *gin.Context) {
	record, upload, err := h.bind(c)
	if err != nil {
		c.Error(err)
		return
	}

	created, err := h.uc.Create(c.Request.Context(), record, upload)
	if err != nil {
		c.Error(h.renderConflict(err))
		return
	}
	response.Success(c, http.StatusCreated, h.label+" Created Successfully", h.render(created))
}

// renderConflict maps the echoed existing_record through the resource shape.
func (h *ProfileHandler[T, R]) renderConflict(err error) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return err
	}
	data, ok := appErr.Data.(map[string]interface{})
	if !ok {
		return err
	}
	if existing, ok := data["existing_record"].(T); ok {
		data["existing_record"] = h.render(existing)
	}
	return err
}

// Show godoc
// @Summary      Show a profile record
// @Tags         profile
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/personaldetails/{id} [get]
// @Security     BearerAuth
func (h *ProfileHandler[T, R]) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	record, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" retrieved", h.render(record))
}

// Update godoc
// @Summary      Replace a profile record
// @Description  Omitting the certificate keeps the stored one.
// @Tags         profile
// @Accept       json,mpfd
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /user/personaldetails/{id} [put]
// @Security     BearerAuth
func (h *ProfileHandler[T, R]) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	record, upload, err := h.bind(c)
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.uc.Update(c.Request.Context(), id, record, upload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" Updated Successfully", h.render(updated))
}

// Delete godoc
// @Summary      Delete a profile record and its certificate
// @Tags         profile
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/personaldetails/{id} [delete]
// @Security     BearerAuth
func (h *ProfileHandler[T, R]) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" Deleted Successfully", nil)
}
