package v1

import (
	"net/http"
	"strconv"

	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"
	"go-applicant-tracker/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	verificationUC domain.VerificationUsecase
	frontendURL    string
}

// NewVerificationHandler registers the email verification routes. noticeLimit
// throttles resend requests per user.
func NewVerificationHandler(public, protected *gin.RouterGroup, uc domain.VerificationUsecase, frontendURL string, noticeLimit gin.HandlerFunc) {
	handler := &VerificationHandler{
		verificationUC: uc,
		frontendURL:    frontendURL,
	}

	public.GET("/email/verify/:id/:hash", handler.Verify)

	protected.GET("/email/verify", handler.Notice)
	protected.POST("/email/verification-notification", noticeLimit, handler.Resend)
	protected.GET("/user/verification-status", handler.Status)
}

// Verify godoc
// @Summary      Verify an email address from a signed link
// @Tags         verification
// @Param        id         path   int     true  "User ID"
// @Param        hash       path   string  true  "sha1 of the email"
// @Param        signature  query  string  true  "Link signature"
// @Success      302
// @Failure      403  {object}  response.Response
// @Router       /email/verify/{id}/{hash} [get]
func (h *VerificationHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Forbidden("Invalid signature."))
		return
	}

	if err := h.verificationUC.Verify(c.Request.Context(), id, c.Param("hash"), c.Query("signature")); err != nil {
		c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/dashboard")
}

// Notice godoc
// @Summary      Verification notice
// @Tags         verification
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /email/verify [get]
// @Security     BearerAuth
func (h *VerificationHandler) Notice(c *gin.Context) {
	response.Success(c, http.StatusOK, " We have sent you email. Please verify your email.", nil)
}

// Resend godoc
// @Summary      Resend the verification link
// @Tags         verification
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /email/verification-notification [post]
// @Security     BearerAuth
func (h *VerificationHandler) Resend(c *gin.Context) {
	already, err := h.verificationUC.Resend(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if already {
		response.Success(c, http.StatusOK, "User Has Already verified!", nil)
		return
	}
	response.Success(c, http.StatusOK, "Verification link sent!", nil)
}

// Status godoc
// @Summary      Whether the current user verified their email
// @Tags         verification
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /user/verification-status [get]
// @Security     BearerAuth
func (h *VerificationHandler) Status(c *gin.Context) {
	verified, err := h.verificationUC.Status(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification status", gin.H{"verified": verified})
}
