package v1

import (
	"net/http"

	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type PasswordHandler struct {
	passwordUC domain.PasswordUsecase
}

// NewPasswordHandler registers the reset flow; limit throttles the writes.
func NewPasswordHandler(public *gin.RouterGroup, passwordUC domain.PasswordUsecase, limit gin.HandlerFunc) {
	handler := &PasswordHandler{passwordUC: passwordUC}

	public.POST("/forgot-password", limit, handler.ForgotPassword)
	public.GET("/reset-password/:token", handler.ShowResetToken)
	public.POST("/reset-password", limit, handler.ResetPassword)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token                string `json:"token" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// ForgotPassword godoc
// @Summary      Mail a password reset link
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request  body      ForgotPasswordRequest  true  "Email"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	if err := h.passwordUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "We have emailed your password reset link.", nil)
}

// ShowResetToken echoes the token so the frontend can render its form.
func (h *PasswordHandler) ShowResetToken(c *gin.Context) {
	response.Success(c, http.StatusOK, "Reset token", gin.H{"token": c.Param("token")})
}

// ResetPassword godoc
// @Summary      Reset a password with a mailed token
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request  body      ResetPasswordRequest  true  "Token and new password"
// @Success      200    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /reset-password [post]
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	err := h.passwordUC.ResetPassword(c.Request.Context(), domain.ResetPasswordInput{
		Token:    req.Token,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Your password has been reset.", nil)
}
