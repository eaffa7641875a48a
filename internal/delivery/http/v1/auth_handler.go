package v1

import (
	"net/http"

	"go-applicant-tracker/internal/delivery/http/resource"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers registration, login and session routes.
// loginLimit guards the login endpoint; provision is the group that may
// create users on behalf of others.
func NewAuthHandler(public, protected, provision *gin.RouterGroup, authUC domain.AuthUsecase, loginLimit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	public.POST("/register", handler.Register)
	public.POST("/login", loginLimit, handler.Login)

	protected.GET("/profile", handler.Profile)
	protected.POST("/logout", handler.Logout)
	protected.POST("/logout-all", handler.LogoutAll)

	provision.POST("/users", handler.ProvisionUser)
}

type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=3"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type ProvisionUserRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Role     string `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      Applicant self registration
// @Description  Creates an applicant account, mails a verification link and returns an access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.authUC.RegisterApplicant(c.Request.Context(), domain.RegisterApplicantInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered. Check your email for verification link.", gin.H{
		"user":         resource.NewUser(result.User),
		"access_token": result.Token,
	})
}

// ProvisionUser godoc
// @Summary      Create a user with a role
// @Description  Creates a user with the default password and mails the credentials.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        user  body      ProvisionUserRequest  true  "User details"
// @Success      200    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /admin/users [post]
// @Security     BearerAuth
func (h *AuthHandler) ProvisionUser(c *gin.Context) {
	var req ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.authUC.ProvisionUser(c.Request.Context(), domain.ProvisionUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User has been successfully registered!", gin.H{
		"token":    result.Token,
		"username": result.User.DisplayName(),
		"email":    result.User.Email,
		"role":     req.Role,
	})
}

// Login godoc
// @Summary      Login
// @Description  Issues a new bearer token. Other tokens of the user stay valid.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}

	roles := result.Roles
	if roles == nil {
		roles = []string{}
	}
	response.Success(c, http.StatusOK, "User allowed to login!", gin.H{
		"token":    result.Token,
		"username": result.User.DisplayName(),
		"email":    result.User.Email,
		"role":     roles,
	})
}

// Profile godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.authUC.Me(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "profile information", resource.NewUser(user))
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Router       /logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUC.Logout(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Log out successful!", nil)
}

// LogoutAll godoc
// @Summary      Revoke every token of the current user
// @Tags         auth
// @Produce      json
// @Success      200    {object}  response.Response
// @Router       /logout-all [post]
// @Security     BearerAuth
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authUC.LogoutAll(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "user logged out", nil)
}
