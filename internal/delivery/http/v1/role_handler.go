package v1

import (
	"net/http"

	"go-applicant-tracker/internal/delivery/http/middleware"
	"go-applicant-tracker/internal/delivery/http/resource"
	"go-applicant-tracker/internal/delivery/http/response"
	"go-applicant-tracker/internal/domain"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleUC domain.RoleUsecase
}

// NewRoleHandler registers role administration under admin, each route gated
// by its permission.
func NewRoleHandler(admin *gin.RouterGroup, uc domain.RoleUsecase) {
	handler := &RoleHandler{roleUC: uc}

	admin.GET("/permissions", middleware.RequirePermission(domain.PermRoleCreate), handler.Permissions)

	roles := admin.Group("/roles")
	{
		roles.GET("", middleware.RequirePermission(domain.PermRoleList), handler.List)
		roles.POST("", middleware.RequirePermission(domain.PermRoleCreate), handler.Create)
		roles.GET("/:id", middleware.RequirePermission(domain.PermRoleList), handler.Show)
		roles.PUT("/:id", middleware.RequirePermission(domain.PermRoleEdit), handler.Update)
		roles.DELETE("/:id", middleware.RequirePermission(domain.PermRoleDelete), handler.Delete)
	}
}

type RoleRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Permission []int64 `json:"permission" binding:"required,min=1"`
}

// List godoc
// @Summary      Roles, newest first
// @Tags         admin
// @Produce      json
// @Param        page  query  int  false  "Page number"
// @Success      200  {object}  response.Response
// @Router       /admin/roles [get]
// @Security     BearerAuth
func (h *RoleHandler) List(c *gin.Context) {
	result, err := h.roleUC.List(c.Request.Context(), queryInt(c, "page", 1))
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Roles retrieved", resource.Collection(result.Items, resource.NewRole), result.Pagination)
}

// Permissions godoc
// @Summary      Every permission
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/permissions [get]
// @Security     BearerAuth
func (h *RoleHandler) Permissions(c *gin.Context) {
	perms, err := h.roleUC.Permissions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Permissions retrieved", perms)
}

// Create godoc
// @Summary      Create a role with permissions
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body  RoleRequest  true  "Role"
// @Success      201  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /admin/roles [post]
// @Security     BearerAuth
func (h *RoleHandler) Create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	role, err := h.roleUC.Create(c.Request.Context(), domain.RoleInput{Name: req.Name, PermissionIDs: req.Permission})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Role created successfully.", resource.NewRole(*role))
}

// Show godoc
// @Summary      A role and its permissions
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/roles/{id} [get]
// @Security     BearerAuth
func (h *RoleHandler) Show(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	role, err := h.roleUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role retrieved", resource.NewRole(*role))
}

// Update godoc
// @Summary      Rename a role and sync its permissions
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path  int          true  "Role ID"
// @Param        request  body  RoleRequest  true  "Role"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /admin/roles/{id} [put]
// @Security     BearerAuth
func (h *RoleHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}
	role, err := h.roleUC.Update(c.Request.Context(), id, domain.RoleInput{Name: req.Name, PermissionIDs: req.Permission})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role updated successfully.", resource.NewRole(*role))
}

// Delete godoc
// @Summary      Delete a role
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Role ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/roles/{id} [delete]
// @Security     BearerAuth
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.roleUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Role deleted successfully.", nil)
}
