package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-api/internal/domain"
	"account-api/internal/transport/http/ez"
)

type AdminHandler struct{ svc Accounts }

func NewAdminHandler(svc Accounts) *AdminHandler { return &AdminHandler{svc: svc} }

// Mount registers /admin/*; every route requires the admin role.
func (h *AdminHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[createRoleReq, *domain.Role]{
		Method:  http.MethodPost,
		Path:    "/createRole",
		Binder:  ez.BindJSON,
		Role:    domain.RoleAdmin,
		Status:  http.StatusCreated,
		Message: "Role created successfully",
		Handler: func(c *gin.Context, in *createRoleReq) (*domain.Role, error) {
			return h.svc.CreateRole(c.Request.Context(), in.RoleName)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.UserView]{
		Method:  http.MethodGet,
		Path:    "/getAllUsers",
		Binder:  ez.BindNone,
		Role:    domain.RoleAdmin,
		Message: "Users fetched successfully",
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.UserView, error) {
			return h.svc.GetAllUsers(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[idReq, any]{
		Method:  http.MethodPatch,
		Path:    "/:id/deactivateUser",
		Binder:  ez.BindURI,
		Role:    domain.RoleAdmin,
		Message: "User deactivated successfully",
		Handler: func(c *gin.Context, in *idReq) (any, error) {
			return nil, h.svc.DeactivateUser(c.Request.Context(), in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[idReq, any]{
		Method:  http.MethodPatch,
		Path:    "/:id/activateUser",
		Binder:  ez.BindURI,
		Role:    domain.RoleAdmin,
		Message: "User activated successfully",
		Handler: func(c *gin.Context, in *idReq) (any, error) {
			return nil, h.svc.ActivateUser(c.Request.Context(), in.ID)
		},
	})

	ez.RegisterAction(e, ez.Action[adminUpdateReq, *domain.UserView]{
		Method:  http.MethodPatch,
		Path:    "/:id/updateUserByadmin",
		Binder:  ez.BindBoth,
		Role:    domain.RoleAdmin,
		Message: "User updated successfully",
		Handler: func(c *gin.Context, in *adminUpdateReq) (*domain.UserView, error) {
			return h.svc.UpdateUserByAdmin(c.Request.Context(), in.ID, in.patch())
		},
	})

	ez.RegisterAction(e, ez.Action[idReq, *domain.UserView]{
		Method:  http.MethodGet,
		Path:    "/:id/getUser",
		Binder:  ez.BindURI,
		Role:    domain.RoleAdmin,
		Message: "User successfully fetched",
		Handler: func(c *gin.Context, in *idReq) (*domain.UserView, error) {
			return h.svc.GetUser(c.Request.Context(), in.ID)
		},
	})
}

func (h *AdminHandler) Prefix() string { return "/admin" }
