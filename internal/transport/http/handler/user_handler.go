package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-api/internal/domain"
	"account-api/internal/transport/http/ez"
	mdw "account-api/internal/transport/http/middleware"
)

type UserHandler struct{ svc Accounts }

func NewUserHandler(svc Accounts) *UserHandler { return &UserHandler{svc: svc} }

// self returns the caller's id; the authenticator has already run.
func self(c *gin.Context) string {
	id, _ := mdw.IdentityFrom(c)
	return id.ID
}

func (h *UserHandler) Mount(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[profileReq, *domain.UserView]{
		Method:  http.MethodPatch,
		Path:    "/updateUser",
		Binder:  ez.BindJSON,
		Auth:    true,
		Message: "User updated successfully",
		Handler: func(c *gin.Context, in *profileReq) (*domain.UserView, error) {
			return h.svc.UpdateUser(c.Request.Context(), self(c), in.patch())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, any]{
		Method:  http.MethodDelete,
		Path:    "/delete",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "User successfully deleted",
		Handler: func(c *gin.Context, _ *struct{}) (any, error) {
			return nil, h.svc.SoftDeleteUser(c.Request.Context(), self(c))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.UserView]{
		Method:  http.MethodGet,
		Path:    "/me",
		Binder:  ez.BindNone,
		Auth:    true,
		Message: "User successfully fetched",
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return h.svc.GetUser(c.Request.Context(), self(c))
		},
	})
}

func (h *UserHandler) Prefix() string { return "/user" }
