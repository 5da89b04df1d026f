package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"account-api/internal/domain"
	"account-api/internal/service"
	"account-api/internal/transport/http/ez"
)

type AuthHandler struct {
	svc Accounts
	// adminSignup exposes the anonymous /signup route for admin accounts.
	adminSignup bool
}

func NewAuthHandler(svc Accounts, adminSignup bool) *AuthHandler {
	return &AuthHandler{svc: svc, adminSignup: adminSignup}
}

// Mount registers /auth/*. None of these routes require a token.
func (h *AuthHandler) Mount(e ez.EZ) {
	if h.adminSignup {
		h.mountAdminSignup(e)
	}

	ez.RegisterAction(e, ez.Action[registerReq, *domain.UserView]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: "User created successfully",
		Handler: func(c *gin.Context, in *registerReq) (*domain.UserView, error) {
			return h.svc.Register(c.Request.Context(), service.RegisterInput{
				SignUpInput: in.input(),
				RoleName:    in.RoleName,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[loginReq, *service.LoginResult]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  ez.BindJSON,
		Message: "User Login Successfully",
		Handler: func(c *gin.Context, in *loginReq) (*service.LoginResult, error) {
			return h.svc.Login(c.Request.Context(), service.LoginInput{Email: in.Email, Password: in.Password})
		},
	})
}

func (h *AuthHandler) mountAdminSignup(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[signUpReq, *domain.UserView]{
		Method:  http.MethodPost,
		Path:    "/signup",
		Binder:  ez.BindJSON,
		Status:  http.StatusCreated,
		Message: "Admin registered successfully",
		Handler: func(c *gin.Context, in *signUpReq) (*domain.UserView, error) {
			return h.svc.AdminRegister(c.Request.Context(), in.input())
		},
	})
}

func (h *AuthHandler) Prefix() string { return "/auth" }
