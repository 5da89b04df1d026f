package handler

import (
	"account-api/internal/domain"
	"account-api/internal/service"
)

type signUpReq struct {
	Email    string `json:"email" binding:"required,email,max=191"`
	Name     string `json:"name" binding:"required,max=64"`
	Age      *int   `json:"age" binding:"required,gte=0,lte=150"`
	Address  string `json:"address" binding:"max=255"`
	Password string `json:"password" binding:"required,password,max=72"`
}

func (r signUpReq) input() service.SignUpInput {
	return service.SignUpInput{
		Email:    r.Email,
		Name:     r.Name,
		Age:      *r.Age,
		Address:  r.Address,
		Password: r.Password,
	}
}

type registerReq struct {
	signUpReq
	RoleName string `json:"roleName" binding:"required"`
}

// loginReq leaves password rules to the hash comparison so a wrong
// password reads as bad credentials, not a malformed request.
type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

type createRoleReq struct {
	RoleName string `json:"roleName" binding:"required,max=32"`
}

type profileReq struct {
	Name    *string `json:"name" binding:"omitempty,max=64"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	Age     *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
}

func (r profileReq) patch() domain.ProfilePatch {
	return domain.ProfilePatch{Name: r.Name, Address: r.Address, Age: r.Age}
}

type idReq struct {
	ID string `uri:"id" json:"-" binding:"required,max=36"`
}

type adminUpdateReq struct {
	idReq
	profileReq
}
