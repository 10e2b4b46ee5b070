package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/entity"
	"github.com/n4mp3un9/car-rental-sub001/pkg/resp"
	"github.com/n4mp3un9/car-rental-sub001/services"
	"github.com/n4mp3un9/car-rental-sub001/utils"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	Role            string `json:"role" binding:"omitempty,role"`
	ShopName        string `json:"shopName"`
	ShopDescription string `json:"shopDescription"`
	ShopAddress     string `json:"shopAddress"`
	PromptPayID     string `json:"promptpayId"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type ProfileRequest struct {
	Email           *string `json:"email" binding:"omitempty,email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Phone           *string `json:"phone"`
	ShopName        *string `json:"shopName"`
	ShopDescription *string `json:"shopDescription"`
	ShopAddress     *string `json:"shopAddress"`
	PromptPayID     *string `json:"promptpayId"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type AuthController struct{ Service *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Service: s} }

// POST /api/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Register(c.Request.Context(), services.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Role:            entity.Role(req.Role),
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		ShopAddress:     req.ShopAddress,
		PromptPayID:     req.PromptPayID,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"token": token, "user": user})
}

// POST /api/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	token, user, err := a.Service.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /api/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Service.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// PUT /api/profile
func (a *AuthController) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	user, err := a.Service.UpdateProfile(c.Request.Context(), utils.CurrentUserID(c), services.ProfileInput{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		ShopName:        req.ShopName,
		ShopDescription: req.ShopDescription,
		ShopAddress:     req.ShopAddress,
		PromptPayID:     req.PromptPayID,
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, user)
}

// PUT /api/profile/password
func (a *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := a.Service.ChangePassword(c.Request.Context(), utils.CurrentUserID(c), req.OldPassword, req.NewPassword); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "password updated"})
}
