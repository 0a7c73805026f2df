package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/services"
)

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type RegisterRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Telefono string `json:"telefono"`
	Carrera  string `json:"carrera"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Nombre   *string `json:"nombre"`
	Telefono *string `json:"telefono"`
	Carrera  *string `json:"carrera"`
	Foto     *string `json:"foto"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), services.RegisterInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
		Telefono: req.Telefono,
		Carrera:  req.Carrera,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "User registered successfully")
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := ac.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"token_type":   "Bearer",
		"access_token": session.Token,
		"user":         session.Usuario,
	}, "")
}

func (ac *AuthController) GetProfile(c *gin.Context) {
	user, err := ac.Users.Get(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "")
}

func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ac.Users.UpdateProfile(c.Request.Context(), callerID(c), services.ProfileInput{
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		Carrera:  req.Carrera,
		Foto:     req.Foto,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Profile updated")
}
