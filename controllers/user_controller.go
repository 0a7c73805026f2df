package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/services"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

type SetRoleRequest struct {
	Rol string `json:"rol" binding:"required"`
}

func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "")
}

func (uc *UserController) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := uc.Users.SetRole(c.Request.Context(), callerID(c), c.Param("id"), req.Rol)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Role updated")
}
