package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/apperrors"
	"github.com/campus-link/api-go/utils"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, StandardResponse{Success: true, Data: data, Message: message})
}

// respondError maps err onto its status and code. Anything that is not an
// AppError is reported as a server error.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, ErrorResponse{Success: false, Error: apperrors.MessageOf(err), Code: apperrors.CodeOf(err)})
}

// badRequest answers a binding failure. The validator detail goes to the
// request log, not to the caller.
func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   apperrors.ErrInvalidParams.Message,
		Code:    apperrors.ErrInvalidParams.Code,
	})
}

// callerID is only called behind AuthMiddleware.
func callerID(c *gin.Context) string {
	if user := utils.GetUser(c); user != nil {
		return user.UserID
	}
	return ""
}
