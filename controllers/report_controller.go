package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/services"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

type ReportRequest struct {
	Motivo      string `json:"motivo" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type ResolveReportRequest struct {
	Estado string `json:"estado" binding:"required"`
}

func (rc *ReportController) ReportFavor(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	report, err := rc.Reports.ReportFavor(c.Request.Context(), callerID(c), c.Param("id"), req.Motivo, req.Descripcion)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, report, "Report submitted")
}

func (rc *ReportController) ListPending(c *gin.Context) {
	reports, err := rc.Reports.ListPending(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, reports, "")
}

func (rc *ReportController) Resolve(c *gin.Context) {
	var req ResolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	report, err := rc.Reports.Resolve(c.Request.Context(), callerID(c), c.Param("id"), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, report, "Report resolved")
}
