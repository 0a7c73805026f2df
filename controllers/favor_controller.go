package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/lifecycle"
	"github.com/campus-link/api-go/services"
)

type FavorController struct {
	Favors        *services.FavorService
	DefaultPolicy string
}

func NewFavorController(favors *services.FavorService, defaultPolicy string) *FavorController {
	return &FavorController{Favors: favors, DefaultPolicy: defaultPolicy}
}

type CreateFavorRequest struct {
	Titulo         string `json:"titulo" binding:"required"`
	Descripcion    string `json:"descripcion"`
	Categoria      string `json:"categoria" binding:"required"`
	Disponibilidad string `json:"disponibilidad"`
	Duracion       string `json:"duracion"`
}

type AcceptHelperRequest struct {
	AyudanteID string `json:"ayudanteId" binding:"required"`
}

type ConfirmRequest struct {
	Rol string `json:"rol"`
}

func (fc *FavorController) CreateFavor(c *gin.Context) {
	var req CreateFavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	favor, err := fc.Favors.Create(c.Request.Context(), callerID(c), lifecycle.NewFavorInput{
		Titulo:         req.Titulo,
		Descripcion:    req.Descripcion,
		Categoria:      req.Categoria,
		Disponibilidad: req.Disponibilidad,
		Duracion:       req.Duracion,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, favor, "Favor created")
}

func (fc *FavorController) ListFavors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	result, err := fc.Favors.List(c.Request.Context(), services.FavorFilter{
		Categoria: c.Query("categoria"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    result.Items,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  int64(result.Total),
			TotalPages:  (result.Total + pageSize - 1) / pageSize,
		},
	})
}

func (fc *FavorController) ListMyFavors(c *gin.Context) {
	favors, err := fc.Favors.ListByOwner(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favors, "")
}

func (fc *FavorController) ListHelping(c *gin.Context) {
	favors, err := fc.Favors.ListByHelper(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favors, "")
}

func (fc *FavorController) GetFavor(c *gin.Context) {
	favor, err := fc.Favors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "")
}

func (fc *FavorController) DeleteFavor(c *gin.Context) {
	if err := fc.Favors.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Favor deleted")
}

func (fc *FavorController) OfferHelp(c *gin.Context) {
	favor, err := fc.Favors.OfferHelp(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "Offer sent")
}

func (fc *FavorController) AcceptHelper(c *gin.Context) {
	var req AcceptHelperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	favor, err := fc.Favors.AcceptHelper(c.Request.Context(), c.Param("id"), callerID(c), req.AyudanteID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "Helper accepted")
}

func (fc *FavorController) FinalizeFavor(c *gin.Context) {
	favor, err := fc.Favors.Finalize(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "Favor finalized")
}

func (fc *FavorController) ConfirmFavor(c *gin.Context) {
	var req ConfirmRequest
	// The body is optional; an empty one lets the server resolve the role.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err)
			return
		}
	}

	favor, err := fc.Favors.ConfirmFinalization(c.Request.Context(), c.Param("id"), callerID(c), req.Rol)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "Confirmation recorded")
}

func (fc *FavorController) TogglePin(c *gin.Context) {
	favor, err := fc.Favors.TogglePin(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, favor, "")
}

// RatingEligibility tells the caller whether they may rate the favor and whom.
func (fc *FavorController) RatingEligibility(c *gin.Context) {
	policy, err := lifecycle.PolicyByName(c.Query("policy"), fc.DefaultPolicy)
	if err != nil {
		respondError(c, err)
		return
	}

	eligibility, err := fc.Favors.RatingEligibility(c.Request.Context(), c.Param("id"), callerID(c), policy)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"policy":       policy.Name(),
		"rol":          eligibility.RaterRole,
		"calificadoId": eligibility.Rated.ID,
		"calificado":   eligibility.Rated.Nombre,
	}, "")
}
