package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-link/api-go/lifecycle"
	"github.com/campus-link/api-go/services"
)

type RatingController struct {
	Ratings       *services.RatingService
	DefaultPolicy string
}

func NewRatingController(ratings *services.RatingService, defaultPolicy string) *RatingController {
	return &RatingController{Ratings: ratings, DefaultPolicy: defaultPolicy}
}

type RateRequest struct {
	Estrellas  int    `json:"estrellas" binding:"required"`
	Comentario string `json:"comentario"`
}

func (rc *RatingController) RateFavor(c *gin.Context) {
	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	policy, err := lifecycle.PolicyByName(c.Query("policy"), rc.DefaultPolicy)
	if err != nil {
		respondError(c, err)
		return
	}

	rating, err := rc.Ratings.Rate(c.Request.Context(), services.RateInput{
		FavorID:    c.Param("id"),
		RaterID:    callerID(c),
		Estrellas:  req.Estrellas,
		Comentario: req.Comentario,
	}, policy)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, rating, "Rating recorded")
}

func (rc *RatingController) ListFavorRatings(c *gin.Context) {
	ratings, err := rc.Ratings.ListForFavor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, ratings, "")
}

func (rc *RatingController) ListUserRatings(c *gin.Context) {
	ratings, err := rc.Ratings.ListReceived(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, ratings, "")
}
