package controllers

import (
	"net/http"

	"Knockout/engine"
	"Knockout/models"

	"github.com/gin-gonic/gin"
)

// CreateTeam registers a federation with its full 23-man squad. The team
// rating is derived once here and never recomputed by match logic.
func (s *Server) CreateTeam(c *gin.Context) {
	team := models.Team{}
	if err := c.ShouldBindJSON(&team); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	team.Prepare()
	if errs := team.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errs,
		})
		return
	}

	team.Rating = engine.DeriveTeamRating(team.Players)

	created, err := team.SaveTeam(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot create team",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": created,
	})
}

func (s *Server) GetTeams(c *gin.Context) {
	team := models.Team{}
	teams, err := team.FindAllTeams(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot fetch teams",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": teams,
	})
}

func (s *Server) GetTeam(c *gin.Context) {
	team := models.Team{}
	found, err := team.FindTeamByID(s.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Team not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": found,
	})
}

func (s *Server) DeleteTeam(c *gin.Context) {
	team := models.Team{}
	deleted, err := team.DeleteTeam(s.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot delete team",
		})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Team not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": "Team deleted",
	})
}
