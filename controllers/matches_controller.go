package controllers

import (
	"net/http"

	"Knockout/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetMatches(c *gin.Context) {
	match := models.Match{}
	matches, err := match.FindMatches(s.DB, c.Query("stage"), c.Query("tournament_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot fetch matches",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": matches,
	})
}

func (s *Server) GetMatch(c *gin.Context) {
	match := models.Match{}
	found, err := match.FindMatchByID(s.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Match not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": found,
	})
}

// SimulateMatch resolves a match in quick mode: a random scoreline with goal
// placeholders, no commentary.
func (s *Server) SimulateMatch(c *gin.Context) {
	s.resolveMatch(c, models.ModeSimulate)
}

// PlayMatch resolves a match in full-play mode: minute-by-minute simulation
// with commentary, extra time and penalties when needed.
func (s *Server) PlayMatch(c *gin.Context) {
	s.resolveMatch(c, models.ModePlay)
}

func (s *Server) resolveMatch(c *gin.Context, mode string) {
	match := models.Match{}
	m, err := match.FindMatchByID(s.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Match not found",
		})
		return
	}

	if m.HasTBDSlot() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Both teams must be decided before the match can be played",
		})
		return
	}

	home := models.Team{}
	if _, err := home.FindTeamByID(s.DB, m.HomeTeamID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Teams not found for this match",
		})
		return
	}
	away := models.Team{}
	if _, err := away.FindTeamByID(s.DB, m.AwayTeamID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Teams not found for this match",
		})
		return
	}

	// The write-trigger contract wants the record as it stood before this
	// write; advancement keys its idempotence off it.
	before := *m

	var result = s.Sim.Quick(m, &home, &away)
	if mode == models.ModePlay {
		result = s.Sim.Play(m, &home, &away)
	}

	m.HomeScore = result.HomeScore
	m.AwayScore = result.AwayScore
	m.Goals = result.Goals
	m.Commentary = result.Commentary
	m.Decision = result.Decision
	m.Mode = mode

	saved, err := m.SaveResult(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot save match result",
		})
		return
	}

	s.dispatchMatchWrite(&before, saved)

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": saved,
	})
}
