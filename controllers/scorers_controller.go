package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"Knockout/cache"

	"github.com/gin-gonic/gin"
)

const scorersCacheKey = "scorers:top"

type TopScorer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id"`
	Country  string `json:"country"`
	Goals    int    `json:"goals"`
}

// GetTopScorers aggregates goal events into a golden-boot table. Results are
// cached for a minute; the cache is a best-effort layer and a cold redis just
// means hitting the database.
func (s *Server) GetTopScorers(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := cache.Get(ctx, scorersCacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	var scorers []TopScorer
	err := s.DB.Table("goal_events").
		Select("goal_events.player_id AS player_id, players.name AS name, goal_events.team_id AS team_id, teams.country AS country, COUNT(*) AS goals").
		Joins("JOIN players ON players.id = goal_events.player_id").
		Joins("JOIN teams ON teams.id = goal_events.team_id").
		Group("goal_events.player_id, players.name, goal_events.team_id, teams.country").
		Order("goals DESC").
		Limit(20).
		Scan(&scorers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot fetch scorers",
		})
		return
	}

	payload, err := json.Marshal(gin.H{
		"status":   http.StatusOK,
		"response": scorers,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot encode scorers",
		})
		return
	}

	_ = cache.Set(ctx, scorersCacheKey, payload, time.Minute)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
