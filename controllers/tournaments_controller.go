package controllers

import (
	"net/http"

	"Knockout/models"

	"github.com/gin-gonic/gin"
)

// StartTournament opens a fresh bracket run. Existing matches stay behind
// under their old tournament id.
func (s *Server) StartTournament(c *gin.Context) {
	t, err := models.StartTournament(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot start tournament",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": t,
	})
}

// quarterFinalPairs maps registration-order seeds into fixtures:
// 1v8, 4v5, 2v7, 3v6.
var quarterFinalPairs = [4][3]int{
	{0, 7, 1},
	{3, 4, 2},
	{1, 6, 3},
	{2, 5, 4},
}

// SeedQuarterFinals creates the four QF fixtures for the active tournament
// from the first eight registered federations. Reseeding an already-seeded
// tournament requires ?force=true, which wipes its matches first.
func (s *Server) SeedQuarterFinals(c *gin.Context) {
	force := c.Query("force") == "true"

	team := models.Team{}
	teams, err := team.FindAllTeams(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot fetch teams",
		})
		return
	}
	if len(*teams) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Need at least 8 teams to start QF",
		})
		return
	}

	t, err := models.ActiveTournament(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot resolve active tournament",
		})
		return
	}

	match := models.Match{}
	existing, err := match.FindMatches(s.DB, models.StageQF, t.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot check existing fixtures",
		})
		return
	}
	if len(*existing) > 0 {
		if !force {
			c.JSON(http.StatusConflict, gin.H{
				"status": http.StatusConflict,
				"error":  "Quarter-Finals already exist for the current tournament",
			})
			return
		}
		if _, err := match.DeleteMatchesByTournament(s.DB, t.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  "Cannot reset tournament fixtures",
			})
			return
		}
	}

	selected := (*teams)[:8]
	created := make([]models.Match, 0, 4)

	for _, p := range quarterFinalPairs {
		home, away, pair := selected[p[0]], selected[p[1]], p[2]

		m := models.Match{
			TournamentID: t.ID,
			Stage:        models.StageQF,
			Pair:         pair,
			Status:       models.StatusScheduled,
			Mode:         models.ModeSimulate,
			HomeTeamID:   home.ID,
			AwayTeamID:   away.ID,
			Goals:        []models.GoalEvent{},
		}
		m.Prepare()

		if _, err := m.SaveMatch(s.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"error":  "Cannot create fixtures",
			})
			return
		}
		created = append(created, m)
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": created,
	})
}
