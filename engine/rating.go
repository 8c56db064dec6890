package engine

import (
	"math"

	"Knockout/models"
)

// DeriveTeamRating computes a squad's overall rating at registration time.
// Each player scores naturalRating*0.7 + mean(all four ratings)*0.3; the team
// rating is the rounded mean of those scores. An empty roster rates 0.
func DeriveTeamRating(players []models.Player) int {
	if len(players) == 0 {
		return 0
	}

	total := 0.0
	for i := range players {
		p := &players[i]
		avg := float64(p.RatingGK+p.RatingDF+p.RatingMD+p.RatingAT) / 4.0
		total += float64(p.NaturalRating())*0.7 + avg*0.3
	}
	return int(math.Round(total / float64(len(players))))
}

// clampRating bounds a team rating to the range the shot model is tuned for.
func clampRating(rating int) int {
	if rating < 10 {
		return 10
	}
	if rating > 100 {
		return 100
	}
	return rating
}
