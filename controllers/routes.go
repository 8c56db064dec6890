package controllers

import (
	"Knockout/middlewares"
)

func (s *Server) initializeRoutes() {

	v1 := s.Router.Group("/api/v1")
	{
		// Users routes
		v1.POST("/login", s.Login)
		v1.POST("/users", s.CreateUser)
		v1.GET("/users/:id", s.GetUser)

		// Federation (team) routes
		v1.POST("/teams", s.CreateTeam)
		v1.GET("/teams", s.GetTeams)
		v1.GET("/teams/:id", s.GetTeam)
		v1.DELETE("/teams/:id", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminAuthMiddleware(), s.DeleteTeam)
		v1.PUT("/teams/:id/badge", middlewares.TokenAuthMiddleware(s.DB), s.UploadTeamBadge)

		// Tournament and bracket routes
		v1.POST("/tournaments", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminAuthMiddleware(), s.StartTournament)
		v1.POST("/tournaments/seed", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminAuthMiddleware(), s.SeedQuarterFinals)

		// Match routes
		v1.GET("/matches", s.GetMatches)
		v1.GET("/matches/:id", s.GetMatch)
		v1.POST("/matches/:id/simulate", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminAuthMiddleware(), s.SimulateMatch)
		v1.POST("/matches/:id/play", middlewares.TokenAuthMiddleware(s.DB), middlewares.AdminAuthMiddleware(), s.PlayMatch)

		// Top scorers
		v1.GET("/scorers", s.GetTopScorers)
	}
}
