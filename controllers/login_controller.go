package controllers

import (
	"net/http"

	"Knockout/auth"
	"Knockout/models"
	"Knockout/security"

	"github.com/gin-gonic/gin"
)

func (s *Server) Login(c *gin.Context) {
	user := models.User{}
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	if errs := user.Validate("login"); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errs,
		})
		return
	}

	found, err := user.FindUserByEmail(s.DB, user.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}

	if err := security.VerifyPassword(found.Password, user.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": http.StatusUnauthorized,
			"error":  "Incorrect password",
		})
		return
	}

	token, err := auth.CreateToken(found.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"response": gin.H{
			"token":    token,
			"id":       found.ID,
			"username": found.Username,
			"is_admin": found.IsAdmin,
		},
	})
}
