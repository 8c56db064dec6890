package controllers

import (
	"net/http"
	"strconv"

	"Knockout/models"

	"github.com/gin-gonic/gin"
)

// CreateUser registers a federation representative account. Admins are never
// created here; they are seeded from the environment.
func (s *Server) CreateUser(c *gin.Context) {
	user := models.User{}
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  "Cannot unmarshal body",
		})
		return
	}

	user.Prepare()
	if errs := user.Validate(""); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": http.StatusUnprocessableEntity,
			"error":  errs,
		})
		return
	}

	created, err := user.SaveUser(s.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot create user",
		})
		return
	}

	created.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"status":   http.StatusCreated,
		"response": created,
	})
}

func (s *Server) GetUser(c *gin.Context) {
	uid, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Invalid user id",
		})
		return
	}

	user := models.User{}
	found, err := user.FindUserByID(s.DB, uint(uid))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "User not found",
		})
		return
	}

	found.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": found,
	})
}
