package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"Knockout/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadTeamBadge streams a federation badge image to S3 and records its key
// on the team. The public URL is assembled on read (see Team.AfterFind).
func (s *Server) UploadTeamBadge(c *gin.Context) {
	id := c.Param("id")

	team := models.Team{}
	if _, err := team.FindTeamByID(s.DB, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Team not found",
		})
		return
	}

	file, header, err := c.Request.FormFile("badge")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"error":  "Badge file is required",
		})
		return
	}
	defer file.Close()

	bucket := os.Getenv("S3_BUCKET")
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	if bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Badge storage not configured",
		})
		return
	}

	cfg, err := config.LoadDefaultConfig(c.Request.Context(), config.WithRegion(region))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot reach badge storage",
		})
		return
	}
	client := s3.NewFromConfig(cfg)

	key := "TeamBadges/" + uuid.New().String() + filepath.Ext(header.Filename)
	_, err = client.PutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      awssdk.String(bucket),
		Key:         awssdk.String(key),
		Body:        file,
		ContentType: awssdk.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Badge upload failed",
		})
		return
	}

	updated, err := team.UpdateBadge(s.DB, id, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"error":  "Cannot update team",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": updated,
	})
}
