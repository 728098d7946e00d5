package face

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"TIMEGATE/middleware"
	"TIMEGATE/models"
	"TIMEGATE/verify"
)

type EnrollPayload struct {
	Embedding []float64 `json:"embedding" binding:"required"`
}

// EnrollHandler stores or replaces the caller's reference embedding. The
// vector comes from the external face subsystem on the client; the server
// only validates its dimensionality.
func EnrollHandler(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	var payload EnrollPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid face data: " + err.Error()})
		return
	}

	if len(payload.Embedding) != verify.EmbeddingDim {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("embedding must have %d dimensions", verify.EmbeddingDim),
		})
		return
	}

	var profile models.UserProfile
	if err := models.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			profile = models.UserProfile{UserID: currentUser.ID, FullName: currentUser.FullName}
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
	}

	if err := profile.EncodeEmbedding(payload.Embedding); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode face data"})
		return
	}

	if err := models.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store face data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "face enrolled"})
}

// StatusHandler reports whether the caller has a face on file.
func StatusHandler(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	var profile models.UserProfile
	err := models.DB.Where("user_id = ?", currentUser.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_enrolled": err == nil && len(profile.Embedding) > 0,
	})
}
