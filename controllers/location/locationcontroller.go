package location

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TIMEGATE/middleware"
	"TIMEGATE/models"
)

// Latitude/Longitude are pointers so that zero coordinates still satisfy
// the required binding.
type CreatePayload struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	RadiusM   float64  `json:"radius_m" binding:"required"`
}

// CreateHandler registers a new geofence.
func CreateHandler(c *gin.Context) {
	var payload CreatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if payload.RadiusM <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "radius_m must be greater than zero"})
		return
	}

	loc := models.Location{
		Name:      payload.Name,
		Latitude:  *payload.Latitude,
		Longitude: *payload.Longitude,
		RadiusM:   payload.RadiusM,
	}

	if err := models.DB.Create(&loc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": loc})
}

// ListHandler returns all registered geofences.
func ListHandler(c *gin.Context) {
	var locs []models.Location
	if err := models.DB.Find(&locs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locs})
}

type AssignPayload struct {
	LocationID uint `json:"location_id" binding:"required"`
}

// AssignHandler pins the caller's profile to one geofence, enabling the
// single-location fast path during punch verification.
func AssignHandler(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	var payload AssignPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var loc models.Location
	if err := models.DB.First(&loc, payload.LocationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
		return
	}

	res := models.DB.Model(&models.UserProfile{}).
		Where("user_id = ?", currentUser.ID).
		Update("location_id", loc.ID)
	if res.Error != nil || res.RowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "location assigned", "location": loc})
}
