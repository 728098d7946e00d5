package punch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TIMEGATE/config"
	"TIMEGATE/middleware"
	"TIMEGATE/models"
	"TIMEGATE/recorder"
	"TIMEGATE/utils"
	"TIMEGATE/verify"
)

// Controller handles punch verification and history endpoints.
type Controller struct {
	db       *gorm.DB
	recorder *recorder.Recorder
	metric   verify.Metric
}

func NewController(db *gorm.DB) *Controller {
	metric, err := verify.ParseMetric(config.Get().FaceMetric)
	if err != nil {
		metric = verify.MetricCosine
	}
	return &Controller{
		db:       db,
		recorder: recorder.New(db),
		metric:   metric,
	}
}

// Lat/Lng are pointers so that legitimate zero coordinates (equator, prime
// meridian) still satisfy the required binding.
type PunchPayload struct {
	Lat       *float64  `json:"lat" binding:"required"`
	Lng       *float64  `json:"lng" binding:"required"`
	Embedding []float64 `json:"embedding" binding:"required"`
	PunchType string    `json:"punch_type" binding:"required"`
}

// PunchHandler runs the full verification chain for one punch attempt:
// geofence first, then face, then a single append-only insert. The acting
// user always comes from the authenticated session, never from the body.
func (pc *Controller) PunchHandler(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	var payload PunchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if !models.ValidPunchType(payload.PunchType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown punch_type " + payload.PunchType})
		return
	}

	// Load the profile; its stored embedding is the biometric reference.
	var profile models.UserProfile
	if err := pc.db.Where("user_id = ?", currentUser.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No profile means no location assignment to resolve against.
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if err := profile.DecodeEmbedding(); err != nil {
		// A corrupt row in the store, not a user mistake.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored face data is unreadable"})
		return
	}

	candidates, err := pc.candidateLocations(&profile)
	if err != nil {
		if errors.Is(err, verify.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load locations"})
		return
	}

	auth, err := verify.Authorize(verify.PunchCandidate{
		UserID:    currentUser.ID,
		Lat:       *payload.Lat,
		Lng:       *payload.Lng,
		Embedding: payload.Embedding,
		PunchType: payload.PunchType,
	}, profile.Vector, candidates, pc.metric)
	if err != nil {
		pc.rejectPunch(c, currentUser.ID, err)
		return
	}

	punch, err := pc.recorder.Record(c.Request.Context(), auth)
	if err != nil {
		utils.Logger.Error("punch insert failed",
			zap.Uint("user_id", currentUser.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record punch"})
		return
	}

	utils.Logger.Info("punch recorded",
		zap.String("punch_id", punch.ID),
		zap.Uint("user_id", punch.UserID),
		zap.String("punch_type", punch.PunchType),
		zap.Float64("distance_m", punch.DistanceM),
		zap.Float64("face_score", punch.FaceScore))

	c.JSON(http.StatusOK, gin.H{"punch": punch})
}

// candidateLocations resolves the geofence set for a profile: the assigned
// location alone when one is set, otherwise every registered location.
func (pc *Controller) candidateLocations(profile *models.UserProfile) ([]models.Location, error) {
	if profile.LocationID != nil {
		var loc models.Location
		if err := pc.db.First(&loc, *profile.LocationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, verify.ErrLocationNotFound
			}
			return nil, err
		}
		return []models.Location{loc}, nil
	}

	var locs []models.Location
	if err := pc.db.Find(&locs).Error; err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, verify.ErrLocationNotFound
	}
	return locs, nil
}

// rejectPunch maps a verification failure onto the HTTP taxonomy. Every
// rejection carries the distance or score so the user can see how close
// they came.
func (pc *Controller) rejectPunch(c *gin.Context, userID uint, err error) {
	var outOfRange *verify.OutOfRangeError
	var mismatch *verify.FaceMismatchError
	var badEmbedding *verify.InvalidEmbeddingError

	switch {
	case errors.Is(err, verify.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found"})
	case errors.As(err, &outOfRange):
		c.JSON(http.StatusForbidden, gin.H{
			"error":    "out of range",
			"distance": outOfRange.DistanceM,
		})
	case errors.Is(err, verify.ErrNoFaceEnrolled):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no face enrolled"})
	case errors.As(err, &mismatch):
		c.JSON(http.StatusForbidden, gin.H{
			"error":      "face does not match",
			"face_score": mismatch.Score,
		})
	case errors.As(err, &badEmbedding):
		c.JSON(http.StatusBadRequest, gin.H{"error": badEmbedding.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
	}

	utils.Logger.Info("punch rejected",
		zap.Uint("user_id", userID),
		zap.String("reason", err.Error()))
}

// HistoryHandler returns the caller's punches, most recent first.
func (pc *Controller) HistoryHandler(c *gin.Context) {
	currentUser, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user session"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	history, err := pc.recorder.History(c.Request.Context(), currentUser.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load punch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
