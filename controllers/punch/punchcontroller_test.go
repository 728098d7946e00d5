package punch

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TIMEGATE/middleware"
	"TIMEGATE/models"
	"TIMEGATE/recorder"
	"TIMEGATE/utils"
	"TIMEGATE/verify"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

func testController(t *testing.T) (*Controller, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "punch.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Location{}, &models.UserProfile{}, &models.Punch{}))

	return &Controller{db: db, recorder: recorder.New(db), metric: verify.MetricCosine}, db
}

func unitEmbedding() []float64 {
	v := make([]float64, verify.EmbeddingDim)
	v[0] = 1
	return v
}

func performPunch(t *testing.T, pc *Controller, user models.User, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/punch", bytes.NewReader(buf))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, user)

	pc.PunchHandler(c)
	return w
}

func TestPunchHandlerMissingProfile(t *testing.T) {
	pc, db := testController(t)

	user := models.User{FullName: "Somsri", Email: "somsri@example.com"}
	require.NoError(t, db.Create(&user).Error)
	// No profile row: there is no location assignment to resolve against.

	w := performPunch(t, pc, user, gin.H{
		"lat":        13.75,
		"lng":        100.50,
		"embedding":  unitEmbedding(),
		"punch_type": models.PunchInAM,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "location not found")
}

func TestPunchHandlerZeroCoordinates(t *testing.T) {
	pc, db := testController(t)

	// Geofence straddling the equator / prime meridian intersection.
	loc := models.Location{Name: "Null Island", Latitude: 0, Longitude: 0, RadiusM: 100}
	require.NoError(t, db.Create(&loc).Error)

	user := models.User{FullName: "Somsri", Email: "somsri@example.com"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.UserProfile{UserID: user.ID, FullName: user.FullName, LocationID: &loc.ID}
	require.NoError(t, profile.EncodeEmbedding(unitEmbedding()))
	require.NoError(t, db.Create(&profile).Error)

	w := performPunch(t, pc, user, gin.H{
		"lat":        0,
		"lng":        0,
		"embedding":  unitEmbedding(),
		"punch_type": models.PunchInAM,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Punch
	require.NoError(t, db.First(&stored, "user_id = ?", user.ID).Error)
	assert.Equal(t, loc.ID, stored.LocationID)
	assert.InDelta(t, 0.0, stored.DistanceM, 1e-9)
	assert.InDelta(t, 1.0, stored.FaceScore, 1e-9)
}

func TestPunchHandlerFaceMismatchCreatesNoRow(t *testing.T) {
	pc, db := testController(t)

	loc := models.Location{Name: "HQ", Latitude: 13.75, Longitude: 100.50, RadiusM: 100}
	require.NoError(t, db.Create(&loc).Error)

	user := models.User{FullName: "Somsri", Email: "somsri@example.com"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.UserProfile{UserID: user.ID, LocationID: &loc.ID}
	require.NoError(t, profile.EncodeEmbedding(unitEmbedding()))
	require.NoError(t, db.Create(&profile).Error)

	// Orthogonal to the reference: cosine 0, far below the floor.
	captured := make([]float64, verify.EmbeddingDim)
	captured[1] = 1

	w := performPunch(t, pc, user, gin.H{
		"lat":        13.7505,
		"lng":        100.5005,
		"embedding":  captured,
		"punch_type": models.PunchInAM,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "face_score")

	var count int64
	require.NoError(t, db.Model(&models.Punch{}).Count(&count).Error)
	assert.Zero(t, count)
}
