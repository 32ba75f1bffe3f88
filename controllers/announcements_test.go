package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"award-management-api/config"
	"award-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupAnnouncementRouter wires the public announcement routes over a
// per-test in-memory database installed as the global config.DB.
func setupAnnouncementRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Announcement{}, &models.Objection{}))
	config.DB = db

	router := gin.New()
	router.GET("/announcements", GetAnnouncements)
	router.POST("/announcements/:id/objections", SubmitObjection)
	return router
}

func seedAnnouncement(t *testing.T, title, status string, start time.Time) *models.Announcement {
	t.Helper()
	announcement := models.Announcement{
		Title:     title,
		Content:   "公示内容",
		StartTime: start,
		EndTime:   start.AddDate(0, 0, 7),
		Status:    status,
	}
	require.NoError(t, config.DB.Create(&announcement).Error)
	return &announcement
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitObjectionIgnoresAnnouncementStatus(t *testing.T) {
	router := setupAnnouncementRouter(t)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{"active", "closed", "withdrawn"} {
		announcement := seedAnnouncement(t, "获奖名单公示", status, start)

		w := postJSON(router,
			fmt.Sprintf("/announcements/%d/objections", announcement.ID),
			`{"objection_content":"对评审结果有异议","objector_name":"王五"}`)
		assert.Equal(t, http.StatusCreated, w.Code, "status %s", status)

		var count int64
		config.DB.Model(&models.Objection{}).
			Where("announcement_id = ?", announcement.ID).Count(&count)
		assert.EqualValues(t, 1, count, "status %s", status)
	}
}

func TestSubmitObjectionUnknownAnnouncement(t *testing.T) {
	router := setupAnnouncementRouter(t)

	w := postJSON(router, "/announcements/999/objections",
		`{"objection_content":"对评审结果有异议"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	config.DB.Model(&models.Objection{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitObjectionRequiresContent(t *testing.T) {
	router := setupAnnouncementRouter(t)
	announcement := seedAnnouncement(t, "公示", "active", time.Now())

	w := postJSON(router,
		fmt.Sprintf("/announcements/%d/objections", announcement.ID),
		`{"objector_name":"王五"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func listAnnouncements(t *testing.T, router *gin.Engine, query string) []models.Announcement {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/announcements"+query, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Announcements []models.Announcement `json:"announcements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Announcements
}

func TestGetAnnouncementsPaginated(t *testing.T) {
	router := setupAnnouncementRouter(t)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedAnnouncement(t, fmt.Sprintf("公示 %d", i), "active", start.AddDate(0, 0, i))
	}
	seedAnnouncement(t, "已撤下", "closed", start)

	// Default page size
	assert.Len(t, listAnnouncements(t, router, ""), 20)

	// An over-limit request clamps to 100 instead of falling back to 20,
	// and inactive rows stay hidden
	assert.Len(t, listAnnouncements(t, router, "?limit=150"), 25)

	tail := listAnnouncements(t, router, "?skip=24&limit=10")
	require.Len(t, tail, 1)
	assert.Equal(t, "公示 0", tail[0].Title)
}
