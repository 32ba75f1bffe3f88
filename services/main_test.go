package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"award-management-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The named shared-cache DSN
// keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Award{},
		&models.AwardCycle{},
		&models.Application{},
		&models.Attachment{},
		&models.Recommender{},
		&models.Review{},
		&models.CommitteeDecision{},
		&models.Announcement{},
		&models.Objection{},
	))
	return db
}

func seedOrganization(t *testing.T, db *gorm.DB, name string) *models.Organization {
	t.Helper()
	org := models.Organization{Name: name, OrgType: models.OrgEnterprise}
	require.NoError(t, db.Create(&org).Error)
	return &org
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.UserRole, orgID *int) *models.User {
	t.Helper()
	user := models.User{
		Username:       username,
		PasswordHash:   "x",
		RealName:       username,
		Role:           role,
		OrganizationID: orgID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCycle(t *testing.T, db *gorm.DB) *models.AwardCycle {
	t.Helper()
	award := models.Award{
		Name:   "科技进步奖",
		Code:   fmt.Sprintf("KJJB-%s", strings.ReplaceAll(t.Name(), "/", "_")),
		Level:  models.LevelIndustry,
		Year:   2025,
		Status: "active",
	}
	require.NoError(t, db.Create(&award).Error)

	cycle := models.AwardCycle{
		AwardID:   award.ID,
		CycleName: "2025年度",
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:    "active",
	}
	require.NoError(t, db.Create(&cycle).Error)
	return &cycle
}

func principalFor(user *models.User) Principal {
	return Principal{
		UserID:         user.ID,
		Username:       user.Username,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
}

func strptr(s string) *string { return &s }

func f64ptr(v float64) *float64 { return &v }

// seedDraft opens a draft through the service so the seeded row carries the
// same defaults production writes.
func seedDraft(t *testing.T, db *gorm.DB, cycle *models.AwardCycle, p Principal) *models.Application {
	t.Helper()
	svc := NewApplicationService(db)
	app, err := svc.Create(cycle.ID, *p.OrganizationID, ApplicationContent{Title: strptr("智能调度平台")}, p)
	require.NoError(t, err)
	return app
}
