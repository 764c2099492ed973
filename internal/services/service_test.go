package services

import (
	"testing"
	"time"

	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every statement on the same in-memory DB.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Invite{},
		&models.Payment{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	password := string(hash)

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: &password,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func strptr(s string) *string { return &s }

func pixFamilyRequest(monthlyCost float64, maxMembers int) *dto.CreateFamilyRequest {
	return &dto.CreateFamilyRequest{
		Name:          "Streaming Crew",
		MaxMembers:    maxMembers,
		MonthlyCost:   monthlyCost,
		DueDay:        5,
		PaymentMethod: models.PaymentMethodPix,
		PixKey:        strptr("crew@example.com"),
	}
}

// createFamily runs the real creation path and returns the persisted family.
func createFamily(t *testing.T, db *gorm.DB, owner models.User, req *dto.CreateFamilyRequest) models.Family {
	t.Helper()

	svc := NewFamilyService(db)
	require.NoError(t, svc.Create(owner.ID, req))

	var family models.Family
	require.NoError(t, db.Where("owner_id = ?", owner.ID).Order("created_at DESC").First(&family).Error)
	return family
}

func addMember(t *testing.T, db *gorm.DB, family models.Family, user models.User, role string) models.FamilyMember {
	t.Helper()

	member := models.FamilyMember{
		ID:       uuid.New(),
		FamilyID: family.ID,
		UserID:   user.ID,
		Role:     role,
	}
	require.NoError(t, db.Create(&member).Error)
	return member
}
