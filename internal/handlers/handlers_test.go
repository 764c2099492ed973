package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/familyshare/family-share-backend/internal/config"
	"github.com/familyshare/family-share-backend/internal/dto"
	"github.com/familyshare/family-share-backend/internal/handlers"
	"github.com/familyshare/family-share-backend/internal/models"
	"github.com/familyshare/family-share-backend/internal/routes"
	"github.com/familyshare/family-share-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Invite{},
		&models.Payment{},
	))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg), cfg)
	familyHandler := handlers.NewFamilyHandler(services.NewFamilyService(db))
	inviteHandler := handlers.NewInviteHandler(services.NewInviteService(db))
	paymentHandler := handlers.NewPaymentHandler(services.NewPaymentService(db))
	healthHandler := handlers.NewHealthHandler()

	app := fiber.New()
	routes.Setup(app, cfg, authHandler, familyHandler, inviteHandler, paymentHandler, healthHandler)

	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) signUpAndLogin(t *testing.T, name, email string) string {
	t.Helper()

	resp := s.do(t, "POST", "/create-account", "",
		`{"name":"`+name+`","email":"`+email+`","password":"password123"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = s.do(t, "POST", "/auth/password", "",
		`{"email":"`+email+`","password":"password123"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	auth := decode[dto.AuthResponse](t, resp)
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func TestCreateAccountValidation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, "POST", "/create-account", "",
		`{"name":"Alice","email":"not-an-email","password":"short"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.True(t, body.Error)
	require.Len(t, body.Errors, 2)

	fields := []string{body.Errors[0].Field, body.Errors[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestPasswordAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signUpAndLogin(t, "Alice", "alice@example.com")

	t.Run("profile requires a token", func(t *testing.T) {
		resp := s.do(t, "GET", "/profile", "", "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("profile with bearer token", func(t *testing.T) {
		resp := s.do(t, "GET", "/profile", token, "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		profile := decode[dto.ProfileResponse](t, resp)
		assert.Equal(t, "alice@example.com", profile.User.Email)
		assert.Equal(t, "Alice", profile.User.Name)
	})

	t.Run("wrong password is a bad request", func(t *testing.T) {
		resp := s.do(t, "POST", "/auth/password", "",
			`{"email":"alice@example.com","password":"wrong-password"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestFamilyEndpoints(t *testing.T) {
	s := newTestServer(t)
	ownerToken := s.signUpAndLogin(t, "Alice", "alice@example.com")
	memberToken := s.signUpAndLogin(t, "Bob", "bob@example.com")

	resp := s.do(t, "POST", "/family", ownerToken,
		`{"name":"Streaming Crew","maxMembers":4,"monthlyCost":100,"dueDay":5,"paymentMethod":"pix","pixKey":"crew@example.com"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = s.do(t, "GET", "/family", ownerToken, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list := decode[dto.FamilyListResponse](t, resp)
	require.Len(t, list.Families, 1)
	family := list.Families[0]
	assert.Equal(t, "Streaming Crew", family.Name)
	require.Len(t, family.Members, 1)
	assert.Equal(t, models.RoleAdmin, family.Members[0].Role)

	t.Run("non-admin update is unauthorized", func(t *testing.T) {
		var bob models.User
		require.NoError(t, s.db.Where("email = ?", "bob@example.com").First(&bob).Error)
		require.NoError(t, s.db.Create(&models.FamilyMember{
			ID:       uuid.New(),
			FamilyID: family.ID,
			UserID:   bob.ID,
			Role:     models.RoleMember,
		}).Error)

		resp := s.do(t, "PUT", "/family/"+family.ID.String(), memberToken, `{"name":"Hijacked"}`)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("member can submit the expected share", func(t *testing.T) {
		resp := s.do(t, "POST", "/payments", memberToken,
			`{"familyId":"`+family.ID.String()+`","amount":50}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		created := decode[dto.CreatePaymentResponse](t, resp)
		assert.NotEqual(t, uuid.Nil, created.PaymentID)

		histResp := s.do(t, "GET", "/payments/history", memberToken, "")
		require.Equal(t, fiber.StatusOK, histResp.StatusCode)

		hist := decode[dto.PaymentHistoryResponse](t, histResp)
		assert.EqualValues(t, 1, hist.Total)
		require.Len(t, hist.Payments, 1)
		assert.Equal(t, "Streaming Crew", hist.Payments[0].Family.Name)
	})
}
