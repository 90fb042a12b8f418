package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"ecohub.backend/internal/config"
	"ecohub.backend/internal/domain/entities"
	"ecohub.backend/internal/infrastructure/models"
	infraRepos "ecohub.backend/internal/infrastructure/repositories"
	"ecohub.backend/internal/interfaces/http/middleware"
	"ecohub.backend/internal/usecases"
	"ecohub.backend/pkg/crypto"
	"ecohub.backend/pkg/jwt"
	"ecohub.backend/pkg/logger"
	"ecohub.backend/pkg/ratelimit"
)

type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	accountRepo *infraRepos.AccountRepository
	profileRepo *infraRepos.ProfileRepository
	auditRepo   *infraRepos.AuditRepository
	jwtService  *jwt.Service
}

// newTestEnv wires the full request path against an in-memory database:
// real repositories, real usecases, real middleware.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Profile{}, &models.AuditEntry{}))

	accountRepo := infraRepos.NewAccountRepository(db)
	profileRepo := infraRepos.NewProfileRepository(db)
	auditRepo := infraRepos.NewAuditRepository(db)
	uow := infraRepos.NewUnitOfWork(db)

	jwtService := jwt.NewService("test-secret", time.Hour)
	authUsecase := usecases.NewAuthUsecase(accountRepo, profileRepo, uow, jwtService)
	moderationUsecase := usecases.NewModerationUsecase(accountRepo, profileRepo, auditRepo, uow)

	authHandler := NewAuthHandler(authUsecase, config.CookieConfig{SameSite: "lax"}, 3600)
	adminHandler := NewAdminHandler(moderationUsecase)

	loginLimiter := ratelimit.NewMemoryLimiter(ratelimit.Config{Requests: 5, Window: time.Minute})
	requireAuth := middleware.RequireAuth(authUsecase)

	router := gin.New()
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", middleware.RateLimitByIP(loginLimiter, 60), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/verify", requireAuth, authHandler.Verify)
	auth.PUT("/profile", requireAuth, authHandler.UpdateProfile)
	auth.PUT("/password", requireAuth, authHandler.ChangePassword)

	admin := api.Group("/admin")
	admin.Use(requireAuth, middleware.RequireAdmin())

	users := admin.Group("/users", middleware.RequirePermission(entities.ActionManageUsers))
	users.GET("", adminHandler.ListUsers)
	users.PUT("/:id/suspend", adminHandler.SuspendUser)
	users.PUT("/:id/activate", adminHandler.ActivateUser)
	users.PUT("/:id/role", adminHandler.ChangeRole)

	profiles := admin.Group("/profiles", middleware.RequirePermission(entities.ActionVerifyProfiles))
	profiles.GET("/pending", adminHandler.PendingProfiles)
	profiles.PUT("/:id/verify", adminHandler.VerifyProfile)

	admin.GET("/audit-log", middleware.RequirePermission(entities.ActionViewAuditLog), adminHandler.AuditLog)
	admin.GET("/stats", adminHandler.GetStats)

	return &testEnv{
		router:      router,
		db:          db,
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		jwtService:  jwtService,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.AuthorizationHeader, middleware.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedAccount writes an account row and mints a matching token.
func (e *testEnv) seedAccount(t *testing.T, email, password string, role entities.Role) (*entities.Account, string) {
	t.Helper()

	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	account := &entities.Account{
		ID:           uuid.New(),
		Email:        email,
		Name:         "Seeded " + string(role),
		PasswordHash: hash,
		Role:         role,
		Status:       entities.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.accountRepo.Create(context.Background(), account))

	token, err := e.jwtService.GenerateToken(account.ID, string(account.Role))
	require.NoError(t, err)
	return account, token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.Equal(t, code, decodeBody(t, w)["code"])
}
