package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"gymhub/internal/models"
	"gymhub/internal/services"
	"gymhub/internal/tenant"
	"gymhub/pkg/config"
	"gymhub/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type middlewareFixture struct {
	db         *gorm.DB
	jwtManager *jwt.JWTManager
	auth       *AuthMiddleware
	tenants    *TenantMiddleware
	gymService *services.GymService
}

func setupMiddleware(t *testing.T) *middlewareFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Gym{}, &models.GymAdmin{}))

	manager := tenant.NewManagerWithOpener(func(dbName string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	})
	provisioner := tenant.NewProvisionerWithCreator(
		&config.TenantConfig{Prefix: "gym_"}, manager,
		func(string) error { return nil },
	)

	userService := services.NewUserService(db)
	gymService := services.NewGymService(db, provisioner)
	jwtManager := jwt.NewJWTManager("test-secret", time.Hour)

	return &middlewareFixture{
		db:         db,
		jwtManager: jwtManager,
		auth:       NewAuthMiddleware(userService, jwtManager),
		tenants:    NewTenantMiddleware(gymService),
		gymService: gymService,
	}
}

func (f *middlewareFixture) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{Email: email, Name: "测试用户", Role: models.RoleAdmin}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, f.db.Create(user).Error)

	token, err := f.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

// protectedRouter 一个同时挂认证与租户解析的探针路由
func (f *middlewareFixture) protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/probe", f.auth.RequireLogin(), f.tenants.RequireTenant(), func(c *gin.Context) {
		dbName, _ := GetTenantDB(c)
		gymID, _ := GetGymID(c)
		c.JSON(http.StatusOK, gin.H{"tenantDb": dbName, "gymId": gymID})
	})
	return r
}

func doProbe(r *gin.Engine, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/probe", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireLoginMissingHeader(t *testing.T) {
	f := setupMiddleware(t)
	w := doProbe(f.protectedRouter(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireLoginBadFormat(t *testing.T) {
	f := setupMiddleware(t)
	w := doProbe(f.protectedRouter(), map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireLoginInvalidToken(t *testing.T) {
	f := setupMiddleware(t)
	w := doProbe(f.protectedRouter(), map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireLoginDeletedUser(t *testing.T) {
	f := setupMiddleware(t)
	user, token := f.createUser(t, "owner@example.com")
	require.NoError(t, f.db.Delete(&models.User{}, user.ID).Error)

	w := doProbe(f.protectedRouter(), map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireTenantNoAccessibleGym(t *testing.T) {
	f := setupMiddleware(t)
	_, token := f.createUser(t, "owner@example.com")

	// 名下没有任何健身房
	w := doProbe(f.protectedRouter(), map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireTenantMalformedGymID(t *testing.T) {
	f := setupMiddleware(t)
	user, token := f.createUser(t, "owner@example.com")
	_, err := f.gymService.Create("Power Fitness", user.ID)
	require.NoError(t, err)

	w := doProbe(f.protectedRouter(), map[string]string{
		"Authorization": "Bearer " + token,
		HeaderGymID:     "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequireTenantDefaultResolution(t *testing.T) {
	f := setupMiddleware(t)
	user, token := f.createUser(t, "owner@example.com")
	gymA, err := f.gymService.Create("Gym A", user.ID)
	require.NoError(t, err)
	_, err = f.gymService.Create("Gym B", user.ID)
	require.NoError(t, err)

	// 未指定时解析到ID最小的健身房
	w := doProbe(f.protectedRouter(), map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), gymA.DBName)
}

func TestRequireTenantExplicitSelection(t *testing.T) {
	f := setupMiddleware(t)
	user, token := f.createUser(t, "owner@example.com")
	_, err := f.gymService.Create("Gym A", user.ID)
	require.NoError(t, err)
	gymB, err := f.gymService.Create("Gym B", user.ID)
	require.NoError(t, err)

	w := doProbe(f.protectedRouter(), map[string]string{
		"Authorization": "Bearer " + token,
		HeaderGymID:     strconv.FormatUint(uint64(gymB.ID), 10),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), gymB.DBName)
}

func TestRequireTenantForeignGymDenied(t *testing.T) {
	f := setupMiddleware(t)
	owner, _ := f.createUser(t, "owner@example.com")
	_, outsiderToken := f.createUser(t, "outsider@example.com")
	gymA, err := f.gymService.Create("Gym A", owner.ID)
	require.NoError(t, err)

	// 指定别人的健身房被拒绝
	w := doProbe(f.protectedRouter(), map[string]string{
		"Authorization": "Bearer " + outsiderToken,
		HeaderGymID:     strconv.FormatUint(uint64(gymA.ID), 10),
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
