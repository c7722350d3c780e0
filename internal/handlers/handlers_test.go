package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gymhub/internal/middleware"
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

type apiFixture struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtManager *jwt.JWTManager
	gymService *services.GymService
}

// setupAPI 组装内存版的完整API：认证、租户解析和会员路由
func setupAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

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

	auth := middleware.NewAuthMiddleware(userService, jwtManager)
	tenantResolver := middleware.NewTenantMiddleware(gymService)

	authHandler := NewAuthHandler(userService, jwtManager)
	userHandler := NewUserHandler(userService)
	gymHandler := NewGymHandler(gymService)
	memberHandler := NewMemberHandler(services.NewMemberService(manager))

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", auth.RequireLogin(), authHandler.Me)
	api.POST("/core/users", userHandler.Create)

	gyms := api.Group("/gyms", auth.RequireLogin())
	gyms.POST("", gymHandler.Create)
	gyms.GET("", gymHandler.List)
	gyms.POST("/:id/admins", gymHandler.AddAdmin)

	tenantGroup := api.Group("/tenant", auth.RequireLogin(), tenantResolver.RequireTenant())
	tenantGroup.GET("/members", memberHandler.List)
	tenantGroup.POST("/members", memberHandler.Create)

	return &apiFixture{router: r, db: db, jwtManager: jwtManager, gymService: gymService}
}

func (f *apiFixture) request(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
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
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) createUser(t *testing.T, email string) (*models.User, string) {
	t.Helper()

	user := &models.User{Email: email, Name: "测试用户", Role: models.RoleAdmin}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, f.db.Create(user).Error)

	token, err := f.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return user, token
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterUser(t *testing.T) {
	f := setupAPI(t)

	w := f.request(t, "POST", "/api/v1/core/users", gin.H{
		"email":    "owner@example.com",
		"password": "secret123",
		"name":     "홍길동",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "owner@example.com", user["email"])
	// 密码散列不出现在响应里
	assert.NotContains(t, w.Body.String(), "secret123")
	assert.NotContains(t, user, "password")

	// 邮箱重复
	w = f.request(t, "POST", "/api/v1/core/users", gin.H{
		"email":    "owner@example.com",
		"password": "other456",
		"name":     "李四",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterUserShortPassword(t *testing.T) {
	f := setupAPI(t)

	w := f.request(t, "POST", "/api/v1/core/users", gin.H{
		"email":    "owner@example.com",
		"password": "abc",
		"name":     "홍길동",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginValidation(t *testing.T) {
	f := setupAPI(t)
	f.createUser(t, "owner@example.com")

	// 缺少密码是参数错误而不是认证失败
	w := f.request(t, "POST", "/api/v1/auth/login", gin.H{"email": "owner@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, "POST", "/api/v1/auth/login", gin.H{"email": "not-an-email", "password": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongCredentials(t *testing.T) {
	f := setupAPI(t)
	f.createUser(t, "owner@example.com")

	w := f.request(t, "POST", "/api/v1/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.request(t, "POST", "/api/v1/auth/login", gin.H{
		"email":    "missing@example.com",
		"password": "secret123",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	f := setupAPI(t)
	f.createUser(t, "owner@example.com")

	w := f.request(t, "POST", "/api/v1/auth/login", gin.H{
		"email":    "owner@example.com",
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	w = f.request(t, "GET", "/api/v1/auth/me", nil, authHeader(token))
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "owner@example.com", me["email"])
}

func TestCreateGym(t *testing.T) {
	f := setupAPI(t)
	owner, token := f.createUser(t, "owner@example.com")

	w := f.request(t, "POST", "/api/v1/gyms", gin.H{
		"name":    "파워 휘트니스",
		"ownerId": owner.ID,
	}, authHeader(token))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "gym_파워_휘트니스", body["dbName"])
	assert.Equal(t, "ready", body["status"])

	// 列表里能看到新开通的健身房
	w = f.request(t, "GET", "/api/v1/gyms", nil, authHeader(token))
	require.Equal(t, http.StatusOK, w.Code)
	gyms := decodeBody(t, w)["gyms"].([]interface{})
	require.Len(t, gyms, 1)
	assert.Equal(t, "gym_파워_휘트니스", gyms[0].(map[string]interface{})["dbName"])

	// 同名折叠冲突
	w = f.request(t, "POST", "/api/v1/gyms", gin.H{
		"name":    "파워  휘트니스",
		"ownerId": owner.ID,
	}, authHeader(token))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateGymOwnerMissing(t *testing.T) {
	f := setupAPI(t)
	_, token := f.createUser(t, "owner@example.com")

	w := f.request(t, "POST", "/api/v1/gyms", gin.H{
		"name":    "Power Fitness",
		"ownerId": 999,
	}, authHeader(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListGymsRequiresAuth(t *testing.T) {
	f := setupAPI(t)

	w := f.request(t, "GET", "/api/v1/gyms", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddGymAdminOwnerOnly(t *testing.T) {
	f := setupAPI(t)
	owner, ownerToken := f.createUser(t, "owner@example.com")
	other, otherToken := f.createUser(t, "other@example.com")

	gym, err := f.gymService.Create("Power Fitness", owner.ID)
	require.NoError(t, err)
	path := fmt.Sprintf("/api/v1/gyms/%d/admins", gym.ID)

	// 非所有者不能授权
	w := f.request(t, "POST", path, gin.H{"userId": other.ID}, authHeader(otherToken))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 所有者授权成功
	w = f.request(t, "POST", path, gin.H{"userId": other.ID}, authHeader(ownerToken))
	require.Equal(t, http.StatusCreated, w.Code)

	// 重复授权冲突
	w = f.request(t, "POST", path, gin.H{"userId": other.ID}, authHeader(ownerToken))
	assert.Equal(t, http.StatusConflict, w.Code)

	// 被授权用户现在能解析到该租户
	w = f.request(t, "GET", "/api/v1/tenant/members", nil, authHeader(otherToken))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMemberFlow(t *testing.T) {
	f := setupAPI(t)
	owner, token := f.createUser(t, "owner@example.com")
	_, err := f.gymService.Create("Power Fitness", owner.ID)
	require.NoError(t, err)

	w := f.request(t, "POST", "/api/v1/tenant/members", gin.H{
		"name":  "홍길동",
		"phone": "010-1234-5678",
		"birth": "1990-05-01",
	}, authHeader(token))
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.request(t, "GET", "/api/v1/tenant/members?search=홍길동", nil, authHeader(token))
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	members := body["members"].([]interface{})
	require.Len(t, members, 1)
	pageInfo := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pageInfo["total"])
}

func TestMemberInvalidPhone(t *testing.T) {
	f := setupAPI(t)
	owner, token := f.createUser(t, "owner@example.com")
	_, err := f.gymService.Create("Power Fitness", owner.ID)
	require.NoError(t, err)

	w := f.request(t, "POST", "/api/v1/tenant/members", gin.H{
		"name":  "홍길동",
		"phone": "12345",
	}, authHeader(token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMembersWithoutGym(t *testing.T) {
	f := setupAPI(t)
	_, token := f.createUser(t, "owner@example.com")

	// 名下没有健身房，租户解析直接拒绝
	w := f.request(t, "GET", "/api/v1/tenant/members", nil, authHeader(token))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMemberHandlerWithoutTenantContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 上下文缺少租户库信息时不触碰任何库
	handler := NewMemberHandler(services.NewMemberService(tenant.NewManagerWithOpener(
		func(string) (*gorm.DB, error) {
			t.Fatal("不应触发租户库连接")
			return nil, nil
		},
	)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/members", nil)
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTenantSelectionHeader(t *testing.T) {
	f := setupAPI(t)
	owner, token := f.createUser(t, "owner@example.com")
	_, err := f.gymService.Create("Gym A", owner.ID)
	require.NoError(t, err)
	gymB, err := f.gymService.Create("Gym B", owner.ID)
	require.NoError(t, err)

	// 在B馆登记会员
	headers := authHeader(token)
	headers[middleware.HeaderGymID] = fmt.Sprintf("%d", gymB.ID)
	w := f.request(t, "POST", "/api/v1/tenant/members", gin.H{
		"name":  "홍길동",
		"phone": "010-1234-5678",
	}, headers)
	require.Equal(t, http.StatusCreated, w.Code)

	// 默认解析到A馆，看不到B馆的会员
	w = f.request(t, "GET", "/api/v1/tenant/members", nil, authHeader(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["pagination"].(map[string]interface{})["total"])

	// 显式选择B馆能看到
	w = f.request(t, "GET", "/api/v1/tenant/members", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["pagination"].(map[string]interface{})["total"])
}
