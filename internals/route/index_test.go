package routes

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smartschool_backend/internals/configs"
	"smartschool_backend/internals/constants"
	database "smartschool_backend/internals/databases"
	userModel "smartschool_backend/internals/features/users/user/model"
	userService "smartschool_backend/internals/features/users/user/service"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	configs.JWTSecret = "route-test-secret"

	hash, err := userService.HashPassword("s3cret-pass")
	require.NoError(t, err)
	manager := userModel.UserModel{
		UserEmail:    "manager@school.local",
		UserPassword: hash,
		UserName:     "Manager",
		UserRole:     constants.RoleManager,
		UserIsActive: true,
	}
	require.NoError(t, db.Create(&manager).Error)

	app := fiber.New()
	SetupRoutes(app, db)
	return app, db
}

func loginBody(email, password string) *strings.Reader {
	return strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
}

func TestLoginIsReachableWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/auth/login", loginBody("manager@school.local", "s3cret-pass"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Data.AccessToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("POST", "/api/auth/login", loginBody("manager@school.local", "wrong"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// The signature is the only credential on the download endpoint: a bad
// signature must yield 403, never a session demand.
func TestSignedDownloadNeedsNoSession(t *testing.T) {
	app, _ := newTestApp(t)

	target := "/api/files/" + uuid.NewString() + "/download?expires=1&sig=deadbeef"
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSessionRoutesStayBehindAuth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/grades", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginTokenOpensSessionRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	loginReq := httptest.NewRequest("POST", "/api/auth/login", loginBody("manager@school.local", "s3cret-pass"))
	loginReq.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	loginResp, err := app.Test(loginReq)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, loginResp.StatusCode)

	var body struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, sonic.ConfigDefault.NewDecoder(loginResp.Body).Decode(&body))
	require.NotEmpty(t, body.Data.AccessToken)

	req := httptest.NewRequest("GET", "/api/grades", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+body.Data.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
