package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartschool_backend/internals/constants"
)

func newPolicyApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	})
	app.Post("/grades",
		RequireCapability(constants.EntityGrade, constants.CapCreate),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	app.Get("/audit-logs",
		OnlyRoles("Audit logs are restricted to managers", constants.RoleManager),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestRequireCapabilityAllowsManager(t *testing.T) {
	app := newPolicyApp(constants.RoleManager)
	resp, err := app.Test(httptest.NewRequest("POST", "/grades", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestRequireCapabilityRejectsReadOnlyRoles(t *testing.T) {
	for _, role := range []string{constants.RoleTeacher, constants.RoleStudent, constants.RoleParent, constants.RoleStaff} {
		app := newPolicyApp(role)
		resp, err := app.Test(httptest.NewRequest("POST", "/grades", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "role %s", role)
	}
}

func TestRequireCapabilityWithoutRoleIsUnauthorized(t *testing.T) {
	app := newPolicyApp("")
	resp, err := app.Test(httptest.NewRequest("POST", "/grades", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOnlyRolesGatesManagerTerritory(t *testing.T) {
	app := newPolicyApp(constants.RoleTeacher)
	resp, err := app.Test(httptest.NewRequest("GET", "/audit-logs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	app = newPolicyApp(constants.RoleManager)
	resp, err = app.Test(httptest.NewRequest("GET", "/audit-logs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
