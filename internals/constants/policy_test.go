package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerHasEveryCapability(t *testing.T) {
	for _, entity := range writableEntities {
		for _, cap := range []string{CapCreate, CapUpdate, CapDelete} {
			assert.True(t, HasCapability(RoleManager, entity, cap),
				"manager should hold %s on %s", cap, entity)
		}
	}
}

func TestNonManagersAreReadOnly(t *testing.T) {
	for _, role := range []string{RoleTeacher, RoleStudent, RoleParent, RoleStaff} {
		for _, entity := range writableEntities {
			for _, cap := range []string{CapCreate, CapUpdate, CapDelete} {
				assert.False(t, HasCapability(role, entity, cap),
					"%s should not hold %s on %s", role, cap, entity)
			}
		}
	}
}

func TestUnknownRoleOrEntity(t *testing.T) {
	assert.False(t, HasCapability("ghost", EntityGrade, CapCreate))
	assert.False(t, HasCapability(RoleManager, "unknown_entity", CapCreate))
	assert.False(t, HasCapability(RoleManager, EntityGrade, "fly"))
}
