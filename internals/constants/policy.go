package constants

// Capability names evaluated by the write gate.
const (
	CapCreate = "create"
	CapUpdate = "update"
	CapDelete = "delete"
)

// Entity names as they appear in audit rows and in the policy table.
const (
	EntityUser       = "User"
	EntityGrade      = "Grade"
	EntityGroup      = "Group"
	EntityStudent    = "Student"
	EntityAssessment = "Assessment"
	EntityAttendance = "Attendance"
	EntityFile       = "File"
)

var writableEntities = []string{
	EntityUser,
	EntityGrade,
	EntityGroup,
	EntityStudent,
	EntityAssessment,
	EntityAttendance,
	EntityFile,
}

// WritePolicy maps role -> entity -> set of granted capabilities.
// The default policy grants every write capability on every entity to the
// manager role and nothing to anyone else. Extend here, not in handlers.
var WritePolicy = func() map[string]map[string]map[string]bool {
	policy := make(map[string]map[string]map[string]bool, len(AllRoles))
	for _, role := range AllRoles {
		policy[role] = make(map[string]map[string]bool, len(writableEntities))
		for _, entity := range writableEntities {
			policy[role][entity] = map[string]bool{}
		}
	}
	for _, entity := range writableEntities {
		policy[RoleManager][entity] = map[string]bool{
			CapCreate: true,
			CapUpdate: true,
			CapDelete: true,
		}
	}
	return policy
}()

// HasCapability reports whether role may perform cap on entity.
// Unknown roles or entities have no capabilities.
func HasCapability(role, entity, cap string) bool {
	entities, ok := WritePolicy[role]
	if !ok {
		return false
	}
	caps, ok := entities[entity]
	if !ok {
		return false
	}
	return caps[cap]
}
