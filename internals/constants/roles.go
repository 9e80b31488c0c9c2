package constants

const (
	RoleManager = "manager"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleStaff   = "staff"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleManager,
		RoleTeacher,
		RoleStudent,
		RoleParent,
		RoleStaff,
	}

	ManagerOnly = []string{
		RoleManager,
	}

	StaffAndAbove = []string{
		RoleManager,
		RoleTeacher,
		RoleStaff,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
