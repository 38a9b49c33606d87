package domain

// Permission is the closed set of admin permission keys. Keeping the
// keys typed (rather than free strings) gives exhaustive role tables.
type Permission string

const (
	PermAppointmentsManage Permission = "appointments.manage"
	PermInquiriesManage    Permission = "inquiries.manage"
	PermFeedbackManage     Permission = "feedback.manage"
	PermNotificationsRead  Permission = "notifications.read"
	PermSettingsManage     Permission = "settings.manage"
	PermContentManage      Permission = "content.manage"
	PermAdminUsersManage   Permission = "adminUsers.manage"
)

// AllPermissions lists every known permission key.
var AllPermissions = []Permission{
	PermAppointmentsManage,
	PermInquiriesManage,
	PermFeedbackManage,
	PermNotificationsRead,
	PermSettingsManage,
	PermContentManage,
	PermAdminUsersManage,
}

// roleDefaults maps each non-privileged role to the permissions it holds
// without an explicit override. super_admin and admin never consult this
// table; every check short-circuits on Role.FullyPrivileged.
var roleDefaults = map[Role]map[Permission]bool{
	RoleEditor: {
		PermContentManage:     true,
		PermNotificationsRead: true,
	},
	RoleStaff: {
		PermNotificationsRead: true,
	},
}

// EffectivePermissions returns the role defaults with the per-user
// overrides shallow-merged on top. An explicit false override suppresses
// a default true. The result covers every known permission key.
func EffectivePermissions(role Role, overrides map[Permission]bool) map[Permission]bool {
	defaults := roleDefaults[role]
	out := make(map[Permission]bool, len(AllPermissions))
	for _, p := range AllPermissions {
		out[p] = defaults[p]
	}
	for p, v := range overrides {
		out[p] = v
	}
	return out
}

// HasPermission reports whether a user with the given role and overrides
// passes a check for key. An override always wins, including an explicit
// false suppressing a default true.
func HasPermission(role Role, overrides map[Permission]bool, key Permission) bool {
	if role.FullyPrivileged() {
		return true
	}
	if v, ok := overrides[key]; ok {
		return v
	}
	return roleDefaults[role][key]
}
