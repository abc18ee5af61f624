package colour

import "fmt"

// Role is the semantic slot a palette colour fills.
type Role int

const (
	RoleBackgroundDark Role = iota
	RoleBackgroundDarkOverlay
	RoleBorder
	RoleTextSecondary
	RoleBackgroundMid
	RoleBackgroundLight1
	RoleBackgroundLight2
	RoleAccent1
	RoleAccent2
	RoleAccent3
	RoleAccent4
	RoleAccent5
	RoleAccent6
	RoleAccent7
	RoleAccent8

	roleCount
)

// AccentCount is the number of accent roles in every palette.
const AccentCount = int(RoleAccent8-RoleAccent1) + 1

// OverlayOpacity is the opacity of the translucent background variant.
const OverlayOpacity = 0.8

type roleInfo struct {
	name        string
	key         string
	opacity     float64
	description string
}

var roles = [roleCount]roleInfo{
	RoleBackgroundDark:        {"background-dark", "base_dark", 1.0, "Dark background used for most"},
	RoleBackgroundDarkOverlay: {"background-dark-overlay", "waybar", OverlayOpacity, "Waybar background"},
	RoleBorder:                {"border", "border", 1.0, "Border color derived from image"},
	RoleTextSecondary:         {"text-secondary", "base01", 1.0, "Dark text/inactive"},
	RoleBackgroundMid:         {"background-mid", "base_middle", 1.0, "Main text color derived from image"},
	RoleBackgroundLight1:      {"background-light-1", "base_light01", 1.0, "Light background"},
	RoleBackgroundLight2:      {"background-light-2", "base_light02", 1.0, "Lightest background"},
	RoleAccent1:               {"accent-1", "accent01", 1.0, "Red accent color derived from image"},
	RoleAccent2:               {"accent-2", "accent02", 1.0, "Green accent color derived from image"},
	RoleAccent3:               {"accent-3", "accent03", 1.0, "Yellow accent color derived from image"},
	RoleAccent4:               {"accent-4", "accent04", 1.0, "Blue accent color derived from image"},
	RoleAccent5:               {"accent-5", "accent05", 1.0, "Magenta accent color derived from image"},
	RoleAccent6:               {"accent-6", "accent06", 1.0, "Cyan accent color derived from image"},
	RoleAccent7:               {"accent-7", "accent07", 1.0, "Violet accent color derived from image"},
	RoleAccent8:               {"accent-8", "accent08", 1.0, "Orange accent color derived from image"},
}

// AllRoles returns every role in serialization order.
func AllRoles() []Role {
	all := make([]Role, roleCount)
	for i := range all {
		all[i] = Role(i)
	}
	return all
}

// AccentRole returns the role of the i-th accent (0-based).
func AccentRole(i int) Role {
	return RoleAccent1 + Role(i)
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r >= 0 && r < roleCount
}

// IsAccent reports whether r is one of the accent roles.
func (r Role) IsAccent() bool {
	return r >= RoleAccent1 && r <= RoleAccent8
}

// String returns the role name, e.g. "background-dark".
func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roles[r].name
}

// Key returns the name the role is persisted under in the colors file.
func (r Role) Key() string {
	if !r.Valid() {
		return ""
	}
	return roles[r].key
}

// Opacity returns the default opacity for the role.
func (r Role) Opacity() float64 {
	if !r.Valid() {
		return 1.0
	}
	return roles[r].opacity
}

// Description returns the static human label for the role.
func (r Role) Description() string {
	if !r.Valid() {
		return ""
	}
	return roles[r].description
}

// RoleByKey looks up a role by its persisted key.
func RoleByKey(key string) (Role, bool) {
	for i, info := range roles {
		if info.key == key {
			return Role(i), true
		}
	}
	return 0, false
}
