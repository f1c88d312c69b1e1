package models

// TeamRole is a member's role within one show's team.
type TeamRole string

const (
	// TeamRoleGod is the platform-admin role; it counts as supervisor-equivalent.
	TeamRoleGod             TeamRole = "god"
	TeamRolePropsSupervisor TeamRole = "props_supervisor"
	TeamRoleEditor          TeamRole = "editor"
	TeamRoleViewer          TeamRole = "viewer"
)

// IsSupervisorEquivalent reports whether the role receives repair/maintenance
// alerts and is eligible as default assignee for auto-created follow-up tasks.
func (r TeamRole) IsSupervisorEquivalent() bool {
	return r == TeamRoleGod || r == TeamRolePropsSupervisor
}

type TeamMember struct {
	UserId      string   `json:"user_id"`
	DisplayName string   `json:"display_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Role        TeamRole `json:"role"`
}

// Show is the production that owns props, a task board, and a team roster.
type Show struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Team []TeamMember `json:"team,omitempty"`
}

// Supervisors returns the team members holding a supervisor-equivalent role,
// in roster order.
func (s *Show) Supervisors() []TeamMember {
	var out []TeamMember
	for _, m := range s.Team {
		if m.Role.IsSupervisorEquivalent() {
			out = append(out, m)
		}
	}
	return out
}
