package entities

import "fmt"

// Action is a named capability a role may hold. The authorization gate
// resolves role → action set; unknown actions are denied for everyone.
type Action string

const (
	ActionViewContent  Action = "view_content"
	ActionJoinCampaign Action = "join_campaign"
	ActionLogEnergy    Action = "log_energy"

	// Business capabilities: the waste-exchange marketplace.
	ActionListWaste    Action = "list_waste"
	ActionRespondWaste Action = "respond_waste"

	// Community capabilities: conservation campaigns and events.
	ActionCreateCampaign Action = "create_campaign"
	ActionHostEvent      Action = "host_event"

	// Admin capabilities.
	ActionManageUsers    Action = "manage_users"
	ActionVerifyProfiles Action = "verify_profiles"
	ActionViewAuditLog   Action = "view_audit_log"
)

// knownActions is the full enum of actions the platform defines.
var knownActions = map[Action]bool{
	ActionViewContent:    true,
	ActionJoinCampaign:   true,
	ActionLogEnergy:      true,
	ActionListWaste:      true,
	ActionRespondWaste:   true,
	ActionCreateCampaign: true,
	ActionHostEvent:      true,
	ActionManageUsers:    true,
	ActionVerifyProfiles: true,
	ActionViewAuditLog:   true,
}

// individualActions is the base capability set every role inherits.
var individualActions = []Action{
	ActionViewContent,
	ActionJoinCampaign,
	ActionLogEnergy,
}

// rolePermissions maps each non-admin role to its capability set.
// Business and community are supersets of the individual base set.
// Admin is a wildcard and intentionally absent from the table.
var rolePermissions = map[Role][]Action{
	RoleIndividual: individualActions,
	RoleBusiness: append([]Action{
		ActionListWaste,
		ActionRespondWaste,
	}, individualActions...),
	RoleCommunity: append([]Action{
		ActionCreateCampaign,
		ActionHostEvent,
	}, individualActions...),
}

// RoleCan reports whether a role holds an action. Unknown actions are
// denied regardless of role; admin holds every known action.
func RoleCan(role Role, action Action) bool {
	if !knownActions[action] {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	for _, a := range rolePermissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// ValidatePermissionTable checks the role table against the action enum
// so a typo in an action name fails at startup instead of silently
// denying requests.
func ValidatePermissionTable() error {
	return validatePermissionTable(rolePermissions, knownActions)
}

func validatePermissionTable(table map[Role][]Action, known map[Action]bool) error {
	for role, actions := range table {
		if !role.Valid() {
			return fmt.Errorf("permission table references unknown role %q", role)
		}
		for _, action := range actions {
			if !known[action] {
				return fmt.Errorf("permission table references unknown action %q for role %q", action, role)
			}
		}
	}
	return nil
}
