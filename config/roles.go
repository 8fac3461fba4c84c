package config

// RoleButtonPrefix marks the custom_id of the welcome-message role buttons.
// Button custom_ids look like "role_aero".
const RoleButtonPrefix = "role_"

// TeamRole describes one of the team sections a member can join from the
// welcome message. The Discord role id can be overridden per deployment via
// EnvVar; FallbackID points at the main Formula IHU server.
type TeamRole struct {
	Key        string
	Label      string
	Emoji      string
	EnvVar     string
	FallbackID string
}

// Team sections, in the order their buttons appear on the welcome message.
var TeamRoles = []TeamRole{
	{Key: "aero", Label: "Aerodynamics", Emoji: "🌀", EnvVar: "DISCORD_ROLE_ID_AERO", FallbackID: "1189273300481609771"},
	{Key: "chassis", Label: "Chassis", Emoji: "🔩", EnvVar: "DISCORD_ROLE_ID_CHASSIS", FallbackID: "1189273376054135842"},
	{Key: "electronics", Label: "Electronics", Emoji: "⚡", EnvVar: "DISCORD_ROLE_ID_ELECTRONICS", FallbackID: "1189273442421319753"},
	{Key: "software", Label: "Software", Emoji: "💻", EnvVar: "DISCORD_ROLE_ID_SOFTWARE", FallbackID: "1189273511576678474"},
	{Key: "marketing", Label: "Marketing", Emoji: "📣", EnvVar: "DISCORD_ROLE_ID_MARKETING", FallbackID: "1189273586299826267"},
}

// TeamRoleByKey returns the team role for a button key, or nil when the
// key is not one of the configured sections.
func TeamRoleByKey(key string) *TeamRole {
	for i := range TeamRoles {
		if TeamRoles[i].Key == key {
			return &TeamRoles[i]
		}
	}
	return nil
}
