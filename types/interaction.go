package types

// Discord interaction types (inbound).
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
	InteractionMessageComponent   = 3
)

// Discord interaction callback types (outbound).
const (
	ResponsePong           = 1
	ResponseChannelMessage = 4
	ResponseUpdateMessage  = 7
)

// FlagEphemeral marks a reply visible only to the invoking user.
const FlagEphemeral = 64

// Interaction is the inbound event envelope posted by Discord. Member is set
// when the interaction comes from a guild, User when it comes from a DM.
type Interaction struct {
	Type    int              `json:"type"`
	ID      string           `json:"id,omitempty"`
	Token   string           `json:"token,omitempty"`
	GuildID string           `json:"guild_id,omitempty"`
	Data    *InteractionData `json:"data,omitempty"`
	Member  *Member          `json:"member,omitempty"`
	User    *User            `json:"user,omitempty"`
}

type InteractionData struct {
	Name     string          `json:"name,omitempty"`
	CustomID string          `json:"custom_id,omitempty"`
	Options  []CommandOption `json:"options,omitempty"`
}

type CommandOption struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type Member struct {
	User  *User    `json:"user,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// InvokerID returns the Discord user id of whoever triggered the
// interaction, preferring the guild member over the DM user.
func (in Interaction) InvokerID() string {
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User.ID
	}
	if in.User != nil {
		return in.User.ID
	}
	return ""
}

// InvokerName returns the Discord username of the invoker, if present.
func (in Interaction) InvokerName() string {
	if in.Member != nil && in.Member.User != nil {
		return in.Member.User.Username
	}
	if in.User != nil {
		return in.User.Username
	}
	return ""
}

// CommandName returns data.name for slash commands.
func (in Interaction) CommandName() string {
	if in.Data == nil {
		return ""
	}
	return in.Data.Name
}

// CustomID returns data.custom_id for component clicks.
func (in Interaction) CustomID() string {
	if in.Data == nil {
		return ""
	}
	return in.Data.CustomID
}

// StringOption returns the named command option as a string, or "" when the
// option is missing or not a string.
func (in Interaction) StringOption(name string) string {
	if in.Data == nil {
		return ""
	}
	for _, opt := range in.Data.Options {
		if opt.Name == name {
			if s, ok := opt.Value.(string); ok {
				return s
			}
			return ""
		}
	}
	return ""
}

// Command is the closed set of slash commands the service understands.
// Routing resolves data.name through ParseCommand exactly once, so handler
// selection is a total switch rather than scattered string comparisons.
type Command int

const (
	CommandUnknown Command = iota
	CommandAddTask
	CommandListTasks
	CommandMyTasks
	CommandCompleteTask
	CommandLinkAccount
	CommandSetupWelcome
)

func ParseCommand(name string) Command {
	switch name {
	case "addtask":
		return CommandAddTask
	case "listtasks":
		return CommandListTasks
	case "mytasks":
		return CommandMyTasks
	case "completetask":
		return CommandCompleteTask
	case "linkaccount":
		return CommandLinkAccount
	case "setupwelcome":
		return CommandSetupWelcome
	default:
		return CommandUnknown
	}
}
