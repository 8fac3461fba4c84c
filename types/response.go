package types

// InteractionResponse is the JSON payload returned to Discord for any
// successfully routed interaction. Type carries the platform-level reply
// semantics; HTTP status stays 200 for all of these.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

type ResponseData struct {
	Content    string      `json:"content,omitempty"`
	Components []ActionRow `json:"components"`
	Flags      int         `json:"flags,omitempty"`
}

// ActionRow holds up to five buttons.
type ActionRow struct {
	Type       int      `json:"type"`
	Components []Button `json:"components"`
}

type Button struct {
	Type     int    `json:"type"`
	Style    int    `json:"style"`
	Label    string `json:"label"`
	Emoji    *Emoji `json:"emoji,omitempty"`
	CustomID string `json:"custom_id"`
}

type Emoji struct {
	Name string `json:"name"`
}

// Discord component type and button style constants.
const (
	ComponentActionRow = 1
	ComponentButton    = 2

	ButtonPrimary   = 1
	ButtonSecondary = 2
	ButtonSuccess   = 3
)

// ChannelMessage is the body for the bot "create message" endpoint, used by
// setupwelcome to post outside the interaction-response channel.
type ChannelMessage struct {
	Content    string      `json:"content"`
	Components []ActionRow `json:"components,omitempty"`
}
