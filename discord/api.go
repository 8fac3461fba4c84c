package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"formulaihu/flow-bot/config"
)

// Client talks to the Discord bot REST API. Interaction replies go back in
// the HTTP response; this client covers the two calls that do not (posting
// the welcome message and assigning guild roles).
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		token:   cfg.DiscordBotToken,
		baseURL: cfg.DiscordAPIBase,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateMessage posts a message to a channel on behalf of the bot.
func (c *Client) CreateMessage(channelID string, message interface{}) error {
	path := fmt.Sprintf("/channels/%s/messages", channelID)
	return c.do(http.MethodPost, path, message)
}

// AddGuildMemberRole grants a role to a guild member.
func (c *Client) AddGuildMemberRole(guildID, userID, roleID string) error {
	path := fmt.Sprintf("/guilds/%s/members/%s/roles/%s", guildID, userID, roleID)
	return c.do(http.MethodPut, path, nil)
}

func (c *Client) do(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord API returned status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
