package discord

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	discordpkg "github.com/foxseedlab/ytsummary/internal/discord"
)

// Client posts through the Discord REST API only; no gateway session is
// opened.
type Client struct {
	mu      sync.Mutex
	session *discordgo.Session
	token   string
}

func NewClient(token string) discordpkg.Client {
	return &Client{token: token}
}

func (c *Client) SendChannelMessageWithFile(msg discordpkg.FileMessage) error {
	if c.token == "" && c.session == nil {
		return nil
	}
	s, err := c.ensureSession()
	if err != nil {
		return err
	}
	_, err = s.ChannelMessageSendComplex(msg.ChannelID, &discordgo.MessageSend{
		Content: msg.Content,
		Files: []*discordgo.File{
			{Name: msg.Filename, ContentType: "text/markdown", Reader: bytes.NewReader(msg.FileBody)},
		},
	})
	if err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}

func (c *Client) ensureSession() (*discordgo.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return c.session, nil
	}
	s, err := discordgo.New("Bot " + c.token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	c.session = s
	return s, nil
}
