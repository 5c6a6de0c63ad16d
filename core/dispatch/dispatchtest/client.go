// Package dispatchtest provides an in-memory dispatch.Client for tests.
package dispatchtest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"GoBotExt/core/dispatch"

	"github.com/bwmarrin/discordgo"
)

var _ dispatch.Client = (*Client)(nil)

var ErrNotFound = errors.New("not found")

// Sent is a message delivered through the client.
type Sent struct {
	ChannelID string
	// Set for direct messages.
	UserID  string
	Content string
}

// Client answers lookups from the entities added to it and records every
// message it is asked to send.
type Client struct {
	Self string

	mu          sync.Mutex
	users       map[string]*discordgo.User
	guilds      map[string]*discordgo.Guild
	channels    map[string]*discordgo.Channel
	messages    map[string]*discordgo.Message
	permissions map[string]int64
	sent        []Sent
}

func NewClient(self string) *Client {
	return &Client{
		Self:        self,
		users:       map[string]*discordgo.User{},
		guilds:      map[string]*discordgo.Guild{},
		channels:    map[string]*discordgo.Channel{},
		messages:    map[string]*discordgo.Message{},
		permissions: map[string]int64{},
	}
}

func (c *Client) AddUser(users ...*discordgo.User) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, user := range users {
		c.users[user.ID] = user
	}
	return c
}

// AddGuild stores the guild along with its channels and the users of its members.
func (c *Client) AddGuild(guild *discordgo.Guild) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.guilds[guild.ID] = guild
	for _, channel := range guild.Channels {
		channel.GuildID = guild.ID
		c.channels[channel.ID] = channel
	}
	for _, member := range guild.Members {
		member.GuildID = guild.ID
		if member.User != nil {
			c.users[member.User.ID] = member.User
		}
	}
	return c
}

func (c *Client) AddChannel(channel *discordgo.Channel) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels[channel.ID] = channel
	return c
}

func (c *Client) AddMessage(message *discordgo.Message) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[message.ChannelID+"/"+message.ID] = message
	return c
}

func (c *Client) SetPermissions(userID, channelID string, perms int64) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.permissions[userID+"/"+channelID] = perms
	return c
}

// Sent returns the messages sent so far.
func (c *Client) Sent() []Sent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Sent(nil), c.sent...)
}

// LastContent returns the content of the last sent message, or "".
func (c *Client) LastContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sent) == 0 {
		return ""
	}
	return c.sent[len(c.sent)-1].Content
}

func (c *Client) SelfID() string { return c.Self }

func (c *Client) User(_ context.Context, userID string) (*discordgo.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user, ok := c.users[userID]; ok {
		return user, nil
	}
	return nil, ErrNotFound
}

func (c *Client) Guild(_ context.Context, guildID string) (*discordgo.Guild, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if guild, ok := c.guilds[guildID]; ok {
		return guild, nil
	}
	return nil, ErrNotFound
}

// Guilds returns the stored guilds ordered by id.
func (c *Client) Guilds(_ context.Context) ([]*discordgo.Guild, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	guilds := make([]*discordgo.Guild, 0, len(c.guilds))
	for _, guild := range c.guilds {
		guilds = append(guilds, guild)
	}
	sort.Slice(guilds, func(i, j int) bool { return guilds[i].ID < guilds[j].ID })
	return guilds, nil
}

func (c *Client) Channel(_ context.Context, channelID string) (*discordgo.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if channel, ok := c.channels[channelID]; ok {
		return channel, nil
	}
	return nil, ErrNotFound
}

func (c *Client) ChannelMessage(_ context.Context, channelID, messageID string) (*discordgo.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if message, ok := c.messages[channelID+"/"+messageID]; ok {
		return message, nil
	}
	return nil, ErrNotFound
}

func (c *Client) GuildMember(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	members, err := c.GuildMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if member.User != nil && member.User.ID == userID {
			return member, nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) GuildMembers(ctx context.Context, guildID string) ([]*discordgo.Member, error) {
	guild, err := c.Guild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return guild.Members, nil
}

func (c *Client) GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	guild, err := c.Guild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return guild.Roles, nil
}

func (c *Client) GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	guild, err := c.Guild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	return guild.Channels, nil
}

func (c *Client) UserChannelPermissions(_ context.Context, userID, channelID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if perms, ok := c.permissions[userID+"/"+channelID]; ok {
		return perms, nil
	}
	return 0, ErrNotFound
}

func (c *Client) SendMessage(_ context.Context, channelID, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Sent{ChannelID: channelID, Content: content})
	return nil
}

func (c *Client) SendDirectMessage(_ context.Context, userID, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, Sent{UserID: userID, Content: content})
	return nil
}

// Message builds a plain text message. guildID is empty for direct messages.
func Message(guildID, channelID string, author *discordgo.User, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "1",
		ChannelID: channelID,
		GuildID:   guildID,
		Author:    author,
		Content:   content,
		Type:      discordgo.MessageTypeDefault,
	}
}
