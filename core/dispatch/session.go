package dispatch

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Discord caps a single member listing request at 1000.
const memberPageSize = 1000

// SessionClient implements Client on top of a discordgo session, answering
// from the state cache when it can and falling back to the REST API.
type SessionClient struct {
	session *discordgo.Session
}

func NewSessionClient(session *discordgo.Session) *SessionClient {
	return &SessionClient{session: session}
}

func (c *SessionClient) state() *discordgo.State {
	if c.session.StateEnabled && c.session.State != nil {
		return c.session.State
	}
	return nil
}

func (c *SessionClient) SelfID() string {
	if st := c.state(); st != nil && st.User != nil {
		return st.User.ID
	}
	return ""
}

func (c *SessionClient) User(ctx context.Context, userID string) (*discordgo.User, error) {
	return c.session.User(userID, discordgo.WithContext(ctx))
}

func (c *SessionClient) Guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if st := c.state(); st != nil {
		if guild, err := st.Guild(guildID); err == nil {
			return guild, nil
		}
	}
	return c.session.Guild(guildID, discordgo.WithContext(ctx))
}

func (c *SessionClient) Guilds(ctx context.Context) ([]*discordgo.Guild, error) {
	st := c.state()
	if st == nil {
		return nil, errors.New("guild listing needs the state cache")
	}
	st.RLock()
	defer st.RUnlock()
	return append([]*discordgo.Guild(nil), st.Guilds...), nil
}

func (c *SessionClient) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if st := c.state(); st != nil {
		if channel, err := st.Channel(channelID); err == nil {
			return channel, nil
		}
	}
	return c.session.Channel(channelID, discordgo.WithContext(ctx))
}

func (c *SessionClient) ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	if st := c.state(); st != nil {
		if message, err := st.Message(channelID, messageID); err == nil {
			return message, nil
		}
	}
	return c.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
}

func (c *SessionClient) GuildMember(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if st := c.state(); st != nil {
		if member, err := st.Member(guildID, userID); err == nil {
			return member, nil
		}
	}
	return c.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
}

func (c *SessionClient) GuildMembers(ctx context.Context, guildID string) ([]*discordgo.Member, error) {
	if st := c.state(); st != nil {
		if guild, err := st.Guild(guildID); err == nil {
			st.RLock()
			members := append([]*discordgo.Member(nil), guild.Members...)
			st.RUnlock()
			if len(members) > 0 {
				return members, nil
			}
		}
	}
	var members []*discordgo.Member
	after := ""
	for {
		page, err := c.session.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return members, err
		}
		members = append(members, page...)
		if len(page) < memberPageSize {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func (c *SessionClient) GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	if st := c.state(); st != nil {
		if guild, err := st.Guild(guildID); err == nil {
			st.RLock()
			defer st.RUnlock()
			return append([]*discordgo.Role(nil), guild.Roles...), nil
		}
	}
	return c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
}

func (c *SessionClient) GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error) {
	if st := c.state(); st != nil {
		if guild, err := st.Guild(guildID); err == nil {
			st.RLock()
			defer st.RUnlock()
			return append([]*discordgo.Channel(nil), guild.Channels...), nil
		}
	}
	return c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
}

func (c *SessionClient) UserChannelPermissions(ctx context.Context, userID, channelID string) (int64, error) {
	if st := c.state(); st != nil {
		if perms, err := st.UserChannelPermissions(userID, channelID); err == nil {
			return perms, nil
		}
	}
	return c.session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
}

func (c *SessionClient) SendMessage(ctx context.Context, channelID, content string) error {
	_, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

func (c *SessionClient) SendDirectMessage(ctx context.Context, userID, content string) error {
	channel, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}
	return c.SendMessage(ctx, channel.ID, content)
}
