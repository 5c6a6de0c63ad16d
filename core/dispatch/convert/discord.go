package convert

import (
	"context"
	"fmt"
	"regexp"

	"GoBotExt/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

// UserConverter resolves a user mention or id to a *discordgo.User.
type UserConverter struct{ base }

func User(opts ...Option) *UserConverter {
	return &UserConverter{newBase(opts)}
}

func (*UserConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	if user := lookupUser(ctx, c, segment); user != nil {
		return dispatch.Some(user), nil
	}
	return dispatch.None, nil
}

func lookupUser(ctx context.Context, c *dispatch.Context, segment string) *discordgo.User {
	for _, pattern := range []*regexp.Regexp{userMention, snowflake} {
		id, ok := submatch(pattern, segment)
		if !ok {
			continue
		}
		if user, err := c.Client().User(ctx, id); err == nil && user != nil {
			return user
		}
	}
	return nil
}

// MemberConverter resolves a mention, id, name#discriminator, username or
// display name to a *discordgo.Member of the current guild.
type MemberConverter struct{ base }

func Member(opts ...Option) *MemberConverter {
	return &MemberConverter{newBase(opts)}
}

func (*MemberConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	if !c.HasGuild() {
		return dispatch.None, nil
	}
	guildID := c.Guild.ID

	if user := lookupUser(ctx, c, segment); user != nil {
		member, err := c.Client().GuildMember(ctx, guildID, user.ID)
		if err != nil || member == nil {
			return dispatch.None, nil
		}
		return dispatch.Some(member), nil
	}

	members, err := c.Client().GuildMembers(ctx, guildID)
	if err != nil {
		return dispatch.None, nil
	}
	// Duplicate names resolve to whichever member is listed first.
	found := funk.Find(members, func(member *discordgo.Member) bool {
		if member == nil || member.User == nil {
			return false
		}
		u := member.User
		return fmt.Sprintf("%s#%s", u.Username, u.Discriminator) == segment ||
			u.Username == segment ||
			displayName(member) == segment
	})
	if found == nil {
		return dispatch.None, nil
	}
	return dispatch.Some(found.(*discordgo.Member)), nil
}

func displayName(member *discordgo.Member) string {
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// GuildConverter resolves a guild id or exact guild name to a *discordgo.Guild.
type GuildConverter struct{ base }

func Guild(opts ...Option) *GuildConverter {
	return &GuildConverter{newBase(opts)}
}

func (*GuildConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	if id, ok := submatch(snowflake, segment); ok {
		if guild, err := c.Client().Guild(ctx, id); err == nil && guild != nil {
			return dispatch.Some(guild), nil
		}
	}
	guilds, err := c.Client().Guilds(ctx)
	if err != nil {
		return dispatch.None, nil
	}
	found := funk.Find(guilds, func(guild *discordgo.Guild) bool {
		return guild != nil && guild.Name == segment
	})
	if found == nil {
		return dispatch.None, nil
	}
	return dispatch.Some(found.(*discordgo.Guild)), nil
}

// RoleConverter resolves a role mention, id, guildid-roleid pair or exact
// name to a *discordgo.Role.
type RoleConverter struct{ base }

func Role(opts ...Option) *RoleConverter {
	return &RoleConverter{newBase(opts)}
}

func (*RoleConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	if c.HasGuild() {
		for _, pattern := range []*regexp.Regexp{roleMention, snowflake} {
			if id, ok := submatch(pattern, segment); ok {
				if role := findRole(ctx, c, c.Guild.ID, roleID(id)); role != nil {
					return dispatch.Some(role), nil
				}
			}
		}
	}
	if guildID, id, ok := idPair(segment); ok {
		if role := findRole(ctx, c, guildID, roleID(id)); role != nil {
			return dispatch.Some(role), nil
		}
	}
	if c.HasGuild() {
		role := findRole(ctx, c, c.Guild.ID, func(role *discordgo.Role) bool { return role.Name == segment })
		if role != nil {
			return dispatch.Some(role), nil
		}
	}
	return dispatch.None, nil
}

func findRole(ctx context.Context, c *dispatch.Context, guildID string, match func(*discordgo.Role) bool) *discordgo.Role {
	roles, err := c.Client().GuildRoles(ctx, guildID)
	if err != nil {
		return nil
	}
	for _, role := range roles {
		if role != nil && match(role) {
			return role
		}
	}
	return nil
}

// GuildChannelConverter resolves a channel mention, id, guildid-channelid
// pair or exact name to a *discordgo.Channel belonging to a guild.
type GuildChannelConverter struct{ base }

func GuildChannel(opts ...Option) *GuildChannelConverter {
	return &GuildChannelConverter{newBase(opts)}
}

func (*GuildChannelConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	if c.HasGuild() {
		for _, pattern := range []*regexp.Regexp{channelMention, snowflake} {
			if id, ok := submatch(pattern, segment); ok {
				if channel := findChannel(ctx, c, c.Guild.ID, channelID(id)); channel != nil {
					return dispatch.Some(channel), nil
				}
			}
		}
	}
	if guildID, id, ok := idPair(segment); ok {
		if channel := findChannel(ctx, c, guildID, channelID(id)); channel != nil {
			return dispatch.Some(channel), nil
		}
	}
	if c.HasGuild() {
		channel := findChannel(ctx, c, c.Guild.ID, func(channel *discordgo.Channel) bool { return channel.Name == segment })
		if channel != nil {
			return dispatch.Some(channel), nil
		}
	}
	return dispatch.None, nil
}

func findChannel(ctx context.Context, c *dispatch.Context, guildID string, match func(*discordgo.Channel) bool) *discordgo.Channel {
	channels, err := c.Client().GuildChannels(ctx, guildID)
	if err != nil {
		return nil
	}
	for _, channel := range channels {
		if channel != nil && match(channel) {
			return channel
		}
	}
	return nil
}

// MessageConverter resolves a message id in the current channel, a
// channelid-messageid pair in the current guild, or a message link to a
// *discordgo.Message.
type MessageConverter struct{ base }

func Message(opts ...Option) *MessageConverter {
	return &MessageConverter{newBase(opts)}
}

func (*MessageConverter) Convert(ctx context.Context, c *dispatch.Context, segment string) (dispatch.Value, error) {
	client := c.Client()
	if id, ok := submatch(snowflake, segment); ok {
		if message, err := client.ChannelMessage(ctx, c.Message.ChannelID, id); err == nil && message != nil {
			return dispatch.Some(message), nil
		}
	}
	if chanID, msgID, ok := idPair(segment); ok && c.HasGuild() {
		if message := messageInGuild(ctx, c, c.Guild.ID, chanID, msgID); message != nil {
			return dispatch.Some(message), nil
		}
	}
	if m := messageLink.FindStringSubmatch(segment); m != nil {
		if guild, err := client.Guild(ctx, m[1]); err == nil && guild != nil {
			if message := messageInGuild(ctx, c, guild.ID, m[2], m[3]); message != nil {
				return dispatch.Some(message), nil
			}
		}
	}
	return dispatch.None, nil
}

func messageInGuild(ctx context.Context, c *dispatch.Context, guildID, channelID, messageID string) *discordgo.Message {
	channel, err := c.Client().Channel(ctx, channelID)
	if err != nil || channel == nil || channel.GuildID != guildID {
		return nil
	}
	message, err := c.Client().ChannelMessage(ctx, channelID, messageID)
	if err != nil {
		return nil
	}
	return message
}

func roleID(id string) func(*discordgo.Role) bool {
	return func(role *discordgo.Role) bool { return role.ID == id }
}

func channelID(id string) func(*discordgo.Channel) bool {
	return func(channel *discordgo.Channel) bool { return channel.ID == id }
}
