package dispatch

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Client is what the dispatcher needs from the Discord connection: entity
// lookups for converters and checks, and a way to reply.
type Client interface {
	// SelfID is the user id of the bot account.
	SelfID() string

	User(ctx context.Context, userID string) (*discordgo.User, error)
	Guild(ctx context.Context, guildID string) (*discordgo.Guild, error)
	// Guilds lists the guilds the bot is a member of.
	Guilds(ctx context.Context) ([]*discordgo.Guild, error)
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error)

	GuildMember(ctx context.Context, guildID, userID string) (*discordgo.Member, error)
	GuildMembers(ctx context.Context, guildID string) ([]*discordgo.Member, error)
	GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error)
	GuildChannels(ctx context.Context, guildID string) ([]*discordgo.Channel, error)

	// UserChannelPermissions returns the permission bits of a user in a channel.
	UserChannelPermissions(ctx context.Context, userID, channelID string) (int64, error)

	SendMessage(ctx context.Context, channelID, content string) error
	SendDirectMessage(ctx context.Context, userID, content string) error
}
