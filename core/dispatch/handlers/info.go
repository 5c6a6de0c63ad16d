package handlers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

const (
	InfoSection = "Info"
	maxDice     = 100
)

// Info registers lookup commands for guild entities. They only run in guilds.
func Info(d *dispatch.Dispatcher) error {
	section := dispatch.NewSection(dispatch.SectionOptions{
		Name:        InfoSection,
		Description: "Look up members, roles, channels and messages",
		Checks:      []dispatch.Check{dispatch.IsGuild()},
	}).Define(dispatch.CommandOptions{
		Name:        "whois",
		Description: "Show a member by mention, id, name#discriminator or name",
		Arguments:   []dispatch.Argument{dispatch.Arg("member", convert.Member())},
	}, whois).Define(dispatch.CommandOptions{
		Name:        "role",
		Description: "Show a role by mention, id, guildid-roleid or name",
		Arguments:   []dispatch.Argument{dispatch.Arg("role", convert.Role())},
	}, describeRole).Define(dispatch.CommandOptions{
		Name:        "channel",
		Description: "Show a channel by mention, id, guildid-channelid or name",
		Arguments:   []dispatch.Argument{dispatch.Arg("channel", convert.GuildChannel())},
	}, describeChannel).Define(dispatch.CommandOptions{
		Name:        "guild",
		Description: "Show this guild, or another one by id or name",
		Arguments:   []dispatch.Argument{dispatch.Arg("guild", convert.Guild(convert.Optional()))},
	}, describeGuild).Define(dispatch.CommandOptions{
		Name:        "quote",
		Description: "Quote a message by id, channelid-messageid or link",
		Arguments:   []dispatch.Argument{dispatch.Arg("message", convert.Message())},
	}, quote).Define(dispatch.CommandOptions{
		Name:        "roll",
		Description: "Roll some dice",
		Arguments: []dispatch.Argument{
			dispatch.Arg("sides", convert.Number(convert.WithDefault(6.0))),
			dispatch.Arg("count", convert.Number(convert.WithDefault(1.0))),
		},
	}, roll)
	return d.AddSection(section)
}

func whois(ctx context.Context, c *dispatch.Context, args ...any) error {
	member := args[0].(*discordgo.Member)
	user := member.User
	roles := funk.Filter(c.Guild.Roles, func(role *discordgo.Role) bool {
		return funk.ContainsString(member.Roles, role.ID)
	}).([]*discordgo.Role)
	names := funk.Map(roles, func(role *discordgo.Role) string { return role.Name }).([]string)

	lines := []string{fmt.Sprintf("**%s** (%s) has id %s", displayName(member), user.String(), user.ID)}
	if !member.JoinedAt.IsZero() {
		lines = append(lines, "Joined "+member.JoinedAt.Format("2006-01-02"))
	}
	if len(names) > 0 {
		lines = append(lines, "Roles: "+strings.Join(names, ", "))
	}
	return c.Send(ctx, strings.Join(lines, "\n\t"))
}

func displayName(member *discordgo.Member) string {
	switch {
	case member.Nick != "":
		return member.Nick
	case member.User.GlobalName != "":
		return member.User.GlobalName
	default:
		return member.User.Username
	}
}

func describeRole(ctx context.Context, c *dispatch.Context, args ...any) error {
	role := args[0].(*discordgo.Role)
	return c.ReplyToChannel(ctx, "Role **%s** has id %s, color #%06x and position %d.", role.Name, role.ID, role.Color, role.Position)
}

func describeChannel(ctx context.Context, c *dispatch.Context, args ...any) error {
	channel := args[0].(*discordgo.Channel)
	text := fmt.Sprintf("Channel **#%s** has id %s", channel.Name, channel.ID)
	if guild, err := c.Client().Guild(ctx, channel.GuildID); err == nil && guild.ID != c.Guild.ID {
		text += fmt.Sprintf(" in **%s**", guild.Name)
	}
	if channel.Topic != "" {
		text += fmt.Sprintf("\n\tTopic: %s", channel.Topic)
	}
	return c.Send(ctx, text)
}

func describeGuild(ctx context.Context, c *dispatch.Context, args ...any) error {
	guild := c.Guild
	if args[0] != nil {
		guild = args[0].(*discordgo.Guild)
	}
	members := guild.MemberCount
	if members == 0 {
		members = len(guild.Members)
	}
	return c.ReplyToChannel(ctx, "Guild **%s** has id %s, %d members, %d channels and %d roles.",
		guild.Name, guild.ID, members, len(guild.Channels), len(guild.Roles))
}

func quote(ctx context.Context, c *dispatch.Context, args ...any) error {
	message := args[0].(*discordgo.Message)
	author := "someone"
	if message.Author != nil {
		author = message.Author.Username
	}
	lines := strings.Split(message.Content, "\n")
	return c.ReplyToChannel(ctx, "> %s\n- %s in <#%s>", strings.Join(lines, "\n> "), author, message.ChannelID)
}

func roll(ctx context.Context, c *dispatch.Context, args ...any) error {
	n := numbers(args)
	sides, count := int(n[0]), int(n[1])
	if sides < 1 || count < 1 || count > maxDice {
		return c.ReplyToChannel(ctx, "I can roll between 1 and %d dice with at least one side.", maxDice)
	}
	rolls := make([]string, count)
	total := 0
	for i := range rolls {
		face := rand.Intn(sides) + 1
		total += face
		rolls[i] = fmt.Sprint(face)
	}
	return c.ReplyToChannel(ctx, "Rolled %s (total **%d**)", strings.Join(rolls, ", "), total)
}
