package handlers

import (
	"context"

	"GoBotExt/core/database"
	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"

	"github.com/bwmarrin/discordgo"
)

const (
	AdminSection = "Admin"
	// Passed to prefix to go back to the default prefix.
	resetPrefix = "reset"
)

// GuildPrefix uses the prefix stored for the message's guild, or fallback.
func GuildPrefix(fallback string) dispatch.PrefixFunc {
	return func(_ *dispatch.Dispatcher, m *discordgo.Message) string {
		if m.GuildID != "" {
			if stored := database.FetchGuildPrefix(m.GuildID); stored != nil {
				return *stored
			}
		}
		return fallback
	}
}

// HasRole passes when the author's stored role is at least role.
func HasRole(role database.Role) dispatch.Check {
	return func(_ context.Context, c *dispatch.Context) (bool, error) {
		return database.FetchUserRole(c.Author.ID) >= role, nil
	}
}

// Admin registers guild administration commands. Changing the prefix needs
// the admin role or Manage Server; granting roles is limited to owners.
func Admin(owners ...string) func(d *dispatch.Dispatcher) error {
	isAdmin := dispatch.Any(
		dispatch.IsOwner(owners...),
		HasRole(database.RoleAdmin),
		dispatch.HasPermissions(discordgo.PermissionManageServer),
	)
	return func(d *dispatch.Dispatcher) error {
		section := dispatch.NewSection(dispatch.SectionOptions{
			Name:        AdminSection,
			Description: "Bot administration",
			Checks:      []dispatch.Check{dispatch.IsGuild()},
		}).Define(dispatch.CommandOptions{
			Name:        "prefix",
			Description: "Show the command prefix, change it, or `reset` it to the default",
			Arguments:   []dispatch.Argument{dispatch.Arg("newPrefix", convert.String(convert.Optional()))},
			Checks:      []dispatch.Check{isAdmin},
		}, prefix).Define(dispatch.CommandOptions{
			Name:        "grant",
			Description: "Set the bot role of a member",
			Arguments: []dispatch.Argument{
				dispatch.Arg("member", convert.Member()),
				dispatch.Arg("level", convert.Oneof(convert.String(), database.RoleUser.String(), database.RoleAdmin.String())),
			},
			Checks: []dispatch.Check{dispatch.IsOwner(owners...)},
		}, grant)
		return d.AddSection(section)
	}
}

func prefix(ctx context.Context, c *dispatch.Context, args ...any) error {
	guildID := c.Guild.ID
	if args[0] == nil {
		return c.ReplyToChannel(ctx, "The command prefix here is `%s`.", c.Prefix)
	}

	newPrefix := args[0].(string)
	switch newPrefix {
	case "":
		return c.ReplyToChannel(ctx, "The prefix can not be empty.")
	case resetPrefix:
		if err := database.ClearGuildPrefix(guildID); err != nil {
			return err
		}
		return c.ReplyToChannel(ctx, "The command prefix is back to the default.")
	}
	if err := database.SetGuildPrefix(guildID, newPrefix); err != nil {
		return err
	}
	return c.ReplyToChannel(ctx, "The command prefix is now `%s`.", newPrefix)
}

func grant(ctx context.Context, c *dispatch.Context, args ...any) error {
	member := args[0].(*discordgo.Member)
	role := database.RoleUser
	if args[1].(string) == database.RoleAdmin.String() {
		role = database.RoleAdmin
	}
	if err := database.SetUserRole(member.User.ID, role); err != nil {
		return err
	}
	return c.ReplyToChannel(ctx, "%s is now %s.", member.User.Username, role)
}
