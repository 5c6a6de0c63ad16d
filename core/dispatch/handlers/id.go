package handlers

import (
	"context"
	"fmt"
	"strings"

	"GoBotExt/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

func ident(ctx context.Context, c *dispatch.Context, args ...any) error {
	users := funk.Map(args[0].([]any), func(user any) *discordgo.User { return user.(*discordgo.User) }).([]*discordgo.User)
	if len(users) == 0 {
		users = []*discordgo.User{c.Author}
	}
	identities := funk.Map(users, func(user *discordgo.User) string {
		return fmt.Sprintf("%v has id %s", user.Username, user.ID)
	}).([]string)
	return c.ReplyToChannel(ctx, "Identities:\n\t%s", strings.Join(identities, "\n\t"))
}
