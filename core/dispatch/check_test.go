package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/dispatchtest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextFor(t *testing.T, d *dispatch.Dispatcher, m *discordgo.Message) *dispatch.Context {
	t.Helper()
	if !d.HasCommand("probe") {
		mustCreate(t, d, dispatch.CommandOptions{Name: "probe"}, noop)
	}
	c := dispatch.NewContext(context.Background(), d, m)
	require.True(t, c.Valid())
	return c
}

func passes(t *testing.T, check dispatch.Check, c *dispatch.Context) bool {
	t.Helper()
	ok, err := check(context.Background(), c)
	require.NoError(t, err)
	return ok
}

func TestIsGuildAndIsDirectMessage(t *testing.T) {
	d, _ := newDispatcher(t)
	inGuild := contextFor(t, d, guildMessage("!probe"))
	direct := contextFor(t, d, dispatchtest.Message("", dmID, author, "!probe"))

	assert.True(t, passes(t, dispatch.IsGuild(), inGuild))
	assert.False(t, passes(t, dispatch.IsGuild(), direct))
	assert.False(t, passes(t, dispatch.IsDirectMessage(), inGuild))
	assert.True(t, passes(t, dispatch.IsDirectMessage(), direct))
}

func TestWhitelistBlacklist(t *testing.T) {
	d, _ := newDispatcher(t)
	c := contextFor(t, d, guildMessage("!probe"))

	assert.True(t, passes(t, dispatch.Whitelist("1", author.ID), c))
	assert.False(t, passes(t, dispatch.Whitelist("1", "2"), c))
	assert.False(t, passes(t, dispatch.Whitelist(), c))

	assert.False(t, passes(t, dispatch.Blacklist(author.ID), c))
	assert.True(t, passes(t, dispatch.Blacklist("1"), c))
	assert.True(t, passes(t, dispatch.Blacklist(), c))

	assert.True(t, passes(t, dispatch.IsOwner(author.ID), c))
	assert.False(t, passes(t, dispatch.IsOwner(), c))
}

func TestHasPermissions(t *testing.T) {
	d, client := newDispatcher(t)
	c := contextFor(t, d, guildMessage("!probe"))

	_, err := dispatch.HasPermissions(discordgo.PermissionManageServer)(context.Background(), c)
	assert.ErrorIs(t, err, dispatchtest.ErrNotFound)

	client.SetPermissions(author.ID, channelID, discordgo.PermissionSendMessages|discordgo.PermissionManageServer)
	assert.True(t, passes(t, dispatch.HasPermissions(discordgo.PermissionManageServer), c))
	assert.False(t, passes(t, dispatch.HasPermissions(discordgo.PermissionAdministrator), c))

	direct := contextFor(t, d, dispatchtest.Message("", dmID, author, "!probe"))
	assert.False(t, passes(t, dispatch.HasPermissions(discordgo.PermissionSendMessages), direct))
}

func TestAny(t *testing.T) {
	d, _ := newDispatcher(t)
	c := contextFor(t, d, guildMessage("!probe"))

	assert.True(t, passes(t, dispatch.Any(dispatch.IsDirectMessage(), dispatch.Whitelist(author.ID)), c))
	assert.False(t, passes(t, dispatch.Any(dispatch.IsDirectMessage(), dispatch.Whitelist("1")), c))
	assert.False(t, passes(t, dispatch.Any(), c))

	broken := dispatch.Check(func(context.Context, *dispatch.Context) (bool, error) { return false, errors.New("down") })
	_, err := dispatch.Any(broken, dispatch.IsGuild())(context.Background(), c)
	assert.Error(t, err)
}

func TestCooldown(t *testing.T) {
	d, _ := newDispatcher(t)
	c := contextFor(t, d, guildMessage("!probe"))
	other := contextFor(t, d, dispatchtest.Message(guildID, channelID, &discordgo.User{ID: "101"}, "!probe"))

	check := dispatch.Cooldown(time.Hour, 2)
	assert.True(t, passes(t, check, c))
	assert.True(t, passes(t, check, c))
	assert.False(t, passes(t, check, c))
	assert.True(t, passes(t, check, other), "limits are per author")
}

func TestCooldown_RejectsThroughDispatcher(t *testing.T) {
	d, _ := newDispatcher(t, dispatch.WithChecks(dispatch.Cooldown(time.Hour, 1)))
	errs := errorSink(d)
	var got capture
	mustCreate(t, d, dispatch.CommandOptions{Name: "ping"}, got.handler)

	d.HandleMessage(context.Background(), guildMessage("!ping"))
	d.HandleMessage(context.Background(), guildMessage("!ping"))

	assert.ErrorIs(t, receive(t, errs), dispatch.ErrCheck)
	assert.Equal(t, 1, got.calls)
}
