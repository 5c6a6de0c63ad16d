package dispatch_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"GoBotExt/core/dispatch"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stateClient builds a client answering from a populated state cache. No
// connection is opened.
func stateClient(t *testing.T) (*dispatch.SessionClient, *discordgo.State) {
	t.Helper()
	session, err := discordgo.New("Bot token")
	require.NoError(t, err)
	require.NoError(t, session.State.GuildAdd(&discordgo.Guild{
		ID:       guildID,
		Name:     "Home",
		Roles:    []*discordgo.Role{{ID: "50", Name: "Mods"}},
		Channels: []*discordgo.Channel{{ID: channelID, GuildID: guildID, Name: "general"}},
		Members:  []*discordgo.Member{{GuildID: guildID, User: author}},
	}))
	return dispatch.NewSessionClient(session), session.State
}

func TestSessionClient_GuildListsFromState(t *testing.T) {
	client, state := stateClient(t)

	roles, err := client.GuildRoles(context.Background(), guildID)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	channels, err := client.GuildChannels(context.Background(), guildID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	members, err := client.GuildMembers(context.Background(), guildID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	roles[0], channels[0], members[0] = nil, nil, nil
	guild, err := state.Guild(guildID)
	require.NoError(t, err)
	assert.Equal(t, "Mods", guild.Roles[0].Name)
	assert.Equal(t, "general", guild.Channels[0].Name)
	assert.Equal(t, author.Username, guild.Members[0].User.Username)
}

func TestSessionClient_GuildListsWhileStateChanges(t *testing.T) {
	client, state := stateClient(t)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			id := fmt.Sprint(100 + i)
			assert.NoError(t, state.RoleAdd(guildID, &discordgo.Role{ID: id}))
			assert.NoError(t, state.ChannelAdd(&discordgo.Channel{ID: id, GuildID: guildID}))
		}
	}()
	for i := 0; i < 50; i++ {
		roles, err := client.GuildRoles(context.Background(), guildID)
		require.NoError(t, err)
		for _, role := range roles {
			assert.NotEmpty(t, role.ID)
		}
		channels, err := client.GuildChannels(context.Background(), guildID)
		require.NoError(t, err)
		for _, channel := range channels {
			assert.NotEmpty(t, channel.ID)
		}
	}
	wg.Wait()

	roles, err := client.GuildRoles(context.Background(), guildID)
	require.NoError(t, err)
	assert.Len(t, roles, 51)
}
