package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"GoBotExt/core"
	"GoBotExt/core/database"
	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/handlers"

	"github.com/bwmarrin/discordgo"
)

// Variables used for command line parameters
var (
	settingsFile string
)

func init() {
	flag.StringVar(&settingsFile, "c", "config-dev.json", "Configuration path")
	flag.Parse()
}

func main() {
	core.LoadSettings(settingsFile)
	database.InitalizeDatabase()
	defer database.Close()

	// Create a new Discord session using the provided bot token.
	dg, err := discordgo.New("Bot " + core.Settings.AuthToken())
	if err != nil {
		core.LogFatal("error creating Discord session,", err)
		return
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent | discordgo.IntentsGuildMembers

	checks := []dispatch.Check{dispatch.Blacklist(core.Settings.Blacklist()...)}
	if every, burst := core.Settings.Cooldown(); every > 0 {
		checks = append(checks, dispatch.Cooldown(every, burst))
	}
	d := dispatch.New(dispatch.NewSessionClient(dg),
		handlers.GuildPrefix(core.Settings.CommandPrefix()),
		dispatch.WithTimeout(core.Settings.CommandTimeout()),
		dispatch.WithChecks(checks...))
	d.OnCommandError(handlers.ReplyWithError)

	if err := handlers.Load(d, core.Settings.OwnerIds()...); err != nil {
		core.LogWarnF("Some sections were not loaded: %s", err)
	}
	d.Attach(dg)

	// Open a websocket connection to Discord and begin listening.
	err = dg.Open()
	if err != nil {
		core.LogFatal("error opening connection,", err)
		return
	}
	defer dg.Close()

	// Wait here until CTRL-C or other term signal is received.
	core.LogInfoF("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
