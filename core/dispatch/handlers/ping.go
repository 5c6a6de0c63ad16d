package handlers

import (
	"context"

	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"
)

const GeneralSection = "General"

// General registers ping, pong and id.
func General(d *dispatch.Dispatcher) error {
	section := dispatch.NewSection(dispatch.SectionOptions{
		Name:        GeneralSection,
		Description: "Simple commands available everywhere",
	}).Define(dispatch.CommandOptions{
		Name:        "ping",
		Description: "Simple command to check that bot is alive",
	}, reply("Pong!")).Define(dispatch.CommandOptions{
		Name:        "pong",
		Description: "Simple command to check that bot is alive",
	}, reply("Ping!")).Define(dispatch.CommandOptions{
		Name:        "id",
		Description: "Return Discord ID for the author, or all mentioned users",
		Arguments:   []dispatch.Argument{dispatch.Arg("users", convert.Spoiled(convert.User()))},
	}, ident)
	return d.AddSection(section)
}

func reply(text string) dispatch.HandlerFunc {
	return func(ctx context.Context, c *dispatch.Context, _ ...any) error {
		return c.Send(ctx, text)
	}
}
