package handlers

import (
	"context"
	"fmt"
	"strings"

	"GoBotExt/core"
	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"

	"github.com/bwmarrin/discordgo"
	"github.com/thoas/go-funk"
)

const HelpSection = "Help"

// Help registers the help command, which lists the loaded sections or the
// commands of one section.
func Help(d *dispatch.Dispatcher) error {
	section := dispatch.NewSection(dispatch.SectionOptions{
		Name:        HelpSection,
		Description: "Contains commands used for helping",
	}).Define(dispatch.CommandOptions{
		Name:        "help",
		Description: "List the sections, or the commands of one section. Arguments: *[section name]*",
		Arguments: []dispatch.Argument{
			// Section names may contain spaces.
			dispatch.Arg("sectionName", convert.Spoiled(convert.String(), convert.ListDefault(""))),
		},
	}, help).Event(func(s *discordgo.Session, r *discordgo.Ready) {
		core.LogInfoF("Connected as %s, serving %d guilds.", r.User.String(), len(r.Guilds))
	})
	return d.AddSection(section)
}

func help(ctx context.Context, c *dispatch.Context, args ...any) error {
	words := funk.Map(args[0].([]any), func(word any) string { return fmt.Sprint(word) }).([]string)
	name := strings.TrimSpace(strings.Join(words, " "))

	if name == "" {
		return c.Send(ctx, listSections(c.Dispatcher()))
	}
	section := c.Dispatcher().Section(name)
	if section == nil {
		return c.ReplyToChannel(ctx, "There is no section named **%s**. Try `%shelp` for a list.", name, c.Prefix)
	}
	return c.Send(ctx, describeSection(section, c.Prefix))
}

func listSections(d *dispatch.Dispatcher) string {
	sections := d.Sections()
	if len(sections) == 0 {
		return "No sections are loaded."
	}
	lines := funk.Map(sections, func(s *dispatch.Section) string {
		return fmt.Sprintf("**%s**: %s", s.Name(), s.Description())
	}).([]string)
	return "**Sections**:\n\t" + strings.Join(lines, "\n\t")
}

func describeSection(section *dispatch.Section, prefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**", section.Name())
	if section.Description() != "" {
		fmt.Fprintf(&b, ": %s", section.Description())
	}
	visible := funk.Filter(section.Commands(), func(cmd *dispatch.Command) bool { return !cmd.Hidden() }).([]*dispatch.Command)
	if len(visible) == 0 {
		b.WriteString("\n\tNo commands.")
	}
	for _, cmd := range visible {
		usage := cmd.Format()
		if usage == "" {
			usage = cmd.Name()
		}
		fmt.Fprintf(&b, "\n\t`%s%s`\n\t\t%s", prefix, usage, cmd.Description())
	}
	return b.String()
}
