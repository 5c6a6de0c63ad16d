package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"GoBotExt/core"

	"github.com/bwmarrin/discordgo"
	"github.com/gofrs/uuid/v5"
)

// Context is the per-message state of one command resolution. It is created
// by NewContext, filled in by Prepare and handed to checks and handlers.
type Context struct {
	// Correlates log lines of one message.
	ID      uuid.UUID
	Author  *discordgo.User
	Message *discordgo.Message
	// Nil outside of guilds.
	Guild   *discordgo.Guild
	Channel *discordgo.Channel
	Prefix  string
	Command *Command

	dispatcher *Dispatcher
	valid      bool
	// Unconverted segments following the command name.
	segments []string

	prepared   bool
	arguments  map[string]any
	parameters []any
}

// NewContext resolves the command named by a message. The returned context
// is not Valid when the message is a system message, lacks the prefix, or
// names no registered command.
func NewContext(ctx context.Context, d *Dispatcher, m *discordgo.Message) *Context {
	c := &Context{ID: uuid.Must(uuid.NewV4()), dispatcher: d, Message: m}
	if m == nil || m.Author == nil || isSystemMessage(m) {
		return c
	}

	prefix := d.Prefix(m)
	if !strings.HasPrefix(m.Content, prefix) {
		return c
	}
	segments := strings.Split(strings.TrimPrefix(m.Content, prefix), " ")
	command := d.Command(segments[0])
	if command == nil {
		return c
	}

	c.Author = m.Author
	c.Prefix = prefix
	c.Command = command
	c.segments = segments[1:]
	c.Guild = c.resolveGuild(ctx, m.GuildID)
	c.Channel = c.resolveChannel(ctx, m.ChannelID)
	c.valid = true

	core.LogDebugF("[%s] Resolved command %s with segments %q", c.ID, command.name, c.segments)
	return c
}

func isSystemMessage(m *discordgo.Message) bool {
	return m.Type != discordgo.MessageTypeDefault && m.Type != discordgo.MessageTypeReply
}

func (c *Context) resolveGuild(ctx context.Context, guildID string) *discordgo.Guild {
	if guildID == "" {
		return nil
	}
	guild, err := c.Client().Guild(ctx, guildID)
	if err != nil || guild == nil {
		core.LogDebugF("[%s] Guild %s not resolved: %v", c.ID, guildID, err)
		return &discordgo.Guild{ID: guildID}
	}
	return guild
}

func (c *Context) resolveChannel(ctx context.Context, channelID string) *discordgo.Channel {
	channel, err := c.Client().Channel(ctx, channelID)
	if err != nil || channel == nil {
		core.LogDebugF("[%s] Channel %s not resolved: %v", c.ID, channelID, err)
		return &discordgo.Channel{ID: channelID, GuildID: c.Message.GuildID}
	}
	return channel
}

// Prepare converts the segments into the command's arguments. It runs once;
// later calls return nil without doing anything.
//
// Every ordinary argument takes exactly one segment. A greedy argument takes
// segments until one fails to convert; the failed segment is consumed too.
// An optional argument whose segment does not convert is nil, its default
// only applies when the segment is missing. Segments left over after the
// last argument are ignored.
func (c *Context) Prepare(ctx context.Context) error {
	if c.prepared {
		return nil
	}
	if !c.valid {
		return errors.New("context does not name a command")
	}

	arguments := make(map[string]any, len(c.Command.arguments))
	parameters := make([]any, 0, len(c.Command.arguments))
	index := 0
	for _, arg := range c.Command.arguments {
		var value any
		if greedy, ok := arg.Converter.(GreedyConverter); ok {
			var remaining []string
			if index < len(c.segments) {
				remaining = c.segments[index:]
			}
			values, consumed, err := c.convertGreedy(ctx, arg, greedy, remaining)
			if err != nil {
				return err
			}
			index += consumed
			value = values
		} else {
			segment, present := c.segment(index)
			index++
			converted, err := c.convertStep(ctx, arg, segment, present)
			if err != nil {
				return err
			}
			value = converted
		}
		core.LogDebugF("[%s] Argument %s = %#v", c.ID, arg.Name, value)
		arguments[arg.Name] = value
		parameters = append(parameters, value)
	}

	c.arguments = arguments
	c.parameters = parameters
	c.prepared = true
	return nil
}

func (c *Context) segment(index int) (string, bool) {
	if index < len(c.segments) {
		return c.segments[index], true
	}
	return "", false
}

func (c *Context) convertGreedy(ctx context.Context, arg Argument, greedy GreedyConverter, segments []string) ([]any, int, error) {
	values := []any{}
	consumed := 0
	for _, segment := range segments {
		consumed++
		value, err := c.convert(ctx, arg, segment)
		if err != nil {
			return nil, 0, err
		}
		v, ok := value.Get()
		if !ok {
			break
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		if def, ok := greedy.ListDefault(); ok {
			values = append([]any{}, def...)
		}
	}
	return values, consumed, nil
}

// convertStep converts one segment, applying the missing, default and
// optional rules of the argument's converter.
func (c *Context) convertStep(ctx context.Context, arg Argument, segment string, present bool) (any, error) {
	converter := arg.Converter
	def, hasDefault := converter.Default().Get()
	if !present {
		switch {
		case !converter.Optional():
			return nil, &CommandError{Kind: ErrMissingRequiredArgument, Command: c.Command.name, Argument: arg.Name}
		case hasDefault:
			return def, nil
		default:
			return nil, nil
		}
	}

	value, err := c.convert(ctx, arg, segment)
	if err != nil {
		return nil, err
	}
	if v, ok := value.Get(); ok {
		return v, nil
	}

	choice, isChoice := converter.(ChoiceConverter)
	if !converter.Optional() || isChoice {
		badArgument := &CommandError{Kind: ErrBadArgument, Command: c.Command.name, Argument: arg.Name}
		if isChoice {
			badArgument.Choices = choice.Choices()
		}
		return nil, badArgument
	}
	return nil, nil
}

// convert runs the converter, turning errors and panics into implementation errors.
func (c *Context) convert(ctx context.Context, arg Argument, segment string) (value Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = None, recovered(r)
		}
		if err != nil {
			var commandError *CommandError
			if !errors.As(err, &commandError) {
				err = &CommandError{Kind: ErrCommandImplementation, Command: c.Command.name, Argument: arg.Name, Err: err}
			}
		}
	}()
	return arg.Converter.Convert(ctx, c, segment)
}

// Valid reports whether the message names a registered command.
func (c *Context) Valid() bool { return c.valid }

func (c *Context) Prepared() bool { return c.prepared }

// HasGuild reports whether the message was sent in a guild.
func (c *Context) HasGuild() bool { return c.Guild != nil }

func (c *Context) Dispatcher() *Dispatcher { return c.dispatcher }

func (c *Context) Client() Client { return c.dispatcher.client }

// Segments returns the unconverted segments after the command name.
func (c *Context) Segments() []string {
	return append([]string(nil), c.segments...)
}

// Arguments maps argument names to converted values. Empty before Prepare.
func (c *Context) Arguments() map[string]any {
	arguments := make(map[string]any, len(c.arguments))
	for k, v := range c.arguments {
		arguments[k] = v
	}
	return arguments
}

// Parameters returns the converted values in declaration order.
func (c *Context) Parameters() []any {
	return append([]any(nil), c.parameters...)
}

// Arg returns the converted value of a named argument.
func (c *Context) Arg(name string) (any, bool) {
	v, ok := c.arguments[name]
	return v, ok
}

// Send posts content to the channel the command came from.
func (c *Context) Send(ctx context.Context, content string) error {
	return c.Client().SendMessage(ctx, c.Message.ChannelID, content)
}

// Utility method to send quick reply back to the channel
func (c *Context) ReplyToChannel(ctx context.Context, format string, v ...interface{}) error {
	return c.Send(ctx, fmt.Sprintf(format, v...))
}

// Utility method to send a reply to the author of the message
func (c *Context) ReplyToSender(ctx context.Context, format string, v ...interface{}) error {
	return c.Client().SendDirectMessage(ctx, c.Author.ID, fmt.Sprintf(format, v...))
}
