package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"GoBotExt/core"
)

const defaultDescription = "No description"

// HandlerFunc runs a command. args holds one value per declared argument, in
// declaration order; greedy arguments arrive as []any.
type HandlerFunc func(ctx context.Context, c *Context, args ...any) error

// Argument declares one positional command argument.
type Argument struct {
	Name      string
	Converter Converter
}

func Arg(name string, converter Converter) Argument {
	return Argument{Name: name, Converter: converter}
}

type CommandOptions struct {
	Name string
	// Order matters: segments are matched to arguments left to right.
	Arguments   []Argument
	Description string
	// Usage string. Derived from Name and Arguments when empty.
	Format string
	Hidden bool
	Checks []Check
}

type Command struct {
	name        string
	arguments   []Argument
	description string
	format      string
	hidden      bool
	section     *Section
	checks      []Check
	handler     HandlerFunc
}

func NewCommand(opts CommandOptions, handler HandlerFunc) (*Command, error) {
	if opts.Name == "" || strings.IndexFunc(opts.Name, unicode.IsSpace) >= 0 {
		return nil, &CommandError{
			Kind:    ErrInvalidCommandName,
			Command: opts.Name,
			Err:     errors.New("a command name can not be empty or contain whitespace"),
		}
	}
	if handler == nil {
		return nil, &CommandError{Kind: ErrCommandImplementation, Command: opts.Name, Err: errors.New("nil handler")}
	}
	for _, arg := range opts.Arguments {
		if arg.Converter == nil {
			return nil, &CommandError{Kind: ErrCommandImplementation, Command: opts.Name, Argument: arg.Name,
				Err: errors.New("nil converter")}
		}
	}

	cmd := &Command{
		name:        opts.Name,
		arguments:   append([]Argument(nil), opts.Arguments...),
		description: opts.Description,
		format:      opts.Format,
		hidden:      opts.Hidden,
		checks:      append([]Check(nil), opts.Checks...),
		handler:     handler,
	}
	if cmd.format == "" && len(cmd.arguments) > 0 {
		cmd.format = deriveFormat(cmd.name, cmd.arguments)
	}
	if cmd.description == "" {
		cmd.description = defaultDescription
	}
	return cmd, nil
}

// deriveFormat builds a usage string: [name] is optional, {name} is required
// or greedy, and a default is shown as name = value.
func deriveFormat(name string, args []Argument) string {
	parts := []string{name}
	for _, arg := range args {
		label := arg.Name
		optional := arg.Converter.Optional()
		greedy, isGreedy := arg.Converter.(GreedyConverter)

		if def, ok := arg.Converter.Default().Get(); ok {
			label = fmt.Sprintf("%s = %v", label, def)
		}
		if isGreedy {
			if def, ok := greedy.ListDefault(); ok {
				optional = true
				if shown := strings.TrimSpace(formatList(def)); shown != "" {
					label = fmt.Sprintf("%s = %s", label, shown)
				}
			}
		}
		if isGreedy || !optional {
			label = "{" + label + "}"
		}
		if optional {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

func formatList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}

func (cmd *Command) Name() string        { return cmd.name }
func (cmd *Command) Description() string { return cmd.description }
func (cmd *Command) Format() string      { return cmd.format }
func (cmd *Command) Hidden() bool        { return cmd.hidden }

// Section returns the owning section, or nil.
func (cmd *Command) Section() *Section { return cmd.section }

func (cmd *Command) Arguments() []Argument {
	return append([]Argument(nil), cmd.arguments...)
}

func (cmd *Command) Checks() []Check {
	return append([]Check(nil), cmd.checks...)
}

// CanUse evaluates the dispatcher, section and command checks in that order,
// stopping at the first check that does not pass.
func (cmd *Command) CanUse(ctx context.Context, c *Context) (bool, error) {
	tiers := [][]Check{c.dispatcher.Checks()}
	if cmd.section != nil {
		tiers = append(tiers, cmd.section.Checks())
	}
	tiers = append(tiers, cmd.checks)

	for _, tier := range tiers {
		for _, check := range tier {
			ok, err := check.run(ctx, c)
			if err != nil {
				return false, &CommandError{Kind: ErrCheckImplementation, Command: cmd.name, Err: err}
			}
			if !ok {
				return false, nil
			}
		}
	}
	return true, nil
}

// Invoke prepares the context if needed, runs the checks and calls the handler.
func (cmd *Command) Invoke(ctx context.Context, c *Context) error {
	if c.Command != cmd {
		return fmt.Errorf("invalid context given to %s", cmd.name)
	}
	if err := c.Prepare(ctx); err != nil {
		return err
	}

	ok, err := cmd.CanUse(ctx, c)
	if err != nil {
		return err
	}
	if !ok {
		core.LogDebugF("[%s] Checks rejected %s.", c.ID, cmd.name)
		return &CommandError{Kind: ErrCheck, Command: cmd.name}
	}
	return cmd.call(ctx, c)
}

func (cmd *Command) call(ctx context.Context, c *Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CommandError{Kind: ErrCommandImplementation, Command: cmd.name, Err: recovered(r)}
		}
	}()
	return cmd.handler(ctx, c, c.Parameters()...)
}
