package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"GoBotExt/core"

	"github.com/bwmarrin/discordgo"
)

// PrefixFunc computes the command prefix for a message.
type PrefixFunc func(d *Dispatcher, m *discordgo.Message) string

func StaticPrefix(prefix string) PrefixFunc {
	return func(*Dispatcher, *discordgo.Message) string { return prefix }
}

// ErrorCallback receives errors from command preparation and invocation. The
// context may be only partially prepared.
type ErrorCallback func(c *Context, err error)

type Option func(*Dispatcher)

// WithTimeout bounds the time spent resolving and running one message. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// WithChecks adds dispatcher-wide checks, evaluated before section and command checks.
func WithChecks(checks ...Check) Option {
	return func(d *Dispatcher) { d.checks = append(d.checks, checks...) }
}

// The Dispatcher owns the command and section namespaces. It parses incoming
// messages into a Context, prepares the arguments and invokes the command.
// Messages sent by the bot itself are ignored.
type Dispatcher struct {
	client  Client
	prefix  PrefixFunc
	timeout time.Duration

	mu             sync.RWMutex
	commands       map[string]*Command
	sections       map[string]*Section
	checks         []Check
	errorCallbacks []ErrorCallback

	// Section event handlers, attached to the session by Attach.
	session *discordgo.Session
	events  []interface{}
}

func New(client Client, prefix PrefixFunc, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:   client,
		prefix:   prefix,
		commands: map[string]*Command{},
		sections: map[string]*Section{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prefix returns the prefix that applies to a message.
func (d *Dispatcher) Prefix(m *discordgo.Message) string {
	return d.prefix(d, m)
}

// CreateCommand registers a standalone command.
func (d *Dispatcher) CreateCommand(opts CommandOptions, handler HandlerFunc) (*Command, error) {
	return d.createCommand(opts, handler, nil)
}

func (d *Dispatcher) createCommand(opts CommandOptions, handler HandlerFunc, section *Section) (*Command, error) {
	cmd, err := NewCommand(opts, handler)
	if err != nil {
		return nil, err
	}
	cmd.section = section

	d.mu.Lock()
	if _, exists := d.commands[cmd.name]; exists {
		d.mu.Unlock()
		return nil, &CommandError{Kind: ErrCommandExists, Command: cmd.name,
			Err: fmt.Errorf("command with name: %s already exists", cmd.name)}
	}
	d.commands[cmd.name] = cmd
	d.mu.Unlock()

	if section != nil {
		section.addCommand(cmd)
	}
	if core.IsLogInfo() {
		core.LogInfoF("Registered command: %s (%s)", cmd.name, cmd.format)
	}
	return cmd, nil
}

func (d *Dispatcher) Command(name string) *Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.commands[name]
}

func (d *Dispatcher) HasCommand(name string) bool {
	return d.Command(name) != nil
}

// Commands returns every registered command sorted by name.
func (d *Dispatcher) Commands() []*Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	list := make([]*Command, 0, len(d.commands))
	for _, cmd := range d.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	return list
}

// AddSection registers a section and creates its commands. A command that
// fails to register is logged and skipped so it cannot take the section down.
func (d *Dispatcher) AddSection(section *Section) error {
	d.mu.Lock()
	if _, exists := d.sections[section.name]; exists {
		d.mu.Unlock()
		return fmt.Errorf("%w: section with name: %s already exists", ErrSectionExists, section.name)
	}
	d.sections[section.name] = section
	d.mu.Unlock()

	for _, def := range section.definitions {
		if _, err := d.createCommand(def.options, def.handler, section); err != nil {
			core.LogErrorF("Section %s: %s", section.name, err)
		}
	}
	for _, handler := range section.events {
		d.addEventHandler(handler)
	}
	return nil
}

// LoadSection runs a section setup function. Failures other than
// ErrSectionExists, including panics, are reported as ErrSectionImplementation.
func (d *Dispatcher) LoadSection(setup func(d *Dispatcher) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSectionImplementation, recovered(r))
		}
	}()
	if err = setup(d); err != nil && !errors.Is(err, ErrSectionExists) && !errors.Is(err, ErrSectionImplementation) {
		err = fmt.Errorf("%w: %w", ErrSectionImplementation, err)
	}
	return err
}

func (d *Dispatcher) Section(name string) *Section {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sections[name]
}

func (d *Dispatcher) HasSection(name string) bool {
	return d.Section(name) != nil
}

// Sections returns every registered section sorted by name.
func (d *Dispatcher) Sections() []*Section {
	d.mu.RLock()
	defer d.mu.RUnlock()
	list := make([]*Section, 0, len(d.sections))
	for _, s := range d.sections {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	return list
}

// AddCheck adds a check evaluated for every command.
func (d *Dispatcher) AddCheck(check Check) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.checks = append(d.checks, check)
}

func (d *Dispatcher) Checks() []Check {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Check(nil), d.checks...)
}

// OnCommandError adds a callback for command errors. Without callbacks errors are logged.
func (d *Dispatcher) OnCommandError(callback ErrorCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errorCallbacks = append(d.errorCallbacks, callback)
}

// fireCommandError hands err to every callback, each on its own goroutine.
func (d *Dispatcher) fireCommandError(c *Context, err error) {
	d.mu.RLock()
	callbacks := append([]ErrorCallback(nil), d.errorCallbacks...)
	d.mu.RUnlock()

	if len(callbacks) == 0 {
		name := ""
		if c.Command != nil {
			name = c.Command.name
		}
		core.LogErrorF("[%s] Command %s failed: %s", c.ID, name, err)
		return
	}
	for _, callback := range callbacks {
		go func(callback ErrorCallback) {
			defer func() {
				if r := recover(); r != nil {
					core.LogErrorF("[%s] Error callback panicked: %v", c.ID, r)
				}
			}()
			callback(c, err)
		}(callback)
	}
}

// HandleMessage resolves, prepares and invokes the command named by m.
// It returns the context so callers can inspect the outcome; errors are
// routed to the error callbacks rather than returned.
func (d *Dispatcher) HandleMessage(ctx context.Context, m *discordgo.Message) *Context {
	if m == nil || m.Author == nil {
		return NewContext(ctx, d, m)
	}
	// Short-circuit if author of the message is the bot itself to avoid loops
	if self := d.client.SelfID(); self != "" && m.Author.ID == self {
		return &Context{dispatcher: d, Message: m}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	c := NewContext(ctx, d, m)
	if !c.Valid() {
		return c
	}
	if err := c.Prepare(ctx); err != nil {
		d.fireCommandError(c, err)
		return c
	}
	if err := c.Command.Invoke(ctx, c); err != nil {
		d.fireCommandError(c, err)
	}
	return c
}

// Attach connects the dispatcher to a discordgo session: created and edited
// messages are dispatched, and section event handlers are registered.
func (d *Dispatcher) Attach(session *discordgo.Session) {
	d.mu.Lock()
	d.session = session
	events := d.events
	d.events = nil
	d.mu.Unlock()

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		go d.HandleMessage(context.Background(), m.Message)
	})
	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		if m.Author != nil && strings.TrimSpace(m.Content) != "" {
			go d.HandleMessage(context.Background(), m.Message)
		}
	})
	for _, handler := range events {
		session.AddHandler(handler)
	}
}

func (d *Dispatcher) addEventHandler(handler interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		d.session.AddHandler(handler)
		return
	}
	d.events = append(d.events, handler)
}

// PendingEvents is the number of section event handlers waiting for Attach.
func (d *Dispatcher) PendingEvents() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.events)
}
