package dispatch

import (
	"sort"
	"sync"
)

type SectionOptions struct {
	Name        string
	Description string
	Checks      []Check
}

type commandDefinition struct {
	options CommandOptions
	handler HandlerFunc
}

// Section groups commands under a name and adds its own tier of checks.
// Build one with NewSection, declare commands and checks on it, then hand it
// to Dispatcher.AddSection.
type Section struct {
	name        string
	description string
	checks      []Check

	definitions []commandDefinition
	events      []interface{}

	mu       sync.RWMutex
	commands map[string]*Command
}

func NewSection(opts SectionOptions) *Section {
	return &Section{
		name:        opts.Name,
		description: opts.Description,
		checks:      append([]Check(nil), opts.Checks...),
		commands:    map[string]*Command{},
	}
}

// Define declares a command. It is created when the section is added to a dispatcher.
func (s *Section) Define(opts CommandOptions, handler HandlerFunc) *Section {
	s.definitions = append(s.definitions, commandDefinition{options: opts, handler: handler})
	return s
}

// Check adds a check that every command of the section must pass.
func (s *Section) Check(check Check) *Section {
	s.checks = append(s.checks, check)
	return s
}

// Event declares a discordgo event handler, i.e func(*discordgo.Session, *discordgo.Ready).
func (s *Section) Event(handler interface{}) *Section {
	s.events = append(s.events, handler)
	return s
}

func (s *Section) Name() string        { return s.name }
func (s *Section) Description() string { return s.description }

func (s *Section) Checks() []Check {
	return append([]Check(nil), s.checks...)
}

func (s *Section) addCommand(cmd *Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands[cmd.name] = cmd
}

func (s *Section) Command(name string) *Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commands[name]
}

func (s *Section) HasCommand(name string) bool {
	return s.Command(name) != nil
}

// Commands returns the registered commands of the section, sorted by name.
func (s *Section) Commands() []*Command {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*Command, 0, len(s.commands))
	for _, cmd := range s.commands {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].name < list[j].name })
	return list
}
