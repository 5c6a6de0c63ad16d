package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Match them with errors.Is; every *CommandError unwraps to its kind.
var (
	ErrSection = errors.New("section error")
	// A section with the same name is already registered.
	ErrSectionExists = fmt.Errorf("%w: section exists", ErrSection)
	// A section failed to load or is implemented incorrectly.
	ErrSectionImplementation = fmt.Errorf("%w: section implementation error", ErrSection)

	ErrCommand = errors.New("command error")
	// A command name contains whitespace.
	ErrInvalidCommandName = fmt.Errorf("%w: invalid command name", ErrCommand)
	// A command with the same name is already registered.
	ErrCommandExists = fmt.Errorf("%w: command exists", ErrCommand)
	// A check evaluated to false.
	ErrCheck = fmt.Errorf("%w: check failure", ErrCommand)
	// A check returned an error or panicked.
	ErrCheckImplementation = fmt.Errorf("%w: check implementation error", ErrCommand)
	// A converter or handler returned an unexpected error or panicked.
	ErrCommandImplementation = fmt.Errorf("%w: command implementation error", ErrCommand)

	ErrArgument = fmt.Errorf("%w: argument error", ErrCommand)
	// A converter produced no value for a required argument.
	ErrBadArgument = fmt.Errorf("%w: bad argument", ErrArgument)
	// A required argument had no segment.
	ErrMissingRequiredArgument = fmt.Errorf("%w: missing required argument", ErrArgument)
	// More segments than declared arguments. Never raised by Prepare, which ignores leftovers.
	ErrTooManyArguments = fmt.Errorf("%w: too many arguments", ErrArgument)
)

// CommandError describes a failure while resolving, preparing or invoking a command.
type CommandError struct {
	Kind     error
	Command  string
	Argument string
	// Allowed values for a failed choice-restricted argument.
	Choices []any
	Err     error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	b.WriteString(e.message())
	if e.Command != "" {
		fmt.Fprintf(&b, " in %s", e.Command)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *CommandError) message() string {
	switch {
	case e.Kind == ErrMissingRequiredArgument:
		return fmt.Sprintf("required argument: %s missing", e.Argument)
	case e.Kind == ErrBadArgument && len(e.Choices) > 0:
		return fmt.Sprintf("bad argument for %s, expected one of %s", e.Argument, formatChoices(e.Choices))
	case e.Kind == ErrBadArgument:
		return fmt.Sprintf("bad argument type for %s", e.Argument)
	case e.Kind == ErrCommandImplementation && e.Argument != "":
		return fmt.Sprintf("%s failed to parse due to a converter error", e.Argument)
	case e.Kind != nil:
		return e.Kind.Error()
	default:
		return ErrCommand.Error()
	}
}

func (e *CommandError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func formatChoices(choices []any) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, ", ")
}

// recovered turns a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
