package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"GoBotExt/core"
	"GoBotExt/core/dispatch"

	"github.com/thoas/go-funk"
)

const replyTimeout = 10 * time.Second

// ReplyWithError tells the author why their command did not run. Failed
// checks stay silent and broken commands are only logged.
func ReplyWithError(c *dispatch.Context, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	var commandError *dispatch.CommandError
	switch {
	case errors.Is(err, dispatch.ErrCheck):
		return
	case errors.Is(err, dispatch.ErrArgument) && errors.As(err, &commandError):
		usage := ""
		if c.Command != nil && c.Command.Format() != "" {
			usage = "\nUsage: `" + c.Prefix + c.Command.Format() + "`"
		}
		if sendErr := c.ReplyToChannel(ctx, "Sorry, %s.%s", argumentProblem(commandError), usage); sendErr != nil {
			core.LogErrorF("[%s] Failed to report error: %s", c.ID, sendErr)
		}
	default:
		core.LogErrorF("[%s] %s", c.ID, err)
	}
}

func argumentProblem(e *dispatch.CommandError) string {
	switch {
	case errors.Is(e, dispatch.ErrMissingRequiredArgument):
		return "**" + e.Argument + "** is missing"
	case len(e.Choices) > 0:
		return "**" + e.Argument + "** must be one of " + joinChoices(e.Choices)
	default:
		return "I could not understand **" + e.Argument + "**"
	}
}

func joinChoices(choices []any) string {
	return strings.Join(funk.Map(choices, func(choice any) string { return fmt.Sprint(choice) }).([]string), ", ")
}
