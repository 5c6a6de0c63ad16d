package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/thoas/go-funk"
	"golang.org/x/time/rate"
)

// Check decides whether a command may run for a context. Returning false
// blocks the command; returning an error is treated as a broken check.
type Check func(ctx context.Context, c *Context) (bool, error)

// run evaluates the check, converting a panic into an error.
func (check Check) run(ctx context.Context, c *Context) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, recovered(r)
		}
	}()
	return check(ctx, c)
}

// Passes only for messages sent in a guild.
func IsGuild() Check {
	return func(_ context.Context, c *Context) (bool, error) {
		return c.HasGuild(), nil
	}
}

// Passes only for messages sent in a direct message channel.
func IsDirectMessage() Check {
	return func(_ context.Context, c *Context) (bool, error) {
		return !c.HasGuild(), nil
	}
}

// Passes when the author is one of ids.
func Whitelist(ids ...string) Check {
	return func(_ context.Context, c *Context) (bool, error) {
		return funk.ContainsString(ids, c.Author.ID), nil
	}
}

// Passes when the author is none of ids.
func Blacklist(ids ...string) Check {
	return func(_ context.Context, c *Context) (bool, error) {
		return !funk.ContainsString(ids, c.Author.ID), nil
	}
}

// IsOwner passes for the bot owners. With no owners configured nobody passes.
func IsOwner(ownerIds ...string) Check {
	return Whitelist(ownerIds...)
}

// HasPermissions passes when the author holds every bit of perms in the
// channel the message was sent in, i.e discordgo.PermissionManageServer.
func HasPermissions(perms int64) Check {
	return func(ctx context.Context, c *Context) (bool, error) {
		if !c.HasGuild() {
			return false, nil
		}
		granted, err := c.Client().UserChannelPermissions(ctx, c.Author.ID, c.Message.ChannelID)
		if err != nil {
			return false, err
		}
		return granted&perms == perms, nil
	}
}

// Any passes when at least one of checks passes. Errors abort evaluation.
func Any(checks ...Check) Check {
	return func(ctx context.Context, c *Context) (bool, error) {
		for _, check := range checks {
			ok, err := check.run(ctx, c)
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
}

// Cooldown allows each author burst commands, refilled once per every.
func Cooldown(every time.Duration, burst int) Check {
	var mu sync.Mutex
	limiters := map[string]*rate.Limiter{}
	return func(_ context.Context, c *Context) (bool, error) {
		mu.Lock()
		limiter, ok := limiters[c.Author.ID]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(every), burst)
			limiters[c.Author.ID] = limiter
		}
		mu.Unlock()
		return limiter.Allow(), nil
	}
}
