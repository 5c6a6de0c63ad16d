// Package handlers holds the command sections bundled with the bot.
package handlers

import (
	"errors"

	"GoBotExt/core"
	"GoBotExt/core/dispatch"
)

// Load adds every bundled section to d. A section that fails to load is
// logged and skipped; the failures are returned together.
func Load(d *dispatch.Dispatcher, owners ...string) error {
	setups := []func(*dispatch.Dispatcher) error{Help, General, Info, Science, Animals, Admin(owners...)}
	var errs []error
	for _, setup := range setups {
		if err := d.LoadSection(setup); err != nil {
			core.LogErrorF("Failed to load section: %s", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
