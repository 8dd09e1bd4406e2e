// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"context"

	"github.com/datawire/dlib/derror"
	"github.com/spf13/cobra"
)

// runRecovered calls fn, converting any panic raised by
// lib/simerr.Violate (an *simerr.InvariantViolation) back into a
// returned error via derror.PanicToError, matching the teacher's
// lsfiles.LsFiles-style single recovery point at the command boundary.
func runRecovered(ctx context.Context, cmd *cobra.Command, args []string, fn func(context.Context, *cobra.Command, []string) error) (err error) {
	defer func() {
		if _err := derror.PanicToError(recover()); _err != nil {
			err = _err
		}
	}()
	return fn(ctx, cmd, args)
}
