package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Cancellation already terminates the cycle cleanly; repeating it on
		// stderr would just add noise to cron mail.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "rosterpost:", err)
		}
		os.Exit(1)
	}
}
