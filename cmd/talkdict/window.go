package main

import (
	"context"
	"fmt"

	"github.com/at-ishikawa/talkdict/internal/tui"
)

func runWindow(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	window := tui.NewWindow()
	controller, release, err := newController(cfg, window)
	if err != nil {
		return err
	}
	defer release()

	window.Bind(ctx, controller)
	if err := window.Run(); err != nil {
		return fmt.Errorf("window.Run > %w", err)
	}
	return nil
}
