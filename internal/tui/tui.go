// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staranto/pengdash/internal/dashboard"
)

// Run shows the dashboard until the user quits or ctx is done.
func Run(ctx context.Context, d *dashboard.Dashboard, opts Options) error {
	p := tea.NewProgram(New(d, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
