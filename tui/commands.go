package tui

import (
	"context"
	"fmt"

	"dealfeed/types"

	tea "github.com/charmbracelet/bubbletea"
)

// waitForChange blocks until the feed signals a change
func waitForChange(ctx context.Context, feed Feed) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-feed.Changes():
			return FeedChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// reload triggers a fresh snapshot load
func reload(ctx context.Context, feed Feed) tea.Cmd {
	return func() tea.Msg {
		return ReloadedMsg{Err: feed.Reload(ctx)}
	}
}

// submitPreferences posts preferences then reloads so the rescored snapshot shows up
func submitPreferences(ctx context.Context, submitter PreferenceSubmitter, feed Feed, prefs types.Preferences) tea.Cmd {
	return func() tea.Msg {
		ack, err := submitter.SetPreferences(ctx, prefs)
		if err != nil {
			return PreferencesAppliedMsg{Err: fmt.Errorf("failed to apply preferences: %w", err)}
		}
		// a failed reload surfaces through the feed's load error
		_ = feed.Reload(ctx)
		return PreferencesAppliedMsg{Ack: ack}
	}
}
