package tui

import "dealfeed/client"

// Messages for the tea program

// FeedChangedMsg is sent whenever the session's store or status changed
type FeedChangedMsg struct{}

// ReloadedMsg is sent when a manual snapshot reload finishes
type ReloadedMsg struct {
	Err error
}

// PreferencesAppliedMsg is sent when a preference submission and the reload after it finish
type PreferencesAppliedMsg struct {
	Ack *client.PreferencesAck
	Err error
}
