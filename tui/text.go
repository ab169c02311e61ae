package tui

// UI Text Constants
const (
	TextTitle = "📈 Deal Feed"

	TextSearchPlaceholder = "Search titles and summaries"
	TextLoading           = "⏳ Loading deals..."
	TextEmpty             = "No deals match. Clear the search or pick another type, or wait for new deals to stream in."
	TextLoadFailed        = "❌ Couldn't load the feed"
	TextStreamLive        = "● live"
	TextStreamOffline     = "○ offline"

	TextFooterBrowse = "/ search | tab type | ↑/↓ scroll | p apply preferences | r reload | q quit"
	TextFooterSearch = "enter/esc done | ctrl+c quit"
)
