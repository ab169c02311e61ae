// Package scoring classifies deal news and ranks it against user preferences.
package scoring

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"dealfeed/types"
)

const (
	maxComponent = 40.0
	maxTotal     = 100
)

var entityPattern = regexp.MustCompile(`(?:[A-Z][A-Za-z&.-]+(?:\s+(?:&|[A-Z][A-Za-z&.-]+|Capital|Partners|Management|Advisors))*)`)

// Classify returns the first event type whose keywords appear in text
func Classify(text string) types.EventType {
	lo := strings.ToLower(text)
	for _, et := range eventOrder {
		if containsAny(lo, eventKeywords[et]) {
			return et
		}
	}
	return types.EventOther
}

// ExtractEntities returns up to ten sorted unique capitalised phrases and the
// sorted subset that are known firms
func ExtractEntities(text string) (entities, firms []string) {
	seen := map[string]struct{}{}
	for _, c := range entityPattern.FindAllString(text, -1) {
		seen[c] = struct{}{}
	}

	all := make([]string, 0, len(seen))
	firms = []string{}
	for c := range seen {
		all = append(all, c)
		if _, ok := FirmCanon[c]; ok {
			firms = append(firms, c)
		}
	}
	sort.Strings(all)
	sort.Strings(firms)

	if len(all) > 10 {
		all = all[:10]
	}
	return all, firms
}

// Enrich fills event type, entities and firms from the item's text
func Enrich(item types.DealItem) types.DealItem {
	text := item.Title + " " + item.Summary
	item.EventType = Classify(text)
	item.Entities, item.Firms = ExtractEntities(text)
	return item
}

// RecencyScore decays from 40 with age in hours; undated items get the full 40
func RecencyScore(published *time.Time, now time.Time) float64 {
	if published == nil {
		return maxComponent
	}
	hours := max(1, now.Sub(*published).Hours())
	return max(0, maxComponent/(1+hours/24))
}

// KeywordScore awards 10 per keyword and 6 per sector or geo found in text
func KeywordScore(text string, prefs types.Preferences) float64 {
	lo := strings.ToLower(text)
	score := 0.0
	for _, kw := range prefs.Keywords {
		if strings.Contains(lo, strings.ToLower(kw)) {
			score += 10
		}
	}
	for _, s := range prefs.Sectors {
		if strings.Contains(lo, strings.ToLower(s)) {
			score += 6
		}
	}
	for _, g := range prefs.Geos {
		if strings.Contains(lo, strings.ToLower(g)) {
			score += 6
		}
	}
	return min(score, maxComponent)
}

// IsRelevant is the strict private-deal gate. Text must name a deal action, and
// public-market chatter only passes with take-private context.
func IsRelevant(text string) bool {
	lo := strings.ToLower(text)
	if !containsAny(lo, relevantActions()) {
		return false
	}
	if containsAny(lo, publicMarketNoise) && !strings.Contains(lo, "take-private") && !strings.Contains(lo, "lbo") {
		return false
	}
	return true
}

// Scorer ranks items against preferences
type Scorer struct {
	relationships map[string]string
	strict        bool
	now           func() time.Time
}

// Option configures a Scorer
type Option func(*Scorer)

// WithRelationships replaces the relationship table
func WithRelationships(reln map[string]string) Option {
	return func(s *Scorer) { s.relationships = reln }
}

// WithStrictRelevance enables the private-deal gate
func WithStrictRelevance(strict bool) Option {
	return func(s *Scorer) { s.strict = strict }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// NewScorer creates a Scorer using DefaultRelationships
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{relationships: DefaultRelationships, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RelationshipScore is capped at 40:
// 10 per preferred firm that was extracted (max 20), 10 if no firm overlapped but
// the text mentions a preferred firm anyway, 10 if any extracted firm is a known
// relationship.
func (s *Scorer) RelationshipScore(item types.DealItem, prefs types.Preferences) float64 {
	text := strings.ToLower(item.Title + " " + item.Summary)
	preferred := lowerSet(prefs.Firms)
	extracted := lowerSet(item.Firms)

	overlap := 0
	for f := range preferred {
		if _, ok := extracted[f]; ok {
			overlap++
		}
	}
	score := min(20, 10*float64(overlap))

	if overlap == 0 {
		for f := range preferred {
			if strings.Contains(text, f) {
				score += 10
				break
			}
		}
	}

	for _, f := range item.Firms {
		if _, ok := s.relationships[f]; ok {
			score += 10
			break
		}
	}
	return min(score, maxComponent)
}

// Score sets the item's score and relationship badges
func (s *Scorer) Score(item types.DealItem, prefs types.Preferences) types.DealItem {
	text := item.Title + " " + item.Summary
	if s.strict && !IsRelevant(text) {
		item.Score = 0
		item.RelationshipBadges = []string{}
		return item
	}

	sum := RecencyScore(item.Published, s.now()) + KeywordScore(text, prefs) + s.RelationshipScore(item, prefs)
	item.Score = float64(min(int(sum), maxTotal))

	badges := []string{}
	for _, f := range item.Firms {
		if note := s.relationships[f]; note != "" {
			badges = append(badges, note)
		}
	}
	item.RelationshipBadges = badges
	return item
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}
