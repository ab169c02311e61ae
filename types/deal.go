package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// EventType classifies a deal. The set is open: unknown values are carried as-is.
type EventType string

const (
	EventMergersAcquisitions EventType = "M&A"
	EventFinancing           EventType = "Financing"
	EventExit                EventType = "Exit"
	EventPartnership         EventType = "Partnership"
	EventOther               EventType = "Other"
)

// KnownEventTypes lists the event types in display order.
var KnownEventTypes = []EventType{
	EventMergersAcquisitions,
	EventFinancing,
	EventExit,
	EventPartnership,
	EventOther,
}

// DealItem represents one detected deal/event
type DealItem struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Link               string     `json:"link"`
	Summary            string     `json:"summary"`
	Published          *time.Time `json:"published,omitempty"`
	EventType          EventType  `json:"event_type"`
	Entities           []string   `json:"entities"`
	Firms              []string   `json:"firms"`
	Score              float64    `json:"score"`
	RelationshipBadges []string   `json:"relationship_badges"`
}

// KindDealItem is the envelope tag for a pushed deal item
const KindDealItem = "deal_item"

// Envelope is the wire wrapper around every push message
type Envelope struct {
	Kind string    `json:"kind"`
	Data *DealItem `json:"data"`
}

// NewDealEnvelope wraps an item for the stream
func NewDealEnvelope(item DealItem) Envelope {
	return Envelope{Kind: KindDealItem, Data: &item}
}

// Preferences is the user's scoring preference set
type Preferences struct {
	UserID   string   `json:"user_id"`
	Keywords []string `json:"keywords"`
	Firms    []string `json:"firms"`
	Sectors  []string `json:"sectors"`
	Geos     []string `json:"geos"`
}

// DefaultUserID is used when no user id is configured
const DefaultUserID = "demo"

// DefaultPreferences returns the empty preference set for the demo user
func DefaultPreferences() Preferences {
	return Preferences{
		UserID:   DefaultUserID,
		Keywords: []string{},
		Firms:    []string{},
		Sectors:  []string{},
		Geos:     []string{},
	}
}

// SplitList turns "a, b,,c" into ["a","b","c"]
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
