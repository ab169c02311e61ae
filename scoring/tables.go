package scoring

import "dealfeed/types"

// eventKeywords are tried in eventOrder; the first type with a hit wins
var eventKeywords = map[types.EventType][]string{
	types.EventMergersAcquisitions: {"acquire", "acquisition", "merger", "buy", "take-private", "lbo"},
	types.EventFinancing:           {"financing", "credit", "debt", "unitranche", "term loan", "capex"},
	types.EventExit:                {"divest", "sell", "spin-off", "sale", "exit"},
	types.EventPartnership:         {"partnership", "joint venture", "jv", "strategic alliance"},
}

var eventOrder = []types.EventType{
	types.EventMergersAcquisitions,
	types.EventFinancing,
	types.EventExit,
	types.EventPartnership,
}

// FirmCanon is the set of firm names recognised during entity extraction
var FirmCanon = map[string]struct{}{
	"KKR":            {},
	"Blackstone":     {},
	"Apollo":         {},
	"Carlyle":        {},
	"TPG":            {},
	"Bain Capital":   {},
	"BlackRock":      {},
	"Morgan Stanley": {},
}

// DefaultRelationships maps firms to relationship annotations; empty annotations
// still count as a known relationship but produce no badge
var DefaultRelationships = map[string]string{
	"KKR":            "Co-invested with KKR",
	"Blackstone":     "LP relationship: Blackstone fund",
	"Apollo":         "Former portfolio CFO now at target",
	"BlackRock":      "",
	"Bain":           "",
	"Carlyle":        "",
	"Morgan Stanley": "",
}

var privateContext = []string{
	"private company", "portfolio company", "private equity", "growth equity",
	"pe-backed", "sponsor-backed", "financial sponsor", "buyout", "lbo",
	"take-private", "minority investment", "majority investment", "bolt-on",
	"add-on acquisition", "capex", "capital expenditure", "unitranche",
	"term loan", "senior secured", "mezzanine", "bridge financing",
}

var publicMarketNoise = []string{
	"sec filing", "8-k", "10-k", "10-q", "earnings call", "dividend",
	"nasdaq:", "nyse:", "ticker:", "ipo filing", "ipo priced",
}

func relevantActions() []string {
	var out []string
	for _, et := range eventOrder {
		out = append(out, eventKeywords[et]...)
	}
	return out
}
