package livechannel

import (
	"context"

	"dealfeed/types"
)

// Merger is the store side of the live feed
type Merger interface {
	MergeOne(item types.DealItem) bool
}

// Forward drains msgs into store until msgs is closed or ctx is done.
// onMerge, if set, runs after every item the store accepted.
func Forward(ctx context.Context, msgs <-chan Message, store Merger, onMerge func(types.DealItem)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			deal, isDeal := msg.(DealMessage)
			if !isDeal {
				continue
			}
			if store.MergeOne(deal.Item) && onMerge != nil {
				onMerge(deal.Item)
			}
		}
	}
}
