package kafka

import (
	"context"

	"dealfeed/types"
)

// PublishDeal sends a deal envelope keyed by the deal id
func (p *Producer) PublishDeal(ctx context.Context, item types.DealItem) error {
	return p.PublishJSON(ctx, item.ID, types.NewDealEnvelope(item))
}

// DealHandler decodes deal envelopes and passes the item to process.
// Envelopes of other kinds or without an id are marked and skipped.
func DealHandler(process func(ctx context.Context, item types.DealItem) error) *TypedMessageHandler[types.Envelope] {
	return &TypedMessageHandler[types.Envelope]{
		Validate: func(env *types.Envelope) bool {
			return env.Kind == types.KindDealItem && env.Data != nil && env.Data.ID != ""
		},
		Process: func(ctx context.Context, env *types.Envelope) error {
			return process(ctx, *env.Data)
		},
		AlwaysMark: true,
	}
}
