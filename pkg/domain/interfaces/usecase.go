package interfaces

import (
	"context"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// RelayUseCase defines the mention-to-comment relay pipeline
type RelayUseCase interface {
	// RelayMentions extracts card references from each mention, formats a
	// notification comment per reference, and posts them. The returned
	// list covers every reference found regardless of delivery outcome.
	RelayMentions(ctx context.Context, mentions []model.Mention) ([]model.CardComment, error)
}

// WebhookProcessor handles a decoded GitHub webhook payload
type WebhookProcessor interface {
	// ProcessEvent normalizes the payload into mentions and relays them
	ProcessEvent(ctx context.Context, event *model.WebhookEvent, payload any) ([]model.CardComment, error)
}
