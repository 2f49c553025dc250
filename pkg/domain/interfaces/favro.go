package interfaces

import "context"

// FavroClient defines operations against the Favro REST API
type FavroClient interface {
	// ResolveCard maps a sequential (human-facing) card ID to the card's
	// stable common ID. Returns an error tagged types.ErrTagCardNotFound
	// when no card matches.
	ResolveCard(ctx context.Context, cardSequentialID string) (string, error)

	// PostComment attaches a markdown comment to a resolved card and
	// returns the created comment ID.
	PostComment(ctx context.Context, cardCommonID, comment string) (string, error)
}
