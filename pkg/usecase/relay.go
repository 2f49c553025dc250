package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/domain/types"
)

type relayUseCase struct {
	prefix string
	favro  interfaces.FavroClient // nil means dry-run: no network calls
}

// NewRelay creates a new instance of RelayUseCase. prefix scopes the card
// reference tokens to extract. When favro is nil the relay runs dry:
// references are still extracted and comments formatted, but nothing is
// posted.
func NewRelay(prefix string, favro interfaces.FavroClient) interfaces.RelayUseCase {
	return &relayUseCase{
		prefix: prefix,
		favro:  favro,
	}
}

// RelayMentions extracts card references from every mention, formats one
// notification comment per mention, and posts it to every referenced
// card. Posts are dispatched concurrently and joined all-settle: one
// failing reference never aborts its siblings. The returned list covers
// every (mention, reference) pair in extraction order, regardless of
// delivery outcome.
func (uc *relayUseCase) RelayMentions(ctx context.Context, mentions []model.Mention) ([]model.CardComment, error) {
	logger := ctxlog.From(ctx)

	var comments []model.CardComment
	for i := range mentions {
		m := &mentions[i]

		cardIDs := model.ExtractReferences(m.Haystack(), uc.prefix)
		if len(cardIDs) == 0 {
			logger.Debug("no card reference found",
				"type", m.Type,
				"url", m.URL,
			)
			continue
		}

		body := m.FormatComment()
		logger.Info("found card reference(s)",
			"type", m.Type,
			"url", m.URL,
			"cards", strings.Join(cardIDs, ", "),
		)

		for _, cardID := range cardIDs {
			comments = append(comments, model.CardComment{ID: cardID, Body: body})
		}
	}

	if uc.favro == nil || len(comments) == 0 {
		return comments, nil
	}

	// All-settle fan-out: each reference resolves and posts on its own
	// goroutine, failures are logged per reference.
	var wg sync.WaitGroup
	for _, comment := range comments {
		wg.Add(1)
		go func(c model.CardComment) {
			defer wg.Done()
			uc.deliver(ctx, c)
		}(comment)
	}
	wg.Wait()

	return comments, nil
}

// deliver resolves one card reference and posts the comment to it. All
// failures stop at this boundary so sibling deliveries are unaffected.
func (uc *relayUseCase) deliver(ctx context.Context, comment model.CardComment) {
	logger := ctxlog.From(ctx)

	commonID, err := uc.favro.ResolveCard(ctx, comment.ID)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagCardNotFound) {
			logger.Warn("could not map card to common ID, skipping post",
				"card", comment.ID,
			)
		} else {
			logger.Error("failed to resolve card",
				"card", comment.ID,
				"error", err,
			)
		}
		return
	}

	commentID, err := uc.favro.PostComment(ctx, commonID, comment.Body)
	if err != nil {
		logger.Error("failed to post comment",
			"card", comment.ID,
			"card_common_id", commonID,
			"error", err,
		)
		return
	}

	logger.Info("posted comment",
		"comment_id", commentID,
		"card", comment.ID,
		"card_common_id", commonID,
	)
}
