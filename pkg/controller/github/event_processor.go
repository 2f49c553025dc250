package github

import (
	"context"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// EventProcessor turns GitHub webhook payloads into normalized mentions
// and hands them to the relay use case
type EventProcessor struct {
	relayUC interfaces.RelayUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(relayUC interfaces.RelayUseCase) *EventProcessor {
	return &EventProcessor{
		relayUC: relayUC,
	}
}

// ProcessEvent normalizes a decoded webhook payload and relays the
// resulting mentions
func (p *EventProcessor) ProcessEvent(ctx context.Context, event *model.WebhookEvent, payload any) ([]model.CardComment, error) {
	logger := ctxlog.From(ctx)

	mentions := MentionsFromEvent(payload)
	if len(mentions) == 0 {
		logger.Debug("event yields no mentions",
			"id", event.ID,
			"type", event.Type,
			"action", event.Action,
		)
		return nil, nil
	}

	logger.Info("processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
		"mentions", len(mentions),
	)

	return p.relayUC.RelayMentions(ctx, mentions)
}

// MentionsFromEvent maps a decoded webhook payload to zero or more
// normalized mentions. Unrecognized payload kinds and release events
// yield an empty list, never an error; missing optional fields become
// empty strings.
func MentionsFromEvent(payload any) []model.Mention {
	switch e := payload.(type) {
	case *github.PushEvent:
		return pushMentions(e)

	case *github.IssueCommentEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionIssueComment,
			URL:    e.GetComment().GetHTMLURL(),
			Body:   e.GetComment().GetBody(),
			Author: userAuthor(e.GetComment().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.CommitCommentEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionCommitComment,
			URL:    e.GetComment().GetHTMLURL(),
			Body:   e.GetComment().GetBody(),
			Author: userAuthor(e.GetComment().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.DiscussionCommentEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionDiscussionComment,
			URL:    e.GetComment().GetHTMLURL(),
			Body:   e.GetComment().GetBody(),
			Author: userAuthor(e.GetComment().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.DiscussionEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionDiscussion,
			URL:    e.GetDiscussion().GetHTMLURL(),
			Title:  e.GetDiscussion().GetTitle(),
			Body:   e.GetDiscussion().GetBody(),
			Author: userAuthor(e.GetDiscussion().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.IssuesEvent:
		// Deliberately not filtered by action: issue edits and state
		// changes relay too.
		return []model.Mention{{
			Type:   model.MentionIssue,
			URL:    e.GetIssue().GetHTMLURL(),
			Title:  e.GetIssue().GetTitle(),
			Body:   e.GetIssue().GetBody(),
			Author: userAuthor(e.GetIssue().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.ProjectCardEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionProjectCard,
			URL:    e.GetProjectCard().GetURL(),
			Title:  e.GetProjectCard().GetNote(),
			Author: userAuthor(e.GetProjectCard().GetCreator()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.PullRequestEvent:
		if e.GetAction() != "opened" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionPullRequest,
			URL:    e.GetPullRequest().GetHTMLURL(),
			Title:  e.GetPullRequest().GetTitle(),
			Body:   e.GetPullRequest().GetBody(),
			Author: userAuthor(e.GetPullRequest().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.PullRequestReviewEvent:
		if e.GetAction() != "submitted" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionPRReview,
			URL:    e.GetReview().GetHTMLURL(),
			Body:   e.GetReview().GetBody(),
			Author: userAuthor(e.GetReview().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	case *github.PullRequestReviewCommentEvent:
		if e.GetAction() != "created" {
			return nil
		}
		return []model.Mention{{
			Type:   model.MentionPRReviewComment,
			URL:    e.GetComment().GetHTMLURL(),
			Body:   e.GetComment().GetBody(),
			Author: userAuthor(e.GetComment().GetUser()),
			Repo:   repoRef(e.GetRepo()),
		}}

	default:
		// Includes *github.ReleaseEvent: release notes aggregate commit
		// titles and could reference many unrelated cards.
		return nil
	}
}

// pushMentions emits one branch mention when the ref was newly created,
// plus one commit mention per distinct commit. Non-distinct commits are
// skipped so a branch created from existing history does not re-notify.
func pushMentions(e *github.PushEvent) []model.Mention {
	var mentions []model.Mention

	if e.GetCreated() {
		mentions = append(mentions, model.Mention{
			Type:   model.MentionBranch,
			URL:    e.GetCompare(),
			Title:  strings.TrimPrefix(e.GetRef(), "refs/heads/"),
			Author: userAuthor(e.GetSender()),
			Repo:   pushRepoRef(e.GetRepo()),
		})
	}

	for _, commit := range e.Commits {
		if !commit.GetDistinct() {
			continue
		}
		title, body := splitCommitMessage(commit.GetMessage())
		mentions = append(mentions, model.Mention{
			Type:   model.MentionCommit,
			URL:    commit.GetURL(),
			Title:  title,
			Body:   body,
			Author: commitAuthor(commit.GetAuthor()),
			Repo:   pushRepoRef(e.GetRepo()),
		})
	}

	return mentions
}

// splitCommitMessage splits a commit message into its first line and the
// remainder after the first run of newlines
func splitCommitMessage(message string) (title, body string) {
	title, rest, found := strings.Cut(message, "\n")
	if !found {
		return message, ""
	}
	return title, strings.TrimLeft(rest, "\n")
}

func userAuthor(u *github.User) model.Author {
	return model.Author{
		Name:  u.GetName(),
		Login: u.GetLogin(),
		URL:   u.GetHTMLURL(),
	}
}

// commitAuthor converts a git-level author: name/email come from the
// commit, the login (when GitHub could map the email) gets a constructed
// profile URL via Author.ProfileURL
func commitAuthor(a *github.CommitAuthor) model.Author {
	return model.Author{
		Name:  a.GetName(),
		Login: a.GetLogin(),
		Email: a.GetEmail(),
	}
}

func repoRef(r *github.Repository) *model.RepoRef {
	if r == nil {
		return nil
	}
	return &model.RepoRef{
		FullName: r.GetFullName(),
		HTMLURL:  r.GetHTMLURL(),
	}
}

func pushRepoRef(r *github.PushEventRepository) *model.RepoRef {
	if r == nil {
		return nil
	}
	return &model.RepoRef{
		FullName: r.GetFullName(),
		HTMLURL:  r.GetHTMLURL(),
	}
}
