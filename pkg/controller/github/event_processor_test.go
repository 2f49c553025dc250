package github_test

import (
	"context"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/m-mizutani/gt"

	githubcontroller "github.com/m-mizutani/herald/pkg/controller/github"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

// MockRelayUseCase is a mock implementation of RelayUseCase
type MockRelayUseCase struct {
	relayFunc  func(ctx context.Context, mentions []model.Mention) ([]model.CardComment, error)
	relayCalls [][]model.Mention
}

func (m *MockRelayUseCase) RelayMentions(ctx context.Context, mentions []model.Mention) ([]model.CardComment, error) {
	m.relayCalls = append(m.relayCalls, mentions)
	if m.relayFunc != nil {
		return m.relayFunc(ctx, mentions)
	}
	return nil, nil
}

func TestMentionsFromEvent_Push(t *testing.T) {
	repo := &github.PushEventRepository{
		FullName: github.String("org/repo"),
		HTMLURL:  github.String("https://github.com/org/repo"),
	}

	t.Run("only distinct commits yield mentions", func(t *testing.T) {
		event := &github.PushEvent{
			Ref:  github.String("refs/heads/main"),
			Repo: repo,
			Commits: []*github.HeadCommit{
				{
					Distinct: github.Bool(true),
					URL:      github.String("https://github.com/org/repo/commit/aaa"),
					Message:  github.String("fix Sou-1"),
					Author:   &github.CommitAuthor{Name: github.String("Jane")},
				},
				{
					Distinct: github.Bool(false),
					URL:      github.String("https://github.com/org/repo/commit/bbb"),
					Message:  github.String("old commit"),
					Author:   &github.CommitAuthor{Name: github.String("Jane")},
				},
			},
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionCommit)
		gt.Value(t, mentions[0].URL).Equal("https://github.com/org/repo/commit/aaa")
		gt.Value(t, mentions[0].Title).Equal("fix Sou-1")
		gt.Value(t, mentions[0].Repo.FullName).Equal("org/repo")
	})

	t.Run("created ref adds a branch mention", func(t *testing.T) {
		event := &github.PushEvent{
			Ref:     github.String("refs/heads/feature/sou-2"),
			Created: github.Bool(true),
			Compare: github.String("https://github.com/org/repo/compare/aaa...bbb"),
			Sender:  &github.User{Login: github.String("jdoe")},
			Repo:    repo,
			Commits: []*github.HeadCommit{
				{
					Distinct: github.Bool(true),
					URL:      github.String("https://github.com/org/repo/commit/ccc"),
					Message:  github.String("initial"),
					Author:   &github.CommitAuthor{Name: github.String("Jane")},
				},
			},
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(2)
		gt.Value(t, mentions[0].Type).Equal(model.MentionBranch)
		gt.Value(t, mentions[0].Title).Equal("feature/sou-2")
		gt.Value(t, mentions[0].URL).Equal("https://github.com/org/repo/compare/aaa...bbb")
		gt.Value(t, mentions[0].Author.Login).Equal("jdoe")
		gt.Value(t, mentions[1].Type).Equal(model.MentionCommit)
	})

	t.Run("commit message splits into title and body", func(t *testing.T) {
		event := &github.PushEvent{
			Repo: repo,
			Commits: []*github.HeadCommit{
				{
					Distinct: github.Bool(true),
					URL:      github.String("https://github.com/org/repo/commit/ddd"),
					Message:  github.String("fix login\n\nResolves Sou-3.\nAlso cleans up."),
					Author: &github.CommitAuthor{
						Email: github.String("jane@example.com"),
						Login: github.String("jdoe"),
					},
				},
			},
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Title).Equal("fix login")
		gt.Value(t, mentions[0].Body).Equal("Resolves Sou-3.\nAlso cleans up.")
		gt.Value(t, mentions[0].Author.Login).Equal("jdoe")
		gt.Value(t, mentions[0].Author.Email).Equal("jane@example.com")
	})

	t.Run("single line message has no body", func(t *testing.T) {
		event := &github.PushEvent{
			Repo: repo,
			Commits: []*github.HeadCommit{
				{
					Distinct: github.Bool(true),
					URL:      github.String("https://github.com/org/repo/commit/eee"),
					Message:  github.String("one liner"),
					Author:   &github.CommitAuthor{Name: github.String("Jane")},
				},
			},
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Title).Equal("one liner")
		gt.Value(t, mentions[0].Body).Equal("")
	})
}

func TestMentionsFromEvent_Comments(t *testing.T) {
	repo := &github.Repository{
		FullName: github.String("org/repo"),
		HTMLURL:  github.String("https://github.com/org/repo"),
	}

	t.Run("issue comment created", func(t *testing.T) {
		event := &github.IssueCommentEvent{
			Action: github.String("created"),
			Comment: &github.IssueComment{
				HTMLURL: github.String("https://github.com/org/repo/issues/1#issuecomment-1"),
				Body:    github.String("looks like Sou-4"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionIssueComment)
		gt.Value(t, mentions[0].Body).Equal("looks like Sou-4")
		gt.Value(t, mentions[0].Title).Equal("")
	})

	t.Run("issue comment edited is ignored", func(t *testing.T) {
		event := &github.IssueCommentEvent{
			Action:  github.String("edited"),
			Comment: &github.IssueComment{Body: github.String("Sou-4")},
			Repo:    repo,
		}
		gt.Array(t, githubcontroller.MentionsFromEvent(event)).Length(0)
	})

	t.Run("commit comment created", func(t *testing.T) {
		event := &github.CommitCommentEvent{
			Action: github.String("created"),
			Comment: &github.RepositoryComment{
				HTMLURL: github.String("https://github.com/org/repo/commit/aaa#commitcomment-1"),
				Body:    github.String("relates to Sou-5"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionCommitComment)
	})

	t.Run("PR review comment created", func(t *testing.T) {
		event := &github.PullRequestReviewCommentEvent{
			Action: github.String("created"),
			Comment: &github.PullRequestComment{
				HTMLURL: github.String("https://github.com/org/repo/pull/2#discussion_r1"),
				Body:    github.String("Sou-6 again"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionPRReviewComment)
	})
}

func TestMentionsFromEvent_IssuesAndPRs(t *testing.T) {
	repo := &github.Repository{
		FullName: github.String("org/repo"),
		HTMLURL:  github.String("https://github.com/org/repo"),
	}

	t.Run("issue relays on any action", func(t *testing.T) {
		for _, action := range []string{"opened", "edited", "closed"} {
			event := &github.IssuesEvent{
				Action: github.String(action),
				Issue: &github.Issue{
					HTMLURL: github.String("https://github.com/org/repo/issues/3"),
					Title:   github.String("Broken login Sou-7"),
					Body:    github.String("details"),
					User:    &github.User{Login: github.String("jdoe")},
				},
				Repo: repo,
			}

			mentions := githubcontroller.MentionsFromEvent(event)
			gt.Array(t, mentions).Length(1)
			gt.Value(t, mentions[0].Type).Equal(model.MentionIssue)
			gt.Value(t, mentions[0].Title).Equal("Broken login Sou-7")
		}
	})

	t.Run("pull request opened", func(t *testing.T) {
		event := &github.PullRequestEvent{
			Action: github.String("opened"),
			PullRequest: &github.PullRequest{
				HTMLURL: github.String("https://github.com/org/repo/pull/4"),
				Title:   github.String("Implement Sou-8"),
				Body:    github.String("done"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionPullRequest)
	})

	t.Run("pull request synchronize is ignored", func(t *testing.T) {
		event := &github.PullRequestEvent{
			Action:      github.String("synchronize"),
			PullRequest: &github.PullRequest{Title: github.String("Sou-8")},
			Repo:        repo,
		}
		gt.Array(t, githubcontroller.MentionsFromEvent(event)).Length(0)
	})

	t.Run("PR review submitted has no title", func(t *testing.T) {
		event := &github.PullRequestReviewEvent{
			Action: github.String("submitted"),
			Review: &github.PullRequestReview{
				HTMLURL: github.String("https://github.com/org/repo/pull/4#pullrequestreview-1"),
				Body:    github.String("LGTM, tracks Sou-9"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionPRReview)
		gt.Value(t, mentions[0].Title).Equal("")
	})

	t.Run("discussion created", func(t *testing.T) {
		event := &github.DiscussionEvent{
			Action: github.String("created"),
			Discussion: &github.Discussion{
				HTMLURL: github.String("https://github.com/org/repo/discussions/5"),
				Title:   github.String("Sou-10 rollout"),
				Body:    github.String("thoughts?"),
				User:    &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionDiscussion)
	})

	t.Run("project card note becomes the title", func(t *testing.T) {
		event := &github.ProjectCardEvent{
			Action: github.String("created"),
			ProjectCard: &github.ProjectCard{
				URL:     github.String("https://api.github.com/projects/columns/cards/6"),
				Note:    github.String("follow up on Sou-11"),
				Creator: &github.User{Login: github.String("jdoe")},
			},
			Repo: repo,
		}

		mentions := githubcontroller.MentionsFromEvent(event)
		gt.Array(t, mentions).Length(1)
		gt.Value(t, mentions[0].Type).Equal(model.MentionProjectCard)
		gt.Value(t, mentions[0].Title).Equal("follow up on Sou-11")
		gt.Value(t, mentions[0].Body).Equal("")
	})
}

func TestMentionsFromEvent_Excluded(t *testing.T) {
	t.Run("release events yield nothing", func(t *testing.T) {
		event := &github.ReleaseEvent{
			Action: github.String("created"),
			Release: &github.RepositoryRelease{
				Body: github.String("includes Sou-12 and Sou-13"),
			},
		}
		gt.Array(t, githubcontroller.MentionsFromEvent(event)).Length(0)
	})

	t.Run("unrecognized payloads yield nothing", func(t *testing.T) {
		gt.Array(t, githubcontroller.MentionsFromEvent(&github.WatchEvent{})).Length(0)
		gt.Array(t, githubcontroller.MentionsFromEvent(nil)).Length(0)
	})
}

func TestEventProcessor_ProcessEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards mentions to the relay", func(t *testing.T) {
		mockUC := &MockRelayUseCase{
			relayFunc: func(ctx context.Context, mentions []model.Mention) ([]model.CardComment, error) {
				return []model.CardComment{{ID: "1", Body: "comment"}}, nil
			},
		}
		processor := githubcontroller.NewEventProcessor(mockUC)

		event := &model.WebhookEvent{
			ID:     "delivery-1",
			Type:   model.EventTypeIssues,
			Action: "opened",
		}
		payload := &github.IssuesEvent{
			Action: github.String("opened"),
			Issue: &github.Issue{
				HTMLURL: github.String("https://github.com/org/repo/issues/1"),
				Title:   github.String("Sou-1"),
				User:    &github.User{Login: github.String("jdoe")},
			},
		}

		comments, err := processor.ProcessEvent(ctx, event, payload)
		gt.NoError(t, err)
		gt.Array(t, comments).Length(1)
		gt.Array(t, mockUC.relayCalls).Length(1)
	})

	t.Run("skips the relay when no mentions", func(t *testing.T) {
		mockUC := &MockRelayUseCase{}
		processor := githubcontroller.NewEventProcessor(mockUC)

		event := &model.WebhookEvent{
			ID:     "delivery-2",
			Type:   model.EventTypePullRequest,
			Action: "closed",
		}
		payload := &github.PullRequestEvent{Action: github.String("closed")}

		comments, err := processor.ProcessEvent(ctx, event, payload)
		gt.NoError(t, err)
		gt.Array(t, comments).Length(0)
		gt.Array(t, mockUC.relayCalls).Length(0)
	})
}
