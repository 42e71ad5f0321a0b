package services

import (
	"context"
	"fmt"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"golang.org/x/sync/errgroup"
)

// recentRepoCount is how many recently updated repositories contribute commits
const recentRepoCount = 3

// ProfileCollector runs the fetch and normalize phases of a pipeline run
type ProfileCollector struct {
	github GitHubFetcher
	now    func() time.Time
}

// NewProfileCollector creates a collector; a nil clock means time.Now
func NewProfileCollector(github GitHubFetcher, now func() time.Time) *ProfileCollector {
	if now == nil {
		now = time.Now
	}
	return &ProfileCollector{github: github, now: now}
}

// Collect fetches user, repos and events (and, when withCommits is set, recent commits)
// and normalizes them. Any fetch failure aborts the whole collection as *models.UpstreamFailure.
func (c *ProfileCollector) Collect(ctx context.Context, identity *models.Identity, withCommits bool) (*models.Profile, error) {
	bundle, err := c.fetch(ctx, identity, withCommits)
	if err != nil {
		return nil, &models.UpstreamFailure{Err: err}
	}

	profile, err := NormalizeProfile(*bundle, c.now())
	if err != nil {
		return nil, fmt.Errorf("failed to normalize GitHub data: %w", err)
	}
	return profile, nil
}

func (c *ProfileCollector) fetch(ctx context.Context, identity *models.Identity, withCommits bool) (*models.RawGitHubBundle, error) {
	user, err := c.github.FetchUser(ctx, identity.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	repos, err := c.github.FetchRepos(ctx, identity.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	events, err := c.github.FetchEvents(ctx, identity.AccessToken, identity.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	bundle := &models.RawGitHubBundle{User: *user, Repos: repos, Events: events}

	if withCommits {
		commits, err := c.fetchRecentCommits(ctx, identity.AccessToken, user.Login, repos)
		if err != nil {
			return nil, err
		}
		bundle.RecentCommits = commits
	}

	return bundle, nil
}

// fetchRecentCommits fans out one commit listing per recently updated repository.
// The first failure cancels the rest; results keep the repository order.
func (c *ProfileCollector) fetchRecentCommits(ctx context.Context, token, login string, repos []models.RepoRecord) ([]models.CommitRecord, error) {
	recent := MostRecentlyUpdated(repos, recentRepoCount)
	perRepo := make([][]models.CommitRecord, len(recent))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recentRepoCount)
	for i, repo := range recent {
		owner := repo.Owner
		if owner == "" {
			owner = login
		}
		g.Go(func() error {
			commits, err := c.github.FetchCommits(gctx, token, owner, repo.Name)
			if err != nil {
				return fmt.Errorf("failed to fetch commits of %s/%s: %w", owner, repo.Name, err)
			}
			perRepo[i] = commits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	commits := make([]models.CommitRecord, 0, len(recent)*commitsPerRepo)
	for _, batch := range perRepo {
		commits = append(commits, batch...)
	}
	return commits, nil
}
