package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
)

const yearDuration = 365 * 24 * time.Hour

// NormalizeProfile reduces a raw GitHub bundle to the compact profile the model consumes.
// It is a pure function of its inputs; now is the reference time for the account age.
func NormalizeProfile(bundle models.RawGitHubBundle, now time.Time) (*models.Profile, error) {
	if err := validateBundle(bundle); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		User: models.ProfileUser{
			Username:        bundle.User.Login,
			Name:            bundle.User.Name,
			Bio:             bundle.User.Bio,
			Followers:       bundle.User.Followers,
			Following:       bundle.User.Following,
			PublicRepos:     bundle.User.PublicRepos,
			AccountAgeYears: accountAgeYears(bundle.User.AccountCreatedAt, now),
		},
		Repos: models.ProfileRepos{
			Total:      len(bundle.Repos),
			TopStarred: topStarred(bundle.Repos),
			Languages:  languageTally(bundle.Repos),
		},
		Activity: activitySummary(bundle.Events),
	}

	if bundle.RecentCommits != nil {
		profile.RecentCommits = make([]models.ProfileCommit, 0, len(bundle.RecentCommits))
		for _, commit := range bundle.RecentCommits {
			profile.RecentCommits = append(profile.RecentCommits, models.ProfileCommit{
				Repo:    commit.RepoName,
				Message: commit.Message,
				Date:    commit.AuthoredAt,
			})
		}
	}

	return profile, nil
}

func validateBundle(bundle models.RawGitHubBundle) error {
	if bundle.User.Login == "" {
		return &models.ValidationError{Field: "login", Message: "GitHub user login is required"}
	}
	if bundle.User.AccountCreatedAt.IsZero() {
		return &models.ValidationError{Field: "created_at", Message: "GitHub account creation date is required"}
	}
	for i, repo := range bundle.Repos {
		if repo.Name == "" {
			return &models.ValidationError{
				Field:   fmt.Sprintf("repos[%d].name", i),
				Message: fmt.Sprintf("repository %d has no name", i),
			}
		}
	}
	return nil
}

// accountAgeYears is the floor of whole 365-day years since createdAt, never negative
func accountAgeYears(createdAt, now time.Time) int {
	elapsed := now.Sub(createdAt)
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / yearDuration)
}

// topStarred keeps the MaxTopStarred most starred repositories; ties keep input order
func topStarred(repos []models.RepoRecord) []models.ProfileRepo {
	sorted := make([]models.RepoRecord, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StargazerCount > sorted[j].StargazerCount
	})

	if len(sorted) > models.MaxTopStarred {
		sorted = sorted[:models.MaxTopStarred]
	}

	top := make([]models.ProfileRepo, 0, len(sorted))
	for _, repo := range sorted {
		top = append(top, models.ProfileRepo{
			Name:      repo.Name,
			Stars:     repo.StargazerCount,
			Language:  repo.PrimaryLanguage,
			UpdatedAt: repo.UpdatedAt,
		})
	}
	return top
}

// languageTally counts repositories per primary language; repos without one are skipped
func languageTally(repos []models.RepoRecord) map[string]int {
	languages := make(map[string]int)
	for _, repo := range repos {
		if repo.PrimaryLanguage == nil || *repo.PrimaryLanguage == "" {
			continue
		}
		languages[*repo.PrimaryLanguage]++
	}
	return languages
}

func activitySummary(events []models.EventRecord) models.ProfileActivity {
	activity := models.ProfileActivity{RecentEventsCount: len(events)}
	for _, event := range events {
		switch event.Type {
		case models.EventTypePush:
			activity.PushEvents++
		case models.EventTypePullRequest:
			activity.PREvents++
		case models.EventTypeIssues:
			activity.IssueEvents++
		}
	}
	return activity
}

// MostRecentlyUpdated returns the first n repositories ordered by UpdatedAt descending.
// Ties keep input order.
func MostRecentlyUpdated(repos []models.RepoRecord, n int) []models.RepoRecord {
	sorted := make([]models.RepoRecord, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
