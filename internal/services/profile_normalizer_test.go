package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referenceNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func stringPtr(s string) *string {
	return &s
}

func testUser() models.UserRecord {
	return models.UserRecord{
		Login:            "octocat",
		Name:             "The Octocat",
		Bio:              "Ships things",
		Followers:        10,
		Following:        3,
		PublicRepos:      7,
		AccountCreatedAt: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeProfileEmptyAccount(t *testing.T) {
	profile, err := NormalizeProfile(models.RawGitHubBundle{User: testUser()}, referenceNow)
	require.NoError(t, err)

	assert.Equal(t, 0, profile.Repos.Total)
	assert.Empty(t, profile.Repos.TopStarred)
	assert.NotNil(t, profile.Repos.Languages)
	assert.Empty(t, profile.Repos.Languages)
	assert.Equal(t, models.ProfileActivity{}, profile.Activity)
	assert.Nil(t, profile.RecentCommits)

	encoded, err := json.Marshal(profile.Repos)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"topStarred":[],"languages":{}}`, string(encoded))
}

func TestNormalizeProfileTopStarred(t *testing.T) {
	stars := []int{1, 9, 3, 9, 0, 5, 2}
	repos := make([]models.RepoRecord, 0, len(stars))
	for i, count := range stars {
		repos = append(repos, models.RepoRecord{Name: fmt.Sprintf("repo-%d", i), StargazerCount: count})
	}

	profile, err := NormalizeProfile(models.RawGitHubBundle{User: testUser(), Repos: repos}, referenceNow)
	require.NoError(t, err)

	require.Len(t, profile.Repos.TopStarred, 5)
	gotStars := make([]int, 0, 5)
	gotNames := make([]string, 0, 5)
	for _, repo := range profile.Repos.TopStarred {
		gotStars = append(gotStars, repo.Stars)
		gotNames = append(gotNames, repo.Name)
	}
	assert.Equal(t, []int{9, 9, 5, 3, 2}, gotStars)
	assert.Equal(t, "repo-1", gotNames[0])
	assert.Equal(t, "repo-3", gotNames[1])
	assert.Equal(t, 7, profile.Repos.Total)

	// input must not be reordered
	assert.Equal(t, "repo-0", repos[0].Name)
}

func TestNormalizeProfileInvariants(t *testing.T) {
	for size := 0; size < 12; size++ {
		repos := make([]models.RepoRecord, 0, size)
		for i := 0; i < size; i++ {
			repos = append(repos, models.RepoRecord{Name: fmt.Sprintf("r%d", i), StargazerCount: (i * 7) % 5})
		}

		profile, err := NormalizeProfile(models.RawGitHubBundle{User: testUser(), Repos: repos}, referenceNow)
		require.NoError(t, err)

		assert.LessOrEqual(t, len(profile.Repos.TopStarred), models.MaxTopStarred)
		assert.True(t, sort.SliceIsSorted(profile.Repos.TopStarred, func(i, j int) bool {
			return profile.Repos.TopStarred[i].Stars > profile.Repos.TopStarred[j].Stars
		}), "size %d", size)
	}
}

func TestNormalizeProfileIsDeterministic(t *testing.T) {
	bundle := models.RawGitHubBundle{
		User: testUser(),
		Repos: []models.RepoRecord{
			{Name: "a", StargazerCount: 2, PrimaryLanguage: stringPtr("Go")},
			{Name: "b", StargazerCount: 2, PrimaryLanguage: stringPtr("Rust")},
			{Name: "c", StargazerCount: 4, PrimaryLanguage: stringPtr("Go")},
		},
		Events: []models.EventRecord{{Type: models.EventTypePush}, {Type: models.EventTypeIssues}},
	}

	first, err := NormalizeProfile(bundle, referenceNow)
	require.NoError(t, err)
	second, err := NormalizeProfile(bundle, referenceNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestNormalizeProfileLanguagesAndActivity(t *testing.T) {
	bundle := models.RawGitHubBundle{
		User: testUser(),
		Repos: []models.RepoRecord{
			{Name: "a", PrimaryLanguage: stringPtr("Go")},
			{Name: "b", PrimaryLanguage: nil},
			{Name: "c", PrimaryLanguage: stringPtr("Go")},
			{Name: "d", PrimaryLanguage: stringPtr("TypeScript")},
			{Name: "e", PrimaryLanguage: stringPtr("")},
		},
		Events: []models.EventRecord{
			{Type: "PushEvent"},
			{Type: "PushEvent"},
			{Type: "PullRequestEvent"},
			{Type: "IssuesEvent"},
			{Type: "IssueCommentEvent"},
			{Type: "WatchEvent"},
			{Type: "pushevent"},
		},
	}

	profile, err := NormalizeProfile(bundle, referenceNow)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Go": 2, "TypeScript": 1}, profile.Repos.Languages)
	assert.Equal(t, models.ProfileActivity{
		RecentEventsCount: 7,
		PushEvents:        2,
		PREvents:          1,
		IssueEvents:       1,
	}, profile.Activity)
}

func TestNormalizeProfileRecentCommits(t *testing.T) {
	authored := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	bundle := models.RawGitHubBundle{
		User: testUser(),
		RecentCommits: []models.CommitRecord{
			{RepoName: "api", Message: "fix stuff", AuthoredAt: authored},
		},
	}

	profile, err := NormalizeProfile(bundle, referenceNow)
	require.NoError(t, err)
	assert.Equal(t, []models.ProfileCommit{{Repo: "api", Message: "fix stuff", Date: authored}}, profile.RecentCommits)

	bundle.RecentCommits = []models.CommitRecord{}
	profile, err = NormalizeProfile(bundle, referenceNow)
	require.NoError(t, err)
	assert.NotNil(t, profile.RecentCommits)
	assert.Empty(t, profile.RecentCommits)
}

func TestAccountAgeYears(t *testing.T) {
	testCases := []struct {
		name      string
		createdAt time.Time
		expected  int
	}{
		{"just created", referenceNow.Add(-time.Hour), 0},
		{"in the future", referenceNow.Add(48 * time.Hour), 0},
		{"364 days", referenceNow.Add(-364 * 24 * time.Hour), 0},
		{"exactly one year", referenceNow.Add(-365 * 24 * time.Hour), 1},
		{"five and a half years", referenceNow.Add(-(5*365 + 180) * 24 * time.Hour), 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, accountAgeYears(tc.createdAt, referenceNow))
		})
	}
}

func TestNormalizeProfileValidation(t *testing.T) {
	testCases := []struct {
		name   string
		bundle models.RawGitHubBundle
		field  string
	}{
		{"missing login", models.RawGitHubBundle{User: models.UserRecord{AccountCreatedAt: referenceNow}}, "login"},
		{"missing created at", models.RawGitHubBundle{User: models.UserRecord{Login: "octocat"}}, "created_at"},
		{"unnamed repo", models.RawGitHubBundle{User: testUser(), Repos: []models.RepoRecord{{Name: "ok"}, {}}}, "repos[1].name"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profile, err := NormalizeProfile(tc.bundle, referenceNow)
			assert.Nil(t, profile)

			var validationErr *models.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestMostRecentlyUpdated(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	repos := []models.RepoRecord{
		{Name: "old", UpdatedAt: day(1)},
		{Name: "tie-first", UpdatedAt: day(5)},
		{Name: "newest", UpdatedAt: day(9)},
		{Name: "tie-second", UpdatedAt: day(5)},
		{Name: "middle", UpdatedAt: day(3)},
	}

	recent := MostRecentlyUpdated(repos, 3)
	require.Len(t, recent, 3)
	assert.Equal(t, "newest", recent[0].Name)
	assert.Equal(t, "tie-first", recent[1].Name)
	assert.Equal(t, "tie-second", recent[2].Name)

	assert.Len(t, MostRecentlyUpdated(repos[:2], 3), 2)
	assert.Empty(t, MostRecentlyUpdated(nil, 3))
}
