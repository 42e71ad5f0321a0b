package models

import "time"

// Profile is the normalized, LLM-ready summary of a GitHub account
type Profile struct {
	User          ProfileUser     `json:"user"`
	Repos         ProfileRepos    `json:"repos"`
	Activity      ProfileActivity `json:"activity"`
	RecentCommits []ProfileCommit `json:"recentCommits,omitempty"`
}

type ProfileUser struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Bio             string `json:"bio"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	PublicRepos     int    `json:"publicRepos"`
	AccountAgeYears int    `json:"accountAgeYears"`
}

type ProfileRepos struct {
	Total      int            `json:"total"`
	TopStarred []ProfileRepo  `json:"topStarred"`
	Languages  map[string]int `json:"languages"`
}

type ProfileRepo struct {
	Name      string    `json:"name"`
	Stars     int       `json:"stars"`
	Language  *string   `json:"language"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProfileActivity struct {
	RecentEventsCount int `json:"recentEventsCount"`
	PushEvents        int `json:"pushEvents"`
	PREvents          int `json:"prEvents"`
	IssueEvents       int `json:"issueEvents"`
}

type ProfileCommit struct {
	Repo    string    `json:"repo"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// MaxTopStarred caps the number of repositories listed in Profile.Repos.TopStarred
const MaxTopStarred = 5
