package services

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names
const (
	SheetOverview        = "Overview"
	SheetTopRepositories = "Top Repositories"
	SheetLanguages       = "Languages"
	SheetRecentCommits   = "Recent Commits"
)

// ProfileExportService renders a normalized profile as an .xlsx workbook
type ProfileExportService struct{}

func NewProfileExportService() *ProfileExportService {
	return &ProfileExportService{}
}

// Workbook builds the workbook for profile and returns its bytes
func (s *ProfileExportService) Workbook(profile *models.Profile) (*bytes.Buffer, error) {
	if profile == nil {
		return nil, &models.ValidationError{Field: "profile", Message: "profile is required"}
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, fmt.Errorf("failed to rename default sheet: %w", err)
	}
	for _, name := range []string{SheetTopRepositories, SheetLanguages, SheetRecentCommits} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	sheets := map[string][][]interface{}{
		SheetOverview:        overviewRows(profile),
		SheetTopRepositories: topRepositoryRows(profile),
		SheetLanguages:       languageRows(profile),
		SheetRecentCommits:   commitRows(profile),
	}
	for sheet, rows := range sheets {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return nil, fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func overviewRows(profile *models.Profile) [][]interface{} {
	user := profile.User
	activity := profile.Activity
	return [][]interface{}{
		{"Field", "Value"},
		{"Username", user.Username},
		{"Name", user.Name},
		{"Bio", user.Bio},
		{"Followers", user.Followers},
		{"Following", user.Following},
		{"Public Repos", user.PublicRepos},
		{"Account Age (years)", user.AccountAgeYears},
		{"Total Repos", profile.Repos.Total},
		{"Recent Events", activity.RecentEventsCount},
		{"Push Events", activity.PushEvents},
		{"Pull Request Events", activity.PREvents},
		{"Issue Events", activity.IssueEvents},
	}
}

func topRepositoryRows(profile *models.Profile) [][]interface{} {
	rows := [][]interface{}{{"Name", "Stars", "Language", "Updated At"}}
	for _, repo := range profile.Repos.TopStarred {
		language := ""
		if repo.Language != nil {
			language = *repo.Language
		}
		rows = append(rows, []interface{}{repo.Name, repo.Stars, language, repo.UpdatedAt.UTC().Format(time.RFC3339)})
	}
	return rows
}

// languageRows lists languages by repository count, then name
func languageRows(profile *models.Profile) [][]interface{} {
	names := make([]string, 0, len(profile.Repos.Languages))
	for name := range profile.Repos.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := profile.Repos.Languages[names[i]], profile.Repos.Languages[names[j]]
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})

	rows := [][]interface{}{{"Language", "Repositories"}}
	for _, name := range names {
		rows = append(rows, []interface{}{name, profile.Repos.Languages[name]})
	}
	return rows
}

func commitRows(profile *models.Profile) [][]interface{} {
	rows := [][]interface{}{{"Repository", "Message", "Date"}}
	for _, commit := range profile.RecentCommits {
		rows = append(rows, []interface{}{commit.Repo, commit.Message, commit.Date.UTC().Format(time.RFC3339)})
	}
	return rows
}
