// Package view derives the rendered folder tree from the cached snapshots.
// It performs no I/O: composition is a pure function of the fixed team
// identifiers and the current subfolder snapshot.
package view

import (
	"fmt"

	"github.com/teamspace/backend/internal/models"
)

type EntryKind string

const (
	// EntryRoster is the synthetic "Team Members" entry. It has no backing
	// row and routes to the member roster instead of files. Modeling it as a
	// tagged variant keeps it distinct from a real subfolder that a user
	// happened to name "Team Members".
	EntryRoster    EntryKind = "roster"
	EntrySubfolder EntryKind = "subfolder"
)

type Entry struct {
	Kind      EntryKind         `json:"kind"`
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Subfolder *models.Subfolder `json:"subfolder,omitempty"`
}

type TeamFolder struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// ComposeTeams builds the ten team folders. Each entry list starts with the
// roster entry, followed by the team's real subfolders in snapshot order.
func ComposeTeams(subfolders []models.Subfolder) []TeamFolder {
	teams := make([]TeamFolder, 0, models.TeamCount)
	for i := 0; i < models.TeamCount; i++ {
		teams = append(teams, composeTeam(i, subfolders))
	}
	return teams
}

// ComposeTeam resolves a single team folder; ok is false for an unknown id.
func ComposeTeam(teamID string, subfolders []models.Subfolder) (TeamFolder, bool) {
	for i := 0; i < models.TeamCount; i++ {
		if models.TeamID(i) == teamID {
			return composeTeam(i, subfolders), true
		}
	}
	return TeamFolder{}, false
}

func composeTeam(n int, subfolders []models.Subfolder) TeamFolder {
	teamID := models.TeamID(n)
	entries := []Entry{{
		Kind: EntryRoster,
		ID:   models.RosterID(teamID),
		Name: "Team Members",
	}}
	for i := range subfolders {
		if subfolders[i].ParentFolderID == teamID {
			entries = append(entries, Entry{
				Kind:      EntrySubfolder,
				ID:        subfolders[i].ID.String(),
				Name:      subfolders[i].Name,
				Subfolder: &subfolders[i],
			})
		}
	}
	return TeamFolder{ID: teamID, Name: models.TeamName(n), Entries: entries}
}

type NavView string

const (
	NavMain      NavView = "main"
	NavFolder    NavView = "folder"
	NavSubfolder NavView = "subfolder"
)

type Navigation struct {
	View        NavView
	FolderID    string
	SubfolderID string
}

type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Breadcrumbs resolves the trail for the current navigation state, only as
// deep as the view itself: My Files, then the team folder, then the
// subfolder (or the roster entry).
func Breadcrumbs(nav Navigation, subfolders []models.Subfolder) ([]Crumb, error) {
	crumbs := []Crumb{{ID: "root", Name: "My Files"}}
	if nav.View == NavMain {
		return crumbs, nil
	}

	team, ok := ComposeTeam(nav.FolderID, subfolders)
	if !ok {
		return nil, fmt.Errorf("unknown team folder %q", nav.FolderID)
	}
	crumbs = append(crumbs, Crumb{ID: team.ID, Name: team.Name})
	if nav.View == NavFolder {
		return crumbs, nil
	}

	for _, entry := range team.Entries {
		if entry.ID == nav.SubfolderID {
			crumbs = append(crumbs, Crumb{ID: entry.ID, Name: entry.Name})
			return crumbs, nil
		}
	}
	return nil, fmt.Errorf("unknown subfolder %q in %q", nav.SubfolderID, nav.FolderID)
}
