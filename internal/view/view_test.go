package view

import (
	"testing"

	"github.com/google/uuid"
	"github.com/teamspace/backend/internal/models"
)

func testSubfolder(name, teamID string) models.Subfolder {
	return models.Subfolder{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		Name:           name,
		ParentFolderID: teamID,
	}
}

func TestComposeTeams(t *testing.T) {
	subfolders := []models.Subfolder{
		testSubfolder("Essays", "team-2"),
		testSubfolder("Labs", "team-2"),
		testSubfolder("Team Members", "team-5"),
	}

	teams := ComposeTeams(subfolders)
	if len(teams) != models.TeamCount {
		t.Fatalf("expected %d teams, got %d", models.TeamCount, len(teams))
	}

	for i, team := range teams {
		if team.ID != models.TeamID(i) || team.Name != models.TeamName(i) {
			t.Errorf("team %d has id %q name %q", i, team.ID, team.Name)
		}
		rosters := 0
		for _, entry := range team.Entries {
			if entry.Kind == EntryRoster {
				rosters++
			}
		}
		if rosters != 1 {
			t.Errorf("team %s has %d roster entries", team.ID, rosters)
		}
		first := team.Entries[0]
		if first.Kind != EntryRoster || first.ID != models.RosterID(team.ID) || first.Name != "Team Members" {
			t.Errorf("team %s first entry is %+v", team.ID, first)
		}
	}

	team2 := teams[2]
	if len(team2.Entries) != 3 {
		t.Fatalf("expected roster plus two subfolders, got %d entries", len(team2.Entries))
	}
	if team2.Entries[1].Name != "Essays" || team2.Entries[2].Name != "Labs" {
		t.Errorf("subfolders out of snapshot order: %q, %q", team2.Entries[1].Name, team2.Entries[2].Name)
	}
	if team2.Entries[1].Subfolder == nil {
		t.Errorf("subfolder entry missing backing row")
	}
}

func TestComposeTeamsUserNamedRosterStaysDistinct(t *testing.T) {
	subfolders := []models.Subfolder{testSubfolder("Team Members", "team-5")}

	team, ok := ComposeTeam("team-5", subfolders)
	if !ok {
		t.Fatalf("expected team-5 to resolve")
	}
	if len(team.Entries) != 2 {
		t.Fatalf("expected roster plus the real subfolder, got %d entries", len(team.Entries))
	}
	if team.Entries[0].Kind != EntryRoster || team.Entries[1].Kind != EntrySubfolder {
		t.Errorf("expected kinds to distinguish the synthetic entry, got %q, %q",
			team.Entries[0].Kind, team.Entries[1].Kind)
	}
}

func TestComposeTeamUnknownID(t *testing.T) {
	if _, ok := ComposeTeam("team-42", nil); ok {
		t.Errorf("expected team-42 to be unknown")
	}
	if _, ok := ComposeTeam("", nil); ok {
		t.Errorf("expected empty id to be unknown")
	}
}

func TestBreadcrumbs(t *testing.T) {
	docs := testSubfolder("Docs", "team-1")
	subfolders := []models.Subfolder{docs}

	t.Run("main view", func(t *testing.T) {
		crumbs, err := Breadcrumbs(Navigation{View: NavMain}, subfolders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(crumbs) != 1 || crumbs[0].Name != "My Files" || crumbs[0].ID != "root" {
			t.Errorf("got %+v", crumbs)
		}
	})

	t.Run("folder view", func(t *testing.T) {
		crumbs, err := Breadcrumbs(Navigation{View: NavFolder, FolderID: "team-1"}, subfolders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(crumbs) != 2 || crumbs[1].Name != "Team 1" {
			t.Errorf("got %+v", crumbs)
		}
	})

	t.Run("subfolder view", func(t *testing.T) {
		nav := Navigation{View: NavSubfolder, FolderID: "team-1", SubfolderID: docs.ID.String()}
		crumbs, err := Breadcrumbs(nav, subfolders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(crumbs) != 3 || crumbs[2].Name != "Docs" {
			t.Errorf("got %+v", crumbs)
		}
	})

	t.Run("roster view", func(t *testing.T) {
		nav := Navigation{View: NavSubfolder, FolderID: "team-1", SubfolderID: models.RosterID("team-1")}
		crumbs, err := Breadcrumbs(nav, subfolders)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(crumbs) != 3 || crumbs[2].Name != "Team Members" {
			t.Errorf("got %+v", crumbs)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		if _, err := Breadcrumbs(Navigation{View: NavFolder, FolderID: "team-99"}, subfolders); err == nil {
			t.Errorf("expected error for unknown team")
		}
	})

	t.Run("unknown subfolder", func(t *testing.T) {
		nav := Navigation{View: NavSubfolder, FolderID: "team-1", SubfolderID: uuid.NewString()}
		if _, err := Breadcrumbs(nav, subfolders); err == nil {
			t.Errorf("expected error for unknown subfolder")
		}
	})
}
