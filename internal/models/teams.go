package models

import "fmt"

// TeamCount is the fixed number of top-level team folders. Teams are not
// persisted; they exist only as the identifiers team-0 through team-9.
const TeamCount = 10

func TeamID(n int) string {
	return fmt.Sprintf("team-%d", n)
}

func TeamName(n int) string {
	return fmt.Sprintf("Team %d", n)
}

func IsTeamID(id string) bool {
	for i := 0; i < TeamCount; i++ {
		if id == TeamID(i) {
			return true
		}
	}
	return false
}

// RosterID is the identifier of the synthetic "Team Members" entry shown
// first inside every team folder. It has no backing row.
func RosterID(teamID string) string {
	return teamID + "-members"
}
