package store

import "errors"

var (
	// ErrBlankName is returned before any remote call when a create or
	// rename would leave a name empty after trimming.
	ErrBlankName = errors.New("name must not be blank")

	// ErrInvalidDriveURL is returned when none of the recognized Google
	// Drive URL shapes match; nothing is written.
	ErrInvalidDriveURL = errors.New("not a recognizable Google Drive link")

	// ErrUnknownTeam is returned when a folder/team identifier is not one of
	// the fixed team ids.
	ErrUnknownTeam = errors.New("unknown team folder")

	ErrFileNotFound      = errors.New("file not found")
	ErrSubfolderNotFound = errors.New("subfolder not found")
	ErrMemberNotFound    = errors.New("team member not found")
)
