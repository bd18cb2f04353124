package notify

// Tables that emit change events.
const (
	TableFiles      = "files"
	TableSubfolders = "subfolders"
	TableMembers    = "team_members"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event is one row-level change. Subscribers do not receive the row payload;
// the store treats every event as "something changed, reload".
type Event struct {
	Table string `json:"table"`
	Op    Op     `json:"op"`
}

type Notifier interface {
	Publish(table string, op Op)
	// Subscribe returns a channel of change events and a stop function. The
	// channel is closed after stop is called.
	Subscribe() (<-chan Event, func())
	Close() error
}
