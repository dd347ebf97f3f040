package domain

import "time"

// Wire formats for every date- and time-bearing field. The server speaks
// exactly these; they are not configurable.
const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "03:04 PM"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// Due-date modifiers that may prefix a due date string.
const (
	DueModifierOnly     = "=" // task can only be completed on the due date
	DueModifierEarliest = "<" // the earliest the task can be completed
	DueModifierLatest   = ">" // the due date is a latest bound
	DueModifierOptional = "?" // the due date is optional
)

// Task is a read-only representation of a task. The folder, context and goal
// references are resolved entities (never nil; sentinels stand in for id 0).
// Zero time values mean the corresponding date is absent.
type Task struct {
	ID    int64
	Title string
	Tag   string

	Folder  *Folder
	Context *Context
	Goal    *Goal

	// ParentID is 0 for top-level tasks. Parent is resolved with one extra
	// fetch during hydration and is nil when ParentID is 0.
	ParentID int64
	Parent   *Task
	Children int

	AddedAt     time.Time
	ModifiedAt  time.Time
	CompletedAt time.Time
	StartDate   time.Time

	DueDate     time.Time
	DueModifier string

	Repeat   Repeat
	Priority Priority
	Status   Status
	Star     bool

	// Length and Timer are minute counts; 0 means unset.
	Length int
	Timer  int

	Note string
}

// DeletedTask is one entry of the deleted-task log.
type DeletedTask struct {
	ID        int64
	Title     string
	DeletedAt time.Time
}

// Completed reports whether the task has a completion date.
func (t *Task) Completed() bool {
	return !t.CompletedAt.IsZero()
}

// IsParent reports whether the task has subtasks.
func (t *Task) IsParent() bool {
	return t.Children > 0
}
