package models

// NoticePriority defines how prominently a notice is shown.
type NoticePriority string

const (
	NoticePriorityUrgent    NoticePriority = "urgent"
	NoticePriorityImportant NoticePriority = "important"
	NoticePriorityNormal    NoticePriority = "normal"
)

// NoticeCategory groups notices on the board.
type NoticeCategory string

const (
	NoticeCategoryAcademic       NoticeCategory = "academic"
	NoticeCategoryAdministrative NoticeCategory = "administrative"
	NoticeCategoryEvents         NoticeCategory = "events"
)

// Notice is a read-only announcement shown to faculty.
type Notice struct {
	ID       string         `db:"id" json:"id"`
	Title    string         `db:"title" json:"title"`
	Content  string         `db:"content" json:"content"`
	Priority NoticePriority `db:"priority" json:"priority"`
	Category NoticeCategory `db:"category" json:"category"`
	Date     string         `db:"date" json:"date"`
}

// Highlighted reports whether the notice counts towards the "new notices" tile.
func (n Notice) Highlighted() bool {
	return n.Priority == NoticePriorityUrgent || n.Priority == NoticePriorityImportant
}

// NoticeFilter scopes the notices board.
type NoticeFilter struct {
	Search   string
	Category string
	Priority string
	Page     int
	PageSize int
}
