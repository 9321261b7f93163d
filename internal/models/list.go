package models

// Field length limits shared by validation on every write path.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 150
	MaxCommentLen     = 200
	MaxTagLabelLen    = 40
)

type TodoList struct {
	ID          int64
	Title       string
	Description string
}
