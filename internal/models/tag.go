package models

// Tag labels are globally unique: attaching a label that already exists
// anywhere reuses the existing row. Tags relate many-to-many with tasks.
type Tag struct {
	ID    int64
	Label string
}

type Comment struct {
	ID     int64
	Text   string
	Owner  string
	TaskID int64
}
