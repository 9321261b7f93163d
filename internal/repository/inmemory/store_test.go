package inmemory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listTracker/internal/models"
	"listTracker/internal/repository"
	"listTracker/internal/repository/inmemory"
)

var firstPage = models.PageRequest{Page: 1, PageSize: 10}

func newList(t *testing.T, store *inmemory.Store, owner, title string) *models.TodoList {
	t.Helper()
	list := &models.TodoList{Title: title}
	require.NoError(t, store.CreateList(context.Background(), owner, list))
	return list
}

func newTask(t *testing.T, store *inmemory.Store, owner string, listID int64, title string) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:      title,
		Status:     models.StatusNotStarted,
		Owner:      owner,
		AssignedTo: owner,
		TodoListID: listID,
	}
	require.NoError(t, store.CreateTask(context.Background(), owner, task))
	return task
}

func share(t *testing.T, store *inmemory.Store, owner string, listID int64, user string, role models.Role) {
	t.Helper()
	err := store.AddShare(context.Background(), owner, models.RoleAssignment{
		TodoListID: listID,
		UserName:   user,
		Role:       role,
	})
	require.NoError(t, err)
}

func TestStore_CreateListMakesOwner(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Groceries")
	assert.NotZero(t, list.ID)

	got, err := store.GetList(ctx, "alice", list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)

	shares, err := store.ListShares(ctx, "alice", list.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, models.RoleOwner, shares[0].Role)
}

func TestStore_CreateListEmptyActor(t *testing.T) {
	store := inmemory.NewStore()
	err := store.CreateList(context.Background(), "", &models.TodoList{Title: "x"})
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

// Outsiders get ErrNotFound, never ErrForbidden: holding no role must look
// identical to the list not existing.
func TestStore_GetListHidesExistence(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Secret")

	_, err := store.GetList(ctx, "mallory", list.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.GetList(ctx, "alice", 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ListListsOnlyVisible(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	mine := newList(t, store, "alice", "Mine")
	shared := newList(t, store, "bob", "Shared")
	newList(t, store, "bob", "Hidden")
	share(t, store, "bob", shared.ID, "alice", models.RoleViewer)

	result, err := store.ListLists(ctx, "alice", firstPage)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, mine.ID, result.Items[0].ID)
	assert.Equal(t, shared.ID, result.Items[1].ID)
}

func TestStore_UpdateListRequiresOwner(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Original")
	share(t, store, "alice", list.ID, "bob", models.RoleEditor)

	_, err := store.UpdateList(ctx, "bob", list.ID, "Hacked", "")
	assert.ErrorIs(t, err, repository.ErrForbidden)

	updated, err := store.UpdateList(ctx, "alice", list.ID, "Renamed", "new text")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestStore_DeleteListCascades(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Doomed")
	task := newTask(t, store, "alice", list.ID, "Task")
	tag, err := store.AttachTag(ctx, "alice", task.ID, "chores")
	require.NoError(t, err)

	comment := &models.Comment{Text: "note", Owner: "alice", TaskID: task.ID}
	require.NoError(t, store.CreateComment(ctx, "alice", comment))

	require.NoError(t, store.DeleteList(ctx, "alice", list.ID))

	_, err = store.GetList(ctx, "alice", list.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetTask(ctx, "alice", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.UpdateComment(ctx, "alice", comment.ID, "still there?")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// The tag row itself survives; only the association is gone. A new
	// list attaching the same label reuses the old id.
	other := newList(t, store, "alice", "Next")
	otherTask := newTask(t, store, "alice", other.ID, "Task 2")
	reused, err := store.AttachTag(ctx, "alice", otherTask.ID, "chores")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, reused.ID)
}

func TestStore_CreateTaskOwnerOnly(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	share(t, store, "alice", list.ID, "bob", models.RoleEditor)

	task := &models.Task{Title: "Nope", TodoListID: list.ID, Owner: "bob", AssignedTo: "bob"}
	err := store.CreateTask(ctx, "bob", task)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	created := newTask(t, store, "alice", list.ID, "Yes")
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedDate.IsZero())
}

func TestStore_UpdateTaskMergeRules(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	due := time.Now().Add(48 * time.Hour)
	task := &models.Task{
		Title:      "Report",
		Status:     models.StatusNotStarted,
		Owner:      "alice",
		AssignedTo: "bob",
		DueDate:    &due,
		TodoListID: list.ID,
	}
	require.NoError(t, store.CreateTask(ctx, "alice", task))

	// nil due date keeps the stored one; empty assignee falls back to
	// the updating actor.
	updated, err := store.UpdateTask(ctx, "alice", task.ID, models.TaskUpdate{
		Title:  "Report v2",
		Status: models.StatusInProgress,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))
	assert.Equal(t, "alice", updated.AssignedTo)

	newDue := due.Add(24 * time.Hour)
	updated, err = store.UpdateTask(ctx, "alice", task.ID, models.TaskUpdate{
		Title:      "Report v3",
		Status:     models.StatusInProgress,
		DueDate:    &newDue,
		AssignedTo: "carol",
	})
	require.NoError(t, err)
	assert.True(t, updated.DueDate.Equal(newDue))
	assert.Equal(t, "carol", updated.AssignedTo)
}

// The assignee may flip status even while holding no role on the list, but
// may not touch anything else.
func TestStore_StatusUpdateAssigneeOnly(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	task := &models.Task{
		Title:      "Delegated",
		Status:     models.StatusNotStarted,
		Owner:      "alice",
		AssignedTo: "bob",
		TodoListID: list.ID,
	}
	require.NoError(t, store.CreateTask(ctx, "alice", task))

	updated, err := store.UpdateTaskStatus(ctx, "bob", task.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// The list owner is not the assignee: forbidden.
	_, err = store.UpdateTaskStatus(ctx, "alice", task.ID, models.StatusInProgress)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	// A stranger cannot even learn the task exists.
	_, err = store.UpdateTaskStatus(ctx, "mallory", task.ID, models.StatusInProgress)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// But the full edit stays closed to the roleless assignee.
	_, err = store.UpdateTask(ctx, "bob", task.ID, models.TaskUpdate{
		Title:  "Takeover",
		Status: models.StatusInProgress,
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_TagLifecycle(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	first := newTask(t, store, "alice", list.ID, "One")
	second := newTask(t, store, "alice", list.ID, "Two")

	tag, err := store.AttachTag(ctx, "alice", first.ID, "urgent")
	require.NoError(t, err)

	// Same label on another task reuses the tag row.
	again, err := store.AttachTag(ctx, "alice", second.ID, "urgent")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID)

	// Same label twice on one task is a conflict.
	_, err = store.AttachTag(ctx, "alice", first.ID, "urgent")
	assert.ErrorIs(t, err, repository.ErrDuplicateTag)
	assert.ErrorIs(t, err, repository.ErrConflict)

	tags, err := store.ListTags(ctx, "alice", first.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "urgent", tags[0].Label)

	require.NoError(t, store.DetachTag(ctx, "alice", first.ID, tag.ID))
	err = store.DetachTag(ctx, "alice", first.ID, tag.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Detaching from one task does not affect the other.
	tags, err = store.ListTags(ctx, "alice", second.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestStore_TagRequiresEditor(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	task := newTask(t, store, "alice", list.ID, "One")
	share(t, store, "alice", list.ID, "vera", models.RoleViewer)
	share(t, store, "alice", list.ID, "ed", models.RoleEditor)

	_, err := store.AttachTag(ctx, "vera", task.ID, "urgent")
	assert.ErrorIs(t, err, repository.ErrForbidden)

	tag, err := store.AttachTag(ctx, "ed", task.ID, "urgent")
	require.NoError(t, err)

	// Viewers still see tags.
	tags, err := store.ListTags(ctx, "vera", task.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	err = store.DetachTag(ctx, "vera", task.ID, tag.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestStore_CommentPermissions(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	task := newTask(t, store, "alice", list.ID, "One")
	share(t, store, "alice", list.ID, "ed", models.RoleEditor)
	share(t, store, "alice", list.ID, "vera", models.RoleViewer)

	comment := &models.Comment{Text: "from editor", Owner: "ed", TaskID: task.ID}
	require.NoError(t, store.CreateComment(ctx, "ed", comment))

	err := store.CreateComment(ctx, "vera", &models.Comment{Text: "nope", Owner: "vera", TaskID: task.ID})
	assert.ErrorIs(t, err, repository.ErrForbidden)

	// Editing is Owner-only, even for the comment's author.
	_, err = store.UpdateComment(ctx, "ed", comment.ID, "edited")
	assert.ErrorIs(t, err, repository.ErrForbidden)

	updated, err := store.UpdateComment(ctx, "alice", comment.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)

	err = store.DeleteComment(ctx, "ed", comment.ID)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	require.NoError(t, store.DeleteComment(ctx, "alice", comment.ID))

	result, err := store.ListComments(ctx, "vera", task.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
}

func TestStore_ShareLifecycle(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	share(t, store, "alice", list.ID, "bob", models.RoleViewer)

	// Granting again is a conflict.
	err := store.AddShare(ctx, "alice", models.RoleAssignment{
		TodoListID: list.ID, UserName: "bob", Role: models.RoleEditor,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateShare)

	// Non-owners cannot manage sharing, but any role may read it.
	err = store.AddShare(ctx, "bob", models.RoleAssignment{
		TodoListID: list.ID, UserName: "carol", Role: models.RoleViewer,
	})
	assert.ErrorIs(t, err, repository.ErrForbidden)

	shares, err := store.ListShares(ctx, "bob", list.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 2)

	require.NoError(t, store.UpdateShareRole(ctx, "alice", list.ID, "bob", models.RoleEditor))
	err = store.UpdateShareRole(ctx, "alice", list.ID, "ghost", models.RoleEditor)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.RemoveShare(ctx, "alice", list.ID, "bob"))
	_, err = store.GetList(ctx, "bob", list.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_LastOwnerProtected(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")

	err := store.UpdateShareRole(ctx, "alice", list.ID, "alice", models.RoleViewer)
	assert.ErrorIs(t, err, repository.ErrLastOwner)

	err = store.RemoveShare(ctx, "alice", list.ID, "alice")
	assert.ErrorIs(t, err, repository.ErrLastOwner)

	// With a second owner in place both operations go through.
	share(t, store, "alice", list.ID, "bob", models.RoleOwner)
	require.NoError(t, store.UpdateShareRole(ctx, "alice", list.ID, "alice", models.RoleViewer))
}

func TestStore_Pagination(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	for i := 0; i < 5; i++ {
		newTask(t, store, "alice", list.ID, "Task")
	}

	result, err := store.ListTasks(ctx, "alice", list.ID, models.PageRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalCount)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.TotalPages())

	// Past the last page: an error, not an empty page.
	_, err = store.ListTasks(ctx, "alice", list.ID, models.PageRequest{Page: 4, PageSize: 2})
	assert.ErrorIs(t, err, repository.ErrPageOutOfRange)
	assert.ErrorIs(t, err, repository.ErrInvalidPage)

	_, err = store.ListTasks(ctx, "alice", list.ID, models.PageRequest{Page: 0, PageSize: 2})
	assert.ErrorIs(t, err, repository.ErrInvalidPage)
	_, err = store.ListTasks(ctx, "alice", list.ID, models.PageRequest{Page: 1, PageSize: 0})
	assert.ErrorIs(t, err, repository.ErrInvalidPage)

	// An empty set accepts any page number.
	empty := newList(t, store, "alice", "Empty")
	result, err = store.ListTasks(ctx, "alice", empty.ID, models.PageRequest{Page: 7, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
	assert.Empty(t, result.Items)
}

func TestStore_ListAssigned(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	list := newList(t, store, "alice", "Work")
	mk := func(title string, status models.Status, due *time.Time) {
		task := &models.Task{
			Title: title, Status: status, Owner: "alice",
			AssignedTo: "bob", DueDate: due, TodoListID: list.ID,
		}
		require.NoError(t, store.CreateTask(ctx, "alice", task))
	}
	soon := time.Now().Add(24 * time.Hour)
	later := time.Now().Add(72 * time.Hour)
	mk("banana", models.StatusNotStarted, &later)
	mk("apple", models.StatusInProgress, &soon)
	mk("cherry", models.StatusCompleted, nil)

	// Default filter hides Completed.
	result, err := store.ListAssigned(ctx, "bob", repository.AssignedFilter{}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)

	// "All" includes everything.
	result, err = store.ListAssigned(ctx, "bob",
		repository.AssignedFilter{Filter: repository.StatusFilterAll}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)

	// Exact status match.
	result, err = store.ListAssigned(ctx, "bob", repository.AssignedFilter{
		Filter: repository.StatusFilterExact, Status: models.StatusCompleted,
	}, firstPage)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "cherry", result.Items[0].Title)

	// Sort by title.
	result, err = store.ListAssigned(ctx, "bob", repository.AssignedFilter{
		Filter: repository.StatusFilterAll, Sort: repository.SortTitle,
	}, firstPage)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "apple", result.Items[0].Title)
	assert.Equal(t, "cherry", result.Items[2].Title)

	// Sort by due date, missing dates last.
	result, err = store.ListAssigned(ctx, "bob", repository.AssignedFilter{
		Filter: repository.StatusFilterAll, Sort: repository.SortDueDate,
	}, firstPage)
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "apple", result.Items[0].Title)
	assert.Equal(t, "cherry", result.Items[2].Title)

	// Assignment cuts across role boundaries: bob holds no role here.
	_, err = store.GetList(ctx, "bob", list.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_SearchTasks(t *testing.T) {
	ctx := context.Background()
	store := inmemory.NewStore()

	mine := newList(t, store, "alice", "Mine")
	other := newList(t, store, "bob", "Other")

	report := newTask(t, store, "alice", mine.ID, "Quarterly report")
	newTask(t, store, "alice", mine.ID, "Groceries")
	newTask(t, store, "bob", other.ID, "Quarterly review")

	_, err := store.AttachTag(ctx, "alice", report.ID, "finance")
	require.NoError(t, err)

	// Title substring, restricted to alice's lists.
	result, err := store.SearchTasks(ctx, "alice",
		repository.SearchQuery{Title: "Quarterly"}, firstPage)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, report.ID, result.Items[0].ID)

	// Tag label.
	result, err = store.SearchTasks(ctx, "alice",
		repository.SearchQuery{Tag: "finance"}, firstPage)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// Creation date matches by calendar day.
	today := time.Now()
	result, err = store.SearchTasks(ctx, "alice",
		repository.SearchQuery{CreationDate: &today}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)

	yesterday := today.Add(-24 * time.Hour)
	result, err = store.SearchTasks(ctx, "alice",
		repository.SearchQuery{CreationDate: &yesterday}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)

	// Criteria combine with AND.
	result, err = store.SearchTasks(ctx, "alice",
		repository.SearchQuery{Title: "Groceries", Tag: "finance"}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
}

func TestStore_TaskIsDerivedFields(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	task := models.Task{Status: models.StatusInProgress, DueDate: &yesterday}
	assert.True(t, task.IsActive())
	assert.True(t, task.IsOverdue(now))

	// Completion does not clear overdue.
	task.Status = models.StatusCompleted
	assert.False(t, task.IsActive())
	assert.True(t, task.IsOverdue(now))

	task.DueDate = &tomorrow
	assert.False(t, task.IsOverdue(now))

	// Due earlier today is not overdue yet: comparison is by calendar day.
	earlierToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, now.Location())
	task.DueDate = &earlierToday
	assert.False(t, task.IsOverdue(now))

	task.DueDate = nil
	assert.False(t, task.IsOverdue(now))
}
