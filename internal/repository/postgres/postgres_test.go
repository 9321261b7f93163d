package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"listTracker/internal/models"
	"listTracker/internal/repository"
	"listTracker/internal/repository/postgres"
)

// PostgresTestSuite runs the repository against a real database in a
// container. Migrations come from the embedded files, the same path
// production takes.
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	connString string
	ctx        context.Context
}

func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	// The container may accept TCP before postgres is ready; retry the
	// initial connect briefly.
	for i := 0; i < 10; i++ {
		s.storage, err = postgres.New(s.ctx, s.connString)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(s.T(), err)

	require.NoError(s.T(), s.storage.Migrate())
}

func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	_, err = conn.Exec(s.ctx,
		"TRUNCATE todo_lists, todo_list_users, tasks, tags, task_tags, comments RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) newList(owner, title string) *models.TodoList {
	list := &models.TodoList{Title: title}
	require.NoError(s.T(), s.storage.CreateList(s.ctx, owner, list))
	return list
}

func (s *PostgresTestSuite) newTask(owner string, listID int64, title string) *models.Task {
	task := &models.Task{
		Title:      title,
		Status:     models.StatusNotStarted,
		Owner:      owner,
		AssignedTo: owner,
		TodoListID: listID,
	}
	require.NoError(s.T(), s.storage.CreateTask(s.ctx, owner, task))
	return task
}

func (s *PostgresTestSuite) share(owner string, listID int64, user string, role models.Role) {
	err := s.storage.AddShare(s.ctx, owner, models.RoleAssignment{
		TodoListID: listID, UserName: user, Role: role,
	})
	require.NoError(s.T(), err)
}

func (s *PostgresTestSuite) TestHealthCheck() {
	assert.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

func (s *PostgresTestSuite) TestListLifecycle() {
	list := s.newList("alice", "Groceries")
	assert.NotZero(s.T(), list.ID)

	got, err := s.storage.GetList(s.ctx, "alice", list.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Groceries", got.Title)

	// Creating a list writes the Owner role row in the same transaction.
	shares, err := s.storage.ListShares(s.ctx, "alice", list.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), shares, 1)
	assert.Equal(s.T(), models.RoleOwner, shares[0].Role)

	_, err = s.storage.GetList(s.ctx, "mallory", list.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)

	updated, err := s.storage.UpdateList(s.ctx, "alice", list.ID, "Food", "weekly")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Food", updated.Title)

	require.NoError(s.T(), s.storage.DeleteList(s.ctx, "alice", list.ID))
	_, err = s.storage.GetList(s.ctx, "alice", list.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestTaskAuthorization() {
	list := s.newList("alice", "Work")
	s.share("alice", list.ID, "ed", models.RoleEditor)

	// Task creation is Owner-only.
	err := s.storage.CreateTask(s.ctx, "ed", &models.Task{
		Title: "Nope", Status: models.StatusNotStarted,
		Owner: "ed", AssignedTo: "ed", TodoListID: list.ID,
	})
	assert.ErrorIs(s.T(), err, repository.ErrForbidden)

	task := s.newTask("alice", list.ID, "Report")
	assert.False(s.T(), task.CreatedDate.IsZero())

	// Editors read but do not edit.
	got, err := s.storage.GetTask(s.ctx, "ed", task.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Report", got.Title)

	_, err = s.storage.UpdateTask(s.ctx, "ed", task.ID, models.TaskUpdate{
		Title: "Hijacked", Status: models.StatusInProgress,
	})
	assert.ErrorIs(s.T(), err, repository.ErrForbidden)
}

func (s *PostgresTestSuite) TestTaskMergeRules() {
	list := s.newList("alice", "Work")
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	task := &models.Task{
		Title: "Report", Status: models.StatusNotStarted,
		Owner: "alice", AssignedTo: "bob", DueDate: &due, TodoListID: list.ID,
	}
	require.NoError(s.T(), s.storage.CreateTask(s.ctx, "alice", task))

	updated, err := s.storage.UpdateTask(s.ctx, "alice", task.ID, models.TaskUpdate{
		Title: "Report v2", Status: models.StatusInProgress,
	})
	require.NoError(s.T(), err)
	require.NotNil(s.T(), updated.DueDate)
	assert.True(s.T(), updated.DueDate.Equal(due))
	assert.Equal(s.T(), "alice", updated.AssignedTo)
}

func (s *PostgresTestSuite) TestStatusUpdateAssignee() {
	list := s.newList("alice", "Work")
	task := &models.Task{
		Title: "Delegated", Status: models.StatusNotStarted,
		Owner: "alice", AssignedTo: "bob", TodoListID: list.ID,
	}
	require.NoError(s.T(), s.storage.CreateTask(s.ctx, "alice", task))

	// bob holds no role at all, but is the assignee.
	updated, err := s.storage.UpdateTaskStatus(s.ctx, "bob", task.ID, models.StatusCompleted)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), models.StatusCompleted, updated.Status)

	_, err = s.storage.UpdateTaskStatus(s.ctx, "alice", task.ID, models.StatusInProgress)
	assert.ErrorIs(s.T(), err, repository.ErrForbidden)
}

func (s *PostgresTestSuite) TestTagDeduplication() {
	list := s.newList("alice", "Work")
	first := s.newTask("alice", list.ID, "One")
	second := s.newTask("alice", list.ID, "Two")

	tag, err := s.storage.AttachTag(s.ctx, "alice", first.ID, "urgent")
	require.NoError(s.T(), err)

	again, err := s.storage.AttachTag(s.ctx, "alice", second.ID, "urgent")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), tag.ID, again.ID)

	_, err = s.storage.AttachTag(s.ctx, "alice", first.ID, "urgent")
	assert.ErrorIs(s.T(), err, repository.ErrDuplicateTag)

	require.NoError(s.T(), s.storage.DetachTag(s.ctx, "alice", first.ID, tag.ID))
	tags, err := s.storage.ListTags(s.ctx, "alice", second.ID)
	require.NoError(s.T(), err)
	assert.Len(s.T(), tags, 1)
}

func (s *PostgresTestSuite) TestCascadeDelete() {
	list := s.newList("alice", "Doomed")
	task := s.newTask("alice", list.ID, "Task")

	_, err := s.storage.AttachTag(s.ctx, "alice", task.ID, "chores")
	require.NoError(s.T(), err)
	comment := &models.Comment{Text: "note", Owner: "alice", TaskID: task.ID}
	require.NoError(s.T(), s.storage.CreateComment(s.ctx, "alice", comment))

	require.NoError(s.T(), s.storage.DeleteList(s.ctx, "alice", list.ID))

	_, err = s.storage.GetTask(s.ctx, "alice", task.ID)
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
	_, err = s.storage.UpdateComment(s.ctx, "alice", comment.ID, "gone")
	assert.ErrorIs(s.T(), err, repository.ErrNotFound)
}

func (s *PostgresTestSuite) TestLastOwnerInvariant() {
	list := s.newList("alice", "Work")

	err := s.storage.RemoveShare(s.ctx, "alice", list.ID, "alice")
	assert.ErrorIs(s.T(), err, repository.ErrLastOwner)

	err = s.storage.UpdateShareRole(s.ctx, "alice", list.ID, "alice", models.RoleViewer)
	assert.ErrorIs(s.T(), err, repository.ErrLastOwner)

	s.share("alice", list.ID, "bob", models.RoleOwner)
	require.NoError(s.T(), s.storage.RemoveShare(s.ctx, "alice", list.ID, "alice"))
}

func (s *PostgresTestSuite) TestPagination() {
	list := s.newList("alice", "Work")
	for i := 0; i < 5; i++ {
		s.newTask("alice", list.ID, fmt.Sprintf("Task %d", i))
	}

	result, err := s.storage.ListTasks(s.ctx, "alice", list.ID, models.PageRequest{Page: 2, PageSize: 2})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 5, result.TotalCount)
	assert.Len(s.T(), result.Items, 2)

	_, err = s.storage.ListTasks(s.ctx, "alice", list.ID, models.PageRequest{Page: 4, PageSize: 2})
	assert.ErrorIs(s.T(), err, repository.ErrPageOutOfRange)
}

func (s *PostgresTestSuite) TestSearchAndAssigned() {
	mine := s.newList("alice", "Mine")
	other := s.newList("bob", "Other")

	report := s.newTask("alice", mine.ID, "Quarterly report")
	s.newTask("bob", other.ID, "Quarterly review")

	_, err := s.storage.AttachTag(s.ctx, "alice", report.ID, "finance")
	require.NoError(s.T(), err)

	result, err := s.storage.SearchTasks(s.ctx, "alice",
		repository.SearchQuery{Title: "Quarterly"}, models.PageRequest{Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	require.Len(s.T(), result.Items, 1)
	assert.Equal(s.T(), report.ID, result.Items[0].ID)

	result, err = s.storage.SearchTasks(s.ctx, "alice",
		repository.SearchQuery{Tag: "finance"}, models.PageRequest{Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Len(s.T(), result.Items, 1)

	assigned, err := s.storage.ListAssigned(s.ctx, "alice",
		repository.AssignedFilter{Sort: repository.SortTitle}, models.PageRequest{Page: 1, PageSize: 10})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, assigned.TotalCount)
}

func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PostgresTestSuite))
}
