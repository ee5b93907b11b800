package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/platform/sqlite"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"pgregory.net/rapid"
)

type sqliteFixture struct {
	db          *gorm.DB
	svc         service.TaskService
	users       *sqlite.SQLiteUserStore
	diagnostics *mocks.CapturingDiagnostics
}

func newSQLiteFixture(t *testing.T) *sqliteFixture {
	t.Helper()

	db, err := sqlite.Open(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	diagnostics := &mocks.CapturingDiagnostics{}
	svc, err := service.NewTaskService(sqlite.NewSQLiteTaskStore(db, nil), diagnostics, nil)
	require.NoError(t, err)

	return &sqliteFixture{
		db:          db,
		svc:         svc,
		users:       sqlite.NewSQLiteUserStore(db, nil),
		diagnostics: diagnostics,
	}
}

func (f *sqliteFixture) user(t *testing.T, username string) domain.User {
	t.Helper()
	user, err := domain.NewUser(username)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), user))
	return *user
}

func TestTaskServiceScenario(t *testing.T) {
	t.Parallel()

	f := newSQLiteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	milk, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "Buy milk", Description: "2%"}, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, milk.Status)

	// Bob cannot see, change, or delete Alice's task.
	_, err = f.svc.GetTask(ctx, milk.ID, bob)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	_, err = f.svc.UpdateTaskStatus(ctx, milk.ID, domain.TaskStatusDone, bob)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, milk.ID, bob), service.ErrTaskNotFound)

	bobTasks, err := f.svc.ListTasks(ctx, service.TaskFilterInput{}, bob)
	require.NoError(t, err)
	assert.Empty(t, bobTasks)

	got, err := f.svc.GetTask(ctx, milk.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusOpen, got.Status)

	updated, err := f.svc.UpdateTaskStatus(ctx, milk.ID, domain.TaskStatusDone, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)

	done, err := f.svc.ListTasks(ctx, service.TaskFilterInput{Status: domain.TaskStatusDone}, alice)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, milk.ID, done[0].ID)

	open, err := f.svc.ListTasks(ctx, service.TaskFilterInput{Status: domain.TaskStatusOpen}, alice)
	require.NoError(t, err)
	assert.Empty(t, open)

	require.NoError(t, f.svc.DeleteTask(ctx, milk.ID, alice))
	_, err = f.svc.GetTask(ctx, milk.ID, alice)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.ErrorIs(t, f.svc.DeleteTask(ctx, milk.ID, alice), service.ErrTaskNotFound)

	assert.Empty(t, f.diagnostics.Records())
}

func TestTaskServiceSearch(t *testing.T) {
	t.Parallel()

	f := newSQLiteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	inTitle, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "xABCx"}, alice)
	require.NoError(t, err)
	inDescription, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "other", Description: "has abc inside"}, alice)
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "nothing", Description: "to see"}, alice)
	require.NoError(t, err)
	literal, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "100% done_ish"}, alice)
	require.NoError(t, err)

	found, err := f.svc.ListTasks(ctx, service.TaskFilterInput{Search: "abc"}, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{inTitle.ID, inDescription.ID}, ids(found))

	// Wildcard characters match themselves only.
	found, err = f.svc.ListTasks(ctx, service.TaskFilterInput{Search: "0% d"}, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{literal.ID}, ids(found))

	found, err = f.svc.ListTasks(ctx, service.TaskFilterInput{Search: "_"}, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{literal.ID}, ids(found))
}

func TestTaskServiceSearchMatchesTitleOrDescription(t *testing.T) {
	t.Parallel()

	f := newSQLiteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	titleHit, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "ABCdef"}, alice)
	require.NoError(t, err)
	descriptionHit, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "errands", Description: "xxabcxx"}, alice)
	require.NoError(t, err)
	_, err = f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "xyz", Description: "xyz"}, alice)
	require.NoError(t, err)

	found, err := f.svc.ListTasks(ctx, service.TaskFilterInput{Search: "abc"}, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{titleHit.ID, descriptionHit.ID}, ids(found))
}

func TestTaskServiceSearchFoldsNonASCII(t *testing.T) {
	t.Parallel()

	f := newSQLiteFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	anger, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: "ÄRGER mit Öl"}, alice)
	require.NoError(t, err)

	found, err := f.svc.ListTasks(ctx, service.TaskFilterInput{Search: "ärger"}, alice)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{anger.ID}, ids(found))
	assert.Empty(t, f.diagnostics.Records())
}

func TestTaskServiceListIsOwnerScoped(t *testing.T) {
	t.Parallel()

	f := newSQLiteFixture(t)
	ctx := context.Background()
	owners := []domain.User{f.user(t, "alice"), f.user(t, "bob"), f.user(t, "carol")}

	rapid.Check(t, func(rt *rapid.T) {
		require.NoError(rt, f.db.Exec("DELETE FROM tasks").Error)
		want := map[uuid.UUID][]uuid.UUID{}

		count := rapid.IntRange(0, 12).Draw(rt, "count")
		for i := 0; i < count; i++ {
			owner := rapid.SampledFrom(owners).Draw(rt, "owner")
			task, err := f.svc.CreateTask(ctx, service.CreateTaskInput{Title: fmt.Sprintf("task %d", i)}, owner)
			require.NoError(rt, err)
			want[owner.ID] = append(want[owner.ID], task.ID)
		}

		for _, owner := range owners {
			tasks, err := f.svc.ListTasks(ctx, service.TaskFilterInput{}, owner)
			require.NoError(rt, err)
			got := ids(tasks)
			if len(got) != len(want[owner.ID]) {
				rt.Fatalf("owner %s: got %d tasks, want %d", owner.Username, len(got), len(want[owner.ID]))
			}
			expected := map[uuid.UUID]bool{}
			for _, id := range want[owner.ID] {
				expected[id] = true
			}
			for _, task := range tasks {
				if task.UserID != owner.ID || !expected[task.ID] {
					rt.Fatalf("owner %s received task %s it does not own", owner.Username, task.ID)
				}
			}
		}
	})
}

func ids(tasks []*domain.Task) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}
