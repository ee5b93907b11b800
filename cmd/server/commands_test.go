package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points configuration at a fresh SQLite file.
func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKS_DATABASE_DRIVER", "sqlite")
	t.Setenv("TASKS_DATABASE_SQLITE_PATH", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("TASKS_DATABASE_URL", "")
	t.Setenv("TASKS_AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("TASKS_SERVER_LOG_LEVEL", "error")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestUserAddAndTokenCommands(t *testing.T) {
	sqliteEnv(t)

	out, err := execute(t, "user", "add", "--username", "alice")
	require.NoError(t, err)
	userID, err := uuid.Parse(out)
	require.NoError(t, err)

	token, err := execute(t, "token", "--user-id", userID.String())
	require.NoError(t, err)

	jwtService, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testJWTSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestUserAddRejectsDuplicate(t *testing.T) {
	sqliteEnv(t)

	_, err := execute(t, "user", "add", "--username", "bob")
	require.NoError(t, err)

	_, err = execute(t, "user", "add", "--username", "bob")
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.ErrorContains(t, err, `username "bob" is already taken`)
}

func TestProvisionUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "carol" && u.ID != uuid.Nil
		})).Return(nil)

		user, err := provisionUser(ctx, users, "carol")
		require.NoError(t, err)
		assert.Equal(t, "carol", user.Username)
		users.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("Create", ctx, mock.Anything).
			Return(store.NewStoreError("user", "create", "insert failed", store.ErrDuplicate))

		_, err := provisionUser(ctx, users, "carol")
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.NotContains(t, err.Error(), "insert failed")
	})

	t.Run("store fault", func(t *testing.T) {
		fault := errors.New("disk I/O error")
		users := &mocks.TestifyMockUserStore{}
		users.On("Create", ctx, mock.Anything).Return(fault)

		_, err := provisionUser(ctx, users, "carol")
		assert.ErrorIs(t, err, fault)
		assert.False(t, store.IsDuplicateError(err))
	})

	t.Run("invalid username", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}

		_, err := provisionUser(ctx, users, "carol smith")
		assert.ErrorIs(t, err, domain.ErrInvalidUsername)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTokenRejectsBadUserID(t *testing.T) {
	sqliteEnv(t)

	_, err := execute(t, "token", "--user-id", "not-a-uuid")
	assert.Error(t, err)

	_, err = execute(t, "token")
	assert.Error(t, err, "--user-id is required")

	_, err = execute(t, "token", "--user-id", uuid.NewString())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	alice := &domain.User{ID: uuid.New(), Username: "alice"}

	t.Run("signs stored user", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByID", ctx, alice.ID).Return(alice, nil)

		var signed domain.User
		jwtService := &mocks.MockJWTService{
			GenerateTokenFn: func(_ context.Context, user domain.User) (string, error) {
				signed = user
				return "signed-token", nil
			},
		}

		token, err := issueToken(ctx, users, jwtService, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, *alice, signed)
		users.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByID", ctx, alice.ID).Return(nil, store.ErrUserNotFound)

		_, err := issueToken(ctx, users, &mocks.MockJWTService{Token: "unused"}, alice.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("store fault", func(t *testing.T) {
		fault := store.NewStoreError("user", "get_by_id", "select failed", errors.New("database is closed"))
		users := &mocks.TestifyMockUserStore{}
		users.On("GetByID", ctx, alice.ID).Return(nil, fault)

		_, err := issueToken(ctx, users, &mocks.MockJWTService{}, alice.ID)
		assert.ErrorIs(t, err, fault)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestMigrateCommand(t *testing.T) {
	sqliteEnv(t)

	out, err := execute(t, "migrate", "up")
	require.NoError(t, err)
	assert.Equal(t, "sqlite schema is up to date", out)

	_, err = execute(t, "migrate", "down")
	assert.ErrorContains(t, err, "not supported for the sqlite driver")

	_, err = execute(t, "migrate", "sideways")
	assert.Error(t, err)
}
