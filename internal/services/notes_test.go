package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elevennote/elevennote/internal/models"
	"github.com/elevennote/elevennote/internal/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// The in-memory database lives per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repositories.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email string) UserID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)
	return UserID(user.ID)
}

func TestCreateNote_ReturnsSummaryAndPersists(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", "alice@example.com")

	item, err := store.CreateNote(ctx, owner, "First note", "Some content")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "First note", item.Title)
	assert.WithinDuration(t, time.Now(), item.CreatedAt, 5*time.Second)

	detail, err := store.GetNoteByID(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, detail.ID)
	assert.Equal(t, "First note", detail.Title)
	assert.Equal(t, "Some content", detail.Content)
	assert.WithinDuration(t, item.CreatedAt, detail.CreatedAt, time.Second)
	assert.Nil(t, detail.ModifiedAt)
}

func TestCreateNote_RejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", "alice@example.com")

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{"title too short", "a", "content"},
		{"title too long", strings.Repeat("x", 101), "content"},
		{"content too long", "valid title", strings.Repeat("x", 8001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := store.CreateNote(ctx, owner, tt.title, tt.content)
			assert.ErrorIs(t, err, ErrInvalidNoteInput)
			assert.Nil(t, item)
		})
	}
}

func TestCreateNote_AcceptsBoundaryLengths(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", "alice@example.com")

	item, err := store.CreateNote(ctx, owner, strings.Repeat("x", 100), strings.Repeat("y", 8000))
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	item, err = store.CreateNote(ctx, owner, "ab", "")
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
}

func TestGetAllNotes_EmptyForNewUser(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	owner := seedUser(t, db, "alice", "alice@example.com")

	items, err := store.GetAllNotes(context.Background(), owner)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestNotes_OwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice", "alice@example.com")
	bob := seedUser(t, db, "bob", "bob@example.com")

	item, err := store.CreateNote(ctx, alice, "Private", "Alice only")
	require.NoError(t, err)

	items, err := store.GetAllNotes(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = store.GetNoteByID(ctx, bob, item.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	err = store.UpdateNote(ctx, bob, item.ID, "Hijacked", "Bob was here")
	assert.ErrorIs(t, err, ErrNoteNotFound)

	err = store.DeleteNote(ctx, bob, item.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	// The note is untouched for its owner.
	detail, err := store.GetNoteByID(ctx, alice, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", detail.Title)
	assert.Equal(t, "Alice only", detail.Content)
	assert.Nil(t, detail.ModifiedAt)
}

func TestUpdateNote_SetsModifiedTime(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", "alice@example.com")

	item, err := store.CreateNote(ctx, owner, "Draft", "v1")
	require.NoError(t, err)

	require.NoError(t, store.UpdateNote(ctx, owner, item.ID, "Draft", "v2"))

	detail, err := store.GetNoteByID(ctx, owner, item.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ModifiedAt)
	assert.False(t, detail.ModifiedAt.Before(detail.CreatedAt))

	first := *detail.ModifiedAt
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, store.UpdateNote(ctx, owner, item.ID, "Draft", "v3"))

	detail, err = store.GetNoteByID(ctx, owner, item.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ModifiedAt)
	assert.True(t, detail.ModifiedAt.After(first))
	assert.Equal(t, "v3", detail.Content)
}

func TestUpdateNote_MissingNote(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	owner := seedUser(t, db, "alice", "alice@example.com")

	err := store.UpdateNote(context.Background(), owner, 9999, "Title", "Content")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteNote_ThenGetNotFound(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	owner := seedUser(t, db, "alice", "alice@example.com")

	item, err := store.CreateNote(ctx, owner, "Ephemeral", "gone soon")
	require.NoError(t, err)

	require.NoError(t, store.DeleteNote(ctx, owner, item.ID))

	_, err = store.GetNoteByID(ctx, owner, item.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	err = store.DeleteNote(ctx, owner, item.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNotes_GroceriesScenario(t *testing.T) {
	db := newTestDB(t)
	store := NewNoteStore(db)
	ctx := context.Background()
	user1 := seedUser(t, db, "user1", "user1@example.com")
	user2 := seedUser(t, db, "user2", "user2@example.com")

	item, err := store.CreateNote(ctx, user1, "Groceries", "Milk, eggs")
	require.NoError(t, err)

	items, err := store.GetAllNotes(ctx, user1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Groceries", items[0].Title)

	items, err = store.GetAllNotes(ctx, user2)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = store.GetNoteByID(ctx, user2, item.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	require.NoError(t, store.UpdateNote(ctx, user1, item.ID, "Groceries", "Milk, eggs, bread"))

	detail, err := store.GetNoteByID(ctx, user1, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk, eggs, bread", detail.Content)
	assert.NotNil(t, detail.ModifiedAt)
}
