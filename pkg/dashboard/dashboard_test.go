package dashboard

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dash/pkg/explorer"
	"github.com/grovetools/dash/pkg/kvstore"
	"github.com/grovetools/dash/pkg/sticky"
)

func newTestService(t *testing.T, store kvstore.Store) *Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(store, log)
}

func TestFirstRunSeedsExplorer(t *testing.T) {
	s := newTestService(t, kvstore.NewMemory())

	require.NotEmpty(t, s.Forest(), "a fresh user starts with the seed forest")
	assert.Equal(t, "Getting Started", s.Forest()[0].Name)
	assert.Empty(t, s.Todos())
	assert.Empty(t, s.Stickies())
	assert.Empty(t, s.Events())
	assert.Equal(t, AnonymousUser, s.UserID())
}

func TestMutationsPersistAcrossRestart(t *testing.T) {
	store := kvstore.NewMemory()

	s := newTestService(t, store)
	require.NoError(t, s.AddTodo("water plants"))
	require.NoError(t, s.AddSticky())
	folderID, err := s.AddFolder()
	require.NoError(t, err)
	require.NoError(t, s.AddExplorerNote(folderID))
	require.NoError(t, s.AddEvent(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local), "Standup", "09:00"))

	// A new service over the same store sees everything.
	s2 := newTestService(t, store)
	require.Len(t, s2.Todos(), 1)
	assert.Equal(t, "water plants", s2.Todos()[0].Text)
	assert.Len(t, s2.Stickies(), 1)
	require.NotNil(t, s2.Forest().Find(folderID))
	assert.Len(t, s2.Forest().Find(folderID).Children, 1)
	assert.Len(t, s2.EventsForDate(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)), 1)
}

func TestUserSwitchRehomesAllStores(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(t, store)

	// Anonymous data.
	require.NoError(t, s.AddTodo("anonymous todo"))

	// Ada signs up: fresh dataset under her id.
	ada, err := s.SignUp("ada@example.com", "pw-ada", "Ada")
	require.NoError(t, err)
	assert.Equal(t, ada.ID, s.UserID())
	assert.Empty(t, s.Todos(), "a new user does not see anonymous data")
	require.NoError(t, s.AddTodo("ada's todo"))

	// Grace signs up: her own fresh dataset.
	_, err = s.SignUp("grace@example.com", "pw-grace", "Grace")
	require.NoError(t, err)
	assert.Empty(t, s.Todos())

	// Logging back in as Ada restores her dataset.
	_, err = s.LogIn("ada@example.com", "pw-ada")
	require.NoError(t, err)
	require.Len(t, s.Todos(), 1)
	assert.Equal(t, "ada's todo", s.Todos()[0].Text)

	// Logout lands back on the anonymous dataset.
	require.NoError(t, s.LogOut())
	assert.Equal(t, AnonymousUser, s.UserID())
	require.Len(t, s.Todos(), 1)
	assert.Equal(t, "anonymous todo", s.Todos()[0].Text)
}

func TestFailedLoginKeepsCurrentState(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(t, store)

	ada, err := s.SignUp("ada@example.com", "pw", "Ada")
	require.NoError(t, err)
	require.NoError(t, s.AddTodo("keep me"))

	_, err = s.LogIn("ada@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, ada.ID, s.UserID())
	assert.Len(t, s.Todos(), 1)
}

func TestMalformedDocumentsFallBackToDefaults(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set("dashboard_todos_anonymous", "{corrupt"))
	require.NoError(t, store.Set("dashboard_explorer_anonymous", "[{\"id\":"))
	require.NoError(t, store.Set("dashboard_calendar_events_anonymous", "nope"))

	s := newTestService(t, store)
	assert.Empty(t, s.Todos())
	assert.NotEmpty(t, s.Forest(), "explorer resets to the seed forest")
	assert.Empty(t, s.Events())
}

func TestResumesPersistedSession(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(t, store)
	ada, err := s.SignUp("ada@example.com", "pw", "Ada")
	require.NoError(t, err)
	require.NoError(t, s.AddTodo("resume me"))

	// Restart: session record selects Ada's dataset immediately.
	s2 := newTestService(t, store)
	assert.Equal(t, ada.ID, s2.UserID())
	require.Len(t, s2.Todos(), 1)
	assert.Equal(t, "resume me", s2.Todos()[0].Text)
}

func TestActiveNoteSelection(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(t, store)

	folderID, err := s.AddFolder()
	require.NoError(t, err)
	require.NoError(t, s.AddExplorerNote(folderID))
	noteID := s.Forest().Find(folderID).Children[0].ID

	require.NoError(t, s.SelectNote(noteID))
	active := s.ActiveNote()
	require.NotNil(t, active)
	assert.Equal(t, noteID, active.ID)

	// Selection survives a restart.
	s2 := newTestService(t, store)
	require.NotNil(t, s2.ActiveNote())
	assert.Equal(t, noteID, s2.ActiveNote().ID)

	// Deleting the containing folder clears the selection.
	require.NoError(t, s2.DeleteItem(folderID))
	assert.Nil(t, s2.ActiveNote())
	s3 := newTestService(t, store)
	assert.Nil(t, s3.ActiveNote())
}

func TestMoveItemRejectsUnknownTarget(t *testing.T) {
	s := newTestService(t, kvstore.NewMemory())

	folderID, err := s.AddFolder()
	require.NoError(t, err)
	require.NoError(t, s.AddExplorerNote(folderID))
	noteID := s.Forest().Find(folderID).Children[0].ID
	before := s.Forest().Count()

	bad := "no-such-folder"
	err = s.MoveItem(noteID, &bad)
	assert.ErrorIs(t, err, explorer.ErrNotFound)
	assert.Equal(t, before, s.Forest().Count(), "a rejected move drops nothing")
}

func TestBackupRoundTrip(t *testing.T) {
	store := kvstore.NewMemory()
	s := newTestService(t, store)
	require.NoError(t, s.AddTodo("pack bags"))
	require.NoError(t, s.AddSticky())
	title := "Trip"
	require.NoError(t, s.UpdateSticky(s.Stickies()[0].ID, sticky.Patch{Title: &title}))
	require.NoError(t, s.AddEvent(time.Date(2026, 9, 5, 0, 0, 0, 0, time.Local), "Flight", "07:45"))

	var buf bytes.Buffer
	require.NoError(t, s.ExportBackup(&buf))

	// Import into a fresh store.
	fresh := newTestService(t, kvstore.NewMemory())
	require.NoError(t, fresh.ImportBackup(bytes.NewReader(buf.Bytes())))

	assert.Equal(t, s.Todos(), fresh.Todos())
	assert.Equal(t, s.Stickies(), fresh.Stickies())
	assert.Equal(t, s.Forest(), fresh.Forest())
	assert.Equal(t, s.Events(), fresh.Events())

	// Imported state is persisted, not just held in memory.
	reloaded := newTestService(t, fresh.store)
	assert.Equal(t, s.Todos(), reloaded.Todos())
}

func TestImportBackupRejectsGarbage(t *testing.T) {
	s := newTestService(t, kvstore.NewMemory())
	err := s.ImportBackup(bytes.NewReader([]byte("{invalid: [unclosed")))
	assert.Error(t, err)
}
