// Package dashboard wires the todo, sticky-note, explorer and calendar
// stores to the key-value persistence layer, namespaced by the active user.
// Every mutation computes a new snapshot, replaces the prior state and
// serializes the document under the user's keys. Mutations are applied one
// at a time; the service is single-writer by design.
package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/dash/pkg/auth"
	"github.com/grovetools/dash/pkg/calendar"
	"github.com/grovetools/dash/pkg/explorer"
	"github.com/grovetools/dash/pkg/kvstore"
	"github.com/grovetools/dash/pkg/sticky"
	"github.com/grovetools/dash/pkg/todo"
)

// AnonymousUser is the identity sentinel used when nobody is logged in.
const AnonymousUser = "anonymous"

const (
	keyTodos      = "dashboard_todos"
	keyStickies   = "dashboard_notes"
	keyExplorer   = "dashboard_explorer"
	keyActiveNote = "dashboard_active_note"
	keyCalendar   = "dashboard_calendar_events"
)

// Service is the dashboard's store aggregate for one active identity.
type Service struct {
	store kvstore.Store
	log   *logrus.Logger
	auth  *auth.Registry

	userID       string
	todos        todo.List
	stickies     sticky.List
	forest       explorer.Forest
	events       calendar.Events
	activeNoteID string
}

// New creates a service over the given store, resuming the persisted session
// if one exists and loading that user's documents.
func New(store kvstore.Store, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	s := &Service{
		store: store,
		log:   log,
		auth:  auth.NewRegistry(store),
	}
	s.userID = AnonymousUser
	if user := s.auth.CurrentUser(); user != nil {
		s.userID = user.ID
	}
	s.loadAll()
	return s
}

// key namespaces a document key by the active user.
func (s *Service) key(base string) string {
	return base + "_" + s.userID
}

// loadAll reloads every per-user document, falling back to an empty or seed
// dataset when a record is missing or malformed.
func (s *Service) loadAll() {
	s.todos = loadJSON[todo.List](s, keyTodos, todo.List{})
	s.stickies = loadJSON[sticky.List](s, keyStickies, sticky.List{})
	s.forest = loadJSON[explorer.Forest](s, keyExplorer, seedForest()).Normalize()
	s.events = loadJSON[calendar.Events](s, keyCalendar, calendar.Events{})

	s.activeNoteID = ""
	if raw, err := s.store.Get(s.key(keyActiveNote)); err == nil {
		s.activeNoteID = raw
	}
}

// loadJSON reads one document for the active user. Any failure resets to the
// fallback; corrupt state never propagates.
func loadJSON[T any](s *Service, base string, fallback T) T {
	raw, err := s.store.Get(s.key(base))
	if err != nil {
		return fallback
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.log.WithError(err).Warnf("malformed %s record, resetting to default", base)
		return fallback
	}
	return value
}

func (s *Service) saveJSON(base string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", base, err)
	}
	if err := s.store.Set(s.key(base), string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", base, err)
	}
	s.log.Debugf("persisted %s for user %s", base, s.userID)
	return nil
}

// UserID exposes the active identity ("anonymous" when logged out).
func (s *Service) UserID() string {
	return s.userID
}

// CurrentUser returns the active session's user, or nil.
func (s *Service) CurrentUser() *auth.User {
	return s.auth.CurrentUser()
}

// SignUp registers a new account, switches to it and re-homes all stores.
func (s *Service) SignUp(email, password, name string) (auth.User, error) {
	user, err := s.auth.SignUp(email, password, name)
	if err != nil {
		return auth.User{}, err
	}
	s.switchUser(user.ID)
	return user, nil
}

// LogIn authenticates and, on success, switches the active identity. On
// failure the current identity and its loaded state are untouched.
func (s *Service) LogIn(email, password string) (auth.User, error) {
	user, err := s.auth.LogIn(email, password)
	if err != nil {
		return auth.User{}, err
	}
	s.switchUser(user.ID)
	return user, nil
}

// LogOut clears the session and re-homes onto the anonymous dataset.
func (s *Service) LogOut() error {
	if err := s.auth.LogOut(); err != nil {
		return err
	}
	s.switchUser(AnonymousUser)
	return nil
}

// switchUser re-homes every store onto the new identity's keys.
func (s *Service) switchUser(userID string) {
	if userID == s.userID {
		return
	}
	s.log.Debugf("switching user %s -> %s", s.userID, userID)
	s.userID = userID
	s.loadAll()
}

// --- Todos ---

func (s *Service) Todos() todo.List {
	return s.todos
}

func (s *Service) AddTodo(text string) error {
	s.todos = s.todos.Add(text)
	return s.saveJSON(keyTodos, s.todos)
}

func (s *Service) ToggleTodo(id string) error {
	s.todos = s.todos.Toggle(id)
	return s.saveJSON(keyTodos, s.todos)
}

func (s *Service) UpdateTodoText(id, text string) error {
	s.todos = s.todos.UpdateText(id, text)
	return s.saveJSON(keyTodos, s.todos)
}

func (s *Service) DeleteTodo(id string) error {
	s.todos = s.todos.Delete(id)
	return s.saveJSON(keyTodos, s.todos)
}

// --- Sticky notes ---

func (s *Service) Stickies() sticky.List {
	return s.stickies
}

func (s *Service) AddSticky() error {
	s.stickies = s.stickies.Add()
	return s.saveJSON(keyStickies, s.stickies)
}

func (s *Service) UpdateSticky(id string, patch sticky.Patch) error {
	s.stickies = s.stickies.Update(id, patch)
	return s.saveJSON(keyStickies, s.stickies)
}

func (s *Service) DeleteSticky(id string) error {
	s.stickies = s.stickies.Delete(id)
	return s.saveJSON(keyStickies, s.stickies)
}

// --- Explorer ---

func (s *Service) Forest() explorer.Forest {
	return s.forest
}

// AddFolder creates a root folder and returns its id so the caller can
// immediately rename it.
func (s *Service) AddFolder() (string, error) {
	forest, id := s.forest.AddFolder()
	s.forest = forest
	return id, s.saveJSON(keyExplorer, s.forest)
}

func (s *Service) AddExplorerNote(parentID string) error {
	s.forest = s.forest.AddNote(parentID)
	return s.saveJSON(keyExplorer, s.forest)
}

func (s *Service) RenameItem(id, name string) error {
	s.forest = s.forest.Rename(id, name)
	return s.saveJSON(keyExplorer, s.forest)
}

func (s *Service) UpdateNoteContent(id, content string) error {
	s.forest = s.forest.SetContent(id, content)
	return s.saveJSON(keyExplorer, s.forest)
}

func (s *Service) TogglePin(id string) error {
	s.forest = s.forest.TogglePin(id)
	return s.saveJSON(keyExplorer, s.forest)
}

// DeleteItem removes an item and, for folders, its whole subtree. A deleted
// active note also clears the active-note selection.
func (s *Service) DeleteItem(id string) error {
	s.forest = s.forest.Delete(id)
	if s.activeNoteID != "" && s.forest.Find(s.activeNoteID) == nil {
		if err := s.SelectNote(""); err != nil {
			return err
		}
	}
	return s.saveJSON(keyExplorer, s.forest)
}

func (s *Service) MoveItem(id string, newParentID *string) error {
	forest, err := s.forest.Move(id, newParentID)
	if err != nil {
		return err
	}
	s.forest = forest
	return s.saveJSON(keyExplorer, s.forest)
}

// SelectNote records which explorer note is open; empty clears the record.
func (s *Service) SelectNote(id string) error {
	s.activeNoteID = id
	key := s.key(keyActiveNote)
	if id == "" {
		return s.store.Remove(key)
	}
	return s.store.Set(key, id)
}

// ActiveNote resolves the selected note, or nil when none is selected or the
// selection no longer exists.
func (s *Service) ActiveNote() *explorer.Item {
	if s.activeNoteID == "" {
		return nil
	}
	item := s.forest.Find(s.activeNoteID)
	if item == nil || item.Kind != explorer.KindNote {
		return nil
	}
	return item
}

// --- Calendar ---

func (s *Service) Events() calendar.Events {
	return s.events
}

func (s *Service) AddEvent(date time.Time, title, hhmm string) error {
	s.events = s.events.Add(date, title, hhmm)
	return s.saveJSON(keyCalendar, s.events)
}

func (s *Service) DeleteEvent(dateKey, eventID string) error {
	s.events = s.events.Delete(dateKey, eventID)
	return s.saveJSON(keyCalendar, s.events)
}

func (s *Service) EventsForDate(date time.Time) []calendar.Event {
	return s.events.ForDate(date)
}
