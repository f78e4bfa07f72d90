package dashboard

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/dash/pkg/calendar"
	"github.com/grovetools/dash/pkg/explorer"
	"github.com/grovetools/dash/pkg/sticky"
	"github.com/grovetools/dash/pkg/todo"
)

// Backup is the full export of one user's dashboard state.
type Backup struct {
	UserID       string          `yaml:"user_id"`
	ExportedAt   time.Time       `yaml:"exported_at"`
	Todos        todo.List       `yaml:"todos"`
	StickyNotes  sticky.List     `yaml:"sticky_notes"`
	Explorer     explorer.Forest `yaml:"explorer"`
	ActiveNoteID string          `yaml:"active_note_id,omitempty"`
	Calendar     calendar.Events `yaml:"calendar"`
}

// ExportBackup writes the active user's complete state as a YAML document.
func (s *Service) ExportBackup(w io.Writer) error {
	backup := Backup{
		UserID:       s.userID,
		ExportedAt:   time.Now(),
		Todos:        s.todos,
		StickyNotes:  s.stickies,
		Explorer:     s.forest,
		ActiveNoteID: s.activeNoteID,
		Calendar:     s.events,
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// ImportBackup replaces the active user's entire state with the decoded
// document and persists every store. The backup's own user id is ignored;
// state always lands under the active identity.
func (s *Service) ImportBackup(r io.Reader) error {
	var backup Backup
	if err := yaml.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}

	s.todos = backup.Todos
	s.stickies = backup.StickyNotes
	s.forest = backup.Explorer.Normalize()
	s.events = backup.Calendar
	if s.todos == nil {
		s.todos = todo.List{}
	}
	if s.stickies == nil {
		s.stickies = sticky.List{}
	}
	if s.events == nil {
		s.events = calendar.Events{}
	}

	if err := s.saveJSON(keyTodos, s.todos); err != nil {
		return err
	}
	if err := s.saveJSON(keyStickies, s.stickies); err != nil {
		return err
	}
	if err := s.saveJSON(keyExplorer, s.forest); err != nil {
		return err
	}
	if err := s.saveJSON(keyCalendar, s.events); err != nil {
		return err
	}
	return s.SelectNote(backup.ActiveNoteID)
}
