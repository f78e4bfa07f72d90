package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/dash/pkg/dashboard"
	"github.com/grovetools/dash/pkg/kvstore"
)

func testService(t *testing.T) *dashboard.Service {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return dashboard.New(kvstore.NewMemory(), log)
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestTodoAddAndList(t *testing.T) {
	svc := testService(t)

	run(t, NewTodoCmd(&svc), "add", "water", "the", "plants")
	out := run(t, NewTodoCmd(&svc), "list")
	assert.Contains(t, out, "water the plants")
	assert.Contains(t, out, "[ ]")

	id := svc.Todos()[0].ID
	run(t, NewTodoCmd(&svc), "toggle", id)
	out = run(t, NewTodoCmd(&svc), "list")
	assert.Contains(t, out, "[x]")
}

func TestTodoAddRejectsBlank(t *testing.T) {
	svc := testService(t)

	cmd := NewTodoCmd(&svc)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"add", "   "})
	assert.Error(t, cmd.Execute(), "blank text is rejected at the command boundary")
	assert.Empty(t, svc.Todos())
}

func TestExplorerMkdirNewTree(t *testing.T) {
	svc := testService(t)

	folderID := strings.TrimSpace(run(t, NewExplorerCmd(&svc), "mkdir", "--name", "Projects"))
	require.NotEmpty(t, folderID)

	noteID := strings.TrimSpace(run(t, NewExplorerCmd(&svc), "new", folderID, "--name", "roadmap"))
	require.NotEmpty(t, noteID)

	run(t, NewExplorerCmd(&svc), "write", noteID, "v1 scope")
	out := run(t, NewExplorerCmd(&svc), "cat", noteID)
	assert.Equal(t, "v1 scope\n", out)

	tree := run(t, NewExplorerCmd(&svc), "tree")
	assert.Contains(t, tree, "Projects/")
	assert.Contains(t, tree, "roadmap")
}

func TestExplorerMvRequiresOneTarget(t *testing.T) {
	svc := testService(t)

	cmd := NewExplorerCmd(&svc)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"mv", "some-id"})
	assert.Error(t, cmd.Execute())

	cmd = NewExplorerCmd(&svc)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"mv", "some-id", "--to", "x", "--root"})
	assert.Error(t, cmd.Execute())
}

func TestCalAddListMonth(t *testing.T) {
	svc := testService(t)

	run(t, NewCalCmd(&svc), "add", "2026-09-01", "09:00", "Standup")
	out := run(t, NewCalCmd(&svc), "list", "2026-09-01")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "Standup")

	month := run(t, NewCalCmd(&svc), "month", "2026-09")
	assert.Contains(t, month, "September 2026")
	assert.Contains(t, month, "1(1)", "the 1st carries one event")
}

func TestCalAddRejectsBadTime(t *testing.T) {
	svc := testService(t)

	cmd := NewCalCmd(&svc)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"add", "2026-09-01", "9am", "Standup"})
	assert.Error(t, cmd.Execute())
}

func TestStickyAddEditList(t *testing.T) {
	svc := testService(t)

	run(t, NewStickyCmd(&svc), "add")
	require.Len(t, svc.Stickies(), 1)
	id := svc.Stickies()[0].ID

	run(t, NewStickyCmd(&svc), "edit", id, "--title", "Groceries")
	out := run(t, NewStickyCmd(&svc), "list")
	assert.Contains(t, out, "Groceries")
}
