package dashboard

import (
	"github.com/google/uuid"

	"github.com/grovetools/dash/pkg/explorer"
)

// seedForest is the starter filing tree a user sees before creating
// anything of their own.
func seedForest() explorer.Forest {
	folderID := uuid.NewString()
	return explorer.Forest{
		{
			ID:     folderID,
			Name:   "Getting Started",
			Kind:   explorer.KindFolder,
			Pinned: true,
			Children: []explorer.Item{
				{
					ID:       uuid.NewString(),
					Name:     "Welcome",
					Kind:     explorer.KindNote,
					ParentID: &folderID,
					Content: "Welcome to your dashboard.\n\n" +
						"Use the explorer to file notes into folders, pin the ones you " +
						"reach for often, and drag items between folders to reorganize.",
				},
			},
		},
	}
}
