package sticky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDrawsFromPalette(t *testing.T) {
	palette := make(map[string]bool, len(Palette))
	for _, c := range Palette {
		palette[c] = true
	}

	var l List
	for i := 0; i < 10; i++ {
		l = l.Add()
	}

	require.Len(t, l, 10)
	for _, n := range l {
		assert.True(t, palette[n.Color], "color %q must come from the palette", n.Color)
		assert.Empty(t, n.Title)
		assert.Empty(t, n.Content)
		assert.NotEmpty(t, n.ID)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	l := List{}.Add()
	id := l[0].ID
	color := l[0].Color

	title := "Groceries"
	l2 := l.Update(id, Patch{Title: &title})
	assert.Equal(t, "Groceries", l2[0].Title)
	assert.Equal(t, color, l2[0].Color, "unpatched fields keep their value")
	assert.Empty(t, l[0].Title, "input list unchanged")

	content := "eggs, flour"
	newColor := "#FFB7B2"
	l3 := l2.Update(id, Patch{Content: &content, Color: &newColor})
	assert.Equal(t, "Groceries", l3[0].Title)
	assert.Equal(t, "eggs, flour", l3[0].Content)
	assert.Equal(t, "#FFB7B2", l3[0].Color)

	// Unknown id: no-op.
	assert.Equal(t, l3, l3.Update("missing", Patch{Title: &title}))
}

func TestDelete(t *testing.T) {
	l := List{}.Add().Add()
	out := l.Delete(l[0].ID)
	require.Len(t, out, 1)
	assert.Equal(t, l[1].ID, out[0].ID)
}
