package images

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSave(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("foto.JPG", bytes.NewReader([]byte("contenido")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotEqual(t, "foto.jpg", name)

	data, err := os.ReadFile(s.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestSave_RejectsExtension(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"script.sh", "documento.pdf", "sinextension"} {
		_, err := s.Save(name, bytes.NewReader([]byte("x")))
		assert.ErrorIs(t, err, model.ErrValidation, "name %q", name)
	}
}

func TestSave_RejectsOversize(t *testing.T) {
	s := newTestStore(t)

	big := bytes.NewReader(make([]byte, MaxSize+1))
	_, err := s.Save("grande.png", big)
	require.ErrorIs(t, err, model.ErrValidation)

	// Nothing left behind on disk.
	entries, err := os.ReadDir(filepath.Dir(s.Path("x")))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Save("foto.png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	_, err = os.Stat(s.Path(name))
	assert.True(t, os.IsNotExist(err))

	// Removing a missing file is not an error.
	assert.NoError(t, s.Remove("inexistente.png"))
}
