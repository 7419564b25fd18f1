package attachments

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveListDelete(t *testing.T) {
	s := NewStore(t.TempDir())

	files, err := s.List(1)
	require.NoError(t, err)
	assert.Empty(t, files)

	name, err := s.Save(1, "salgsopstilling.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "salgsopstilling.pdf", name)
	_, err = s.Save(1, "a-plan.png", strings.NewReader("png"))
	require.NoError(t, err)

	files, err = s.List(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-plan.png", "salgsopstilling.pdf"}, files)

	path, err := s.Path(1, "salgsopstilling.pdf")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))

	require.NoError(t, s.Delete(1, "salgsopstilling.pdf"))
	assert.ErrorIs(t, s.Delete(1, "salgsopstilling.pdf"), ErrNotFound)

	require.NoError(t, s.DeleteAll(1))
	files, err = s.List(1)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStore_RejectsTraversal(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)

	name, err := s.Save(2, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "passwd", name)
	_, err = os.Stat(filepath.Join(root, "2", "passwd"))
	assert.NoError(t, err)

	for _, bad := range []string{"", ".", "..", "/"} {
		_, err := s.Save(2, bad, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", bad)
	}

	_, err = s.Path(2, "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}
