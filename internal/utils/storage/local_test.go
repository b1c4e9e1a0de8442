package storage

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/testutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "/images")

	file := testutil.NewFileHeader(t, "image", "Photo.PNG", testutil.PNGBytes)

	key, err := store.UploadFile("recipe-1", file, "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/recipe-1.png", key)

	_, err = os.Stat(filepath.Join(root, "recipes", "recipe-1.png"))
	require.NoError(t, err)

	link := store.GetPublicLinkKey(key)
	assert.Equal(t, "/images/recipes/recipe-1.png", link)
	assert.Equal(t, key, store.GetObjectKeyFromLink(link))

	require.NoError(t, store.DeleteFile(key))
	_, err = os.Stat(filepath.Join(root, "recipes", "recipe-1.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, store.DeleteFile(key))
}

func TestLocalStorage_ExtensionFollowsContent(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, "/images")

	file := testutil.NewFileHeader(t, "image", "holiday.png", testutil.JPEGBytes)

	key, err := store.UploadFile("recipe-3", file, "recipes", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "recipes/recipe-3.jpg", key)

	_, err = os.Stat(filepath.Join(root, "recipes", "recipe-3.jpg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "recipes", "recipe-3.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsNonImage(t *testing.T) {
	store := NewLocalStorage(t.TempDir(), "/images")
	file := testutil.NewFileHeader(t, "image", "notes.png", []byte("just some text"))

	_, err := store.UploadFile("recipe-2", file, "recipes", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}

func TestLocalStorage_GetObjectKeyFromLink(t *testing.T) {
	store := NewLocalStorage(t.TempDir(), "images/")

	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "own link", link: "/images/recipes/a.png", want: "recipes/a.png"},
		{name: "foreign url", link: "https://example.com/a.png", want: ""},
		{name: "path traversal", link: "/images/../config.yaml", want: ""},
		{name: "empty", link: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.GetObjectKeyFromLink(tt.link))
		})
	}
}
