package iojson

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name string `json:"name"`
}

func decodeDoc(r io.Reader) (doc, error) {
	var d doc
	err := json.NewDecoder(r).Decode(&d)
	return d, err
}

func TestInputReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"ep-1"}`), 0o644))

	got, err := InputReader[doc]{Decode: decodeDoc}.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "ep-1", got.Name)
}

func TestInputReader_MissingFile(t *testing.T) {
	_, err := InputReader[doc]{Decode: decodeDoc}.Read(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorContains(t, err, "open file")
}

func TestInputReader_Pipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	go func() {
		_, _ = w.Write([]byte(`{"name":"piped"}`))
		_ = w.Close()
	}()

	got, err := InputReader[doc]{Decode: decodeDoc, In: r}.Read(Stdin)
	require.NoError(t, err)
	assert.Equal(t, "piped", got.Name)
}

func TestInputReader_DecodeError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	_, err := InputReader[doc]{Decode: decodeDoc}.Read(path)
	require.ErrorContains(t, err, "decode JSON")
}
