package i18n

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

const enYAML = `
API_HTTP_ERROR_SERVER_BAD_REQUEST: The request could not be processed
OFFER:
  LABEL_EMAIL: Email
  LOCATION:
    LABEL: Location
RETRIES: 3
EMPTY:
`

func TestLoad_FlattensNestedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.yaml")
	require.NoError(t, os.WriteFile(path, []byte(enYAML), 0600))

	c, err := Load(context.Background(), FileSource(path))
	require.NoError(t, err)
	assert.Equal(t, "The request could not be processed", c.Resolve("API_HTTP_ERROR_SERVER_BAD_REQUEST"))
	assert.Equal(t, "Email", c.Resolve("OFFER.LABEL_EMAIL"))
	assert.Equal(t, "Location", c.Resolve("OFFER.LOCATION.LABEL"))
	assert.Equal(t, "3", c.Resolve("RETRIES"))
	assert.Equal(t, "", c.Resolve("EMPTY"))
	assert.Len(t, c.Keys(), 5)
}

func TestLoad_AcceptsJSON(t *testing.T) {
	src := func(context.Context) ([]byte, error) {
		return []byte(`{"LABEL_EMAIL": "Correo", "NESTED": {"KEY": "valor"}}`), nil
	}
	c, err := Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "Correo", c.Resolve("LABEL_EMAIL"))
	assert.Equal(t, "valor", c.Resolve("NESTED.KEY"))
}

func TestResolve_UnknownKeyFallsBackToKey(t *testing.T) {
	c := NewCatalog(map[string]string{"A": "a"})
	assert.Equal(t, "MISSING_KEY", c.Resolve("MISSING_KEY"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), FileSource(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "read catalog")

	_, err = Load(context.Background(), func(context.Context) ([]byte, error) { return []byte("a: [1, 2]"), nil })
	assert.ErrorContains(t, err, "lists are not supported")

	_, err = Load(context.Background(), func(context.Context) ([]byte, error) { return []byte("a: b: c"), nil })
	assert.ErrorContains(t, err, "parse catalog")
}

func TestReload_KeepsPreviousOnError(t *testing.T) {
	calls := 0
	src := func(context.Context) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("GREETING: hello"), nil
		}
		return nil, errors.New("boom")
	}
	c, err := Load(context.Background(), src)
	require.NoError(t, err)

	assert.Error(t, c.Reload(context.Background()))
	assert.Equal(t, "hello", c.Resolve("GREETING"))
}

func TestReload_WithoutSource(t *testing.T) {
	assert.Error(t, NewCatalog(nil).Reload(context.Background()))
}

func TestObjectSource(t *testing.T) {
	store := &mockStore{}
	store.On("Download", mock.Anything, "i18n/es.yaml").
		Return(io.NopCloser(bytes.NewBufferString("LABEL_EMAIL: Correo")), nil).Once()

	c, err := Load(context.Background(), ObjectSource(store, "i18n/es.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Correo", c.Resolve("LABEL_EMAIL"))
	store.AssertExpectations(t)
}

func TestObjectSource_DownloadError(t *testing.T) {
	store := &mockStore{}
	store.On("Download", mock.Anything, "k").Return(nil, errors.New("no such key"))

	_, err := Load(context.Background(), ObjectSource(store, "k"))
	assert.ErrorContains(t, err, "no such key")
}

func TestParseFieldLabels(t *testing.T) {
	labels, err := ParseFieldLabels([]byte("email: LABEL_EMAIL\nlocation: OFFER.LOCATION.LABEL\n"))
	require.NoError(t, err)
	key, ok := labels.Lookup("location")
	assert.True(t, ok)
	assert.Equal(t, "OFFER.LOCATION.LABEL", key)

	_, err = ParseFieldLabels([]byte("email: [a]"))
	assert.Error(t, err)
}

func TestLoadFieldLabels_MissingFile(t *testing.T) {
	_, err := LoadFieldLabels(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read field labels")
}
