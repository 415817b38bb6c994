package fetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name       string
	resolved   string
	resolveErr error
	downloaded string
	downldErr  error
	calls      int
}

func (s *stubPlugin) Name() string { return s.name }

func (s *stubPlugin) ResolveImageURL(pageURL string) (string, error) {
	s.calls++
	return s.resolved, s.resolveErr
}

func (s *stubPlugin) DownloadImage(imageURL string) (string, error) {
	return s.downloaded, s.downldErr
}

func managerWith(plugins ...Plugin) *Manager {
	return &Manager{plugins: plugins}
}

func TestFetchFromPageUsesFirstSucceedingPlugin(t *testing.T) {
	broken := &stubPlugin{name: "broken", resolveErr: errors.New("parse failed")}
	working := &stubPlugin{name: "working", resolved: "https://cdn.example/a.jpg", downloaded: "/cache/a.png"}

	res, err := managerWith(broken, working).FetchFromPage("https://gallery.example/works/a")
	require.NoError(t, err)

	assert.Equal(t, "https://gallery.example/works/a", res.PageURL)
	assert.Equal(t, "https://cdn.example/a.jpg", res.ImageURL)
	assert.Equal(t, "/cache/a.png", res.ImagePath)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, working.calls)
}

func TestFetchFromPageSkipsPluginWhoseDownloadFails(t *testing.T) {
	resolvesButCannotDownload := &stubPlugin{
		name:      "half",
		resolved:  "https://cdn.example/a.jpg",
		downldErr: errors.New("connection reset"),
	}
	fallback := &stubPlugin{name: "fallback", resolved: "https://mirror.example/a.jpg", downloaded: "/cache/a.png"}

	res, err := managerWith(resolvesButCannotDownload, fallback).FetchFromPage("https://gallery.example/works/a")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example/a.jpg", res.ImageURL)
}

func TestFetchFromPageAllPluginsFail(t *testing.T) {
	broken := &stubPlugin{name: "broken", resolveErr: errors.New("nope")}
	_, err := managerWith(broken).FetchFromPage("https://gallery.example/works/a")
	assert.Error(t, err)
}

func TestDownloadDirect(t *testing.T) {
	failing := &stubPlugin{name: "failing", downldErr: errors.New("timeout")}
	working := &stubPlugin{name: "working", downloaded: "/cache/b.png"}

	path, err := managerWith(failing, working).DownloadDirect("https://cdn.example/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/cache/b.png", path)

	_, err = managerWith(failing).DownloadDirect("https://cdn.example/b.jpg")
	assert.Error(t, err)
}
