package imageload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 40, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProbeDecodesRemotePNG(t *testing.T) {
	data := pngBytes(t, 10, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(data)
	}))
	defer srv.Close()

	img, err := NewProbe().Probe(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestProbeRejectsHTMLResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<!DOCTYPE html><html><body>Not an image</body></html>"))
	}))
	defer srv.Close()

	_, err := NewProbe().Probe(srv.URL + "/cover.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")
}

func TestProbeRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewProbe().Probe(srv.URL + "/gone.webp")
	assert.Error(t, err)
}

func TestProbeMissingLocalFile(t *testing.T) {
	_, err := NewProbe().Probe(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestProbeDecodesLocalSVGAtViewBoxSize(t *testing.T) {
	svgPath := filepath.Join(t.TempDir(), "mark.svg")
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 48"><circle cx="32" cy="24" r="20" fill="#cc3344"/></svg>`
	require.NoError(t, os.WriteFile(svgPath, []byte(svg), 0644))

	img, err := NewProbe().Probe(svgPath)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestProbeSniffsSVGWithoutExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 32"><rect width="32" height="32"/></svg>`))
	}))
	defer srv.Close()

	img, err := NewProbe().Probe(srv.URL + "/asset")
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestProbeRejectsTruncatedImage(t *testing.T) {
	data := pngBytes(t, 10, 10)
	path := filepath.Join(t.TempDir(), "cut.png")
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0644))

	_, err := NewProbe().Probe(path)
	assert.Error(t, err)
}

func TestProbeDownscalesOversizedImage(t *testing.T) {
	data := pngBytes(t, 2000, 100)
	path := filepath.Join(t.TempDir(), "wide.png")
	require.NoError(t, os.WriteFile(path, data, 0644))

	img, err := NewProbe().Probe(path)
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Less(t, img.Bounds().Dy(), 100)
}
