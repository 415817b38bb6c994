package monitor

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/models"
)

func artworkWithPage(pageURL string) *models.Artwork {
	art := models.NewArtwork("Chalk Cliffs", "https://images.oldportfolio.example/gallery/chalk-cliffs.jpg")
	art.SourcePage = pageURL
	return art
}

func TestCheckSourcePrefersOGImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
			<meta property="og:image" content="https://cdn.example/full/cliffs.jpg">
		</head><body><img src="/thumb/cliffs-small.jpg"></body></html>`)
	}))
	defer srv.Close()

	status, err := NewSourceMonitor().CheckSource(artworkWithPage(srv.URL + "/works/cliffs"))
	require.NoError(t, err)

	assert.True(t, status.Available)
	assert.Equal(t, "https://cdn.example/full/cliffs.jpg", status.ImageURL)
	assert.True(t, status.Changed)
}

func TestCheckSourceFallsBackToLightboxThenImg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/lightbox" {
			fmt.Fprint(w, `<html><body><a data-src="/full/piece.jpg"><img src="/thumb/piece.jpg"></a></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><main><img src="/images/piece.jpg"></main></body></html>`)
	}))
	defer srv.Close()

	mon := NewSourceMonitor()

	status, err := mon.CheckSource(artworkWithPage(srv.URL + "/lightbox"))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/full/piece.jpg", status.ImageURL)

	status, err = mon.CheckSource(artworkWithPage(srv.URL + "/plain"))
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/images/piece.jpg", status.ImageURL)
}

func TestCheckSourceUnavailablePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	status, err := NewSourceMonitor().CheckSource(artworkWithPage(srv.URL + "/gone"))
	require.NoError(t, err)
	assert.False(t, status.Available)
	assert.Contains(t, status.Detail, "404")
}

func TestCheckDirectImageByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/real.jpg" {
			w.Header().Set("Content-Type", "image/jpeg")
			return
		}
		w.Header().Set("Content-Type", "text/html")
	}))
	defer srv.Close()

	mon := NewSourceMonitor()

	art := models.NewArtwork("Direct", srv.URL+"/real.jpg")
	status, err := mon.CheckSource(art)
	require.NoError(t, err)
	assert.True(t, status.Available)

	art = models.NewArtwork("Moved", srv.URL+"/moved.jpg")
	status, err = mon.CheckSource(art)
	require.NoError(t, err)
	assert.False(t, status.Available)
}

func TestCheckSourceNoLegacyReference(t *testing.T) {
	art := &models.Artwork{Title: "Local Only"}
	_, err := NewSourceMonitor().CheckSource(art)
	assert.Error(t, err)
}

func TestCheckAllSkipsLocalOnlyAndSurvivesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
	}))
	defer srv.Close()

	ok := models.NewArtwork("Reachable", srv.URL+"/a.png")
	dead := models.NewArtwork("Dead Host", "http://127.0.0.1:1/a.png")
	local := &models.Artwork{ID: "local", Title: "Local Only"}

	statuses := NewSourceMonitor().CheckAll([]*models.Artwork{ok, dead, local})

	require.Len(t, statuses, 2)
	assert.True(t, statuses[ok.ID].Available)
	assert.False(t, statuses[dead.ID].Available)
	_, present := statuses["local"]
	assert.False(t, present)
}

func TestAbsoluteURLResolution(t *testing.T) {
	mon := NewSourceMonitor()
	page := "https://gallery.example/works/piece"

	assert.Equal(t, "https://cdn.example/a.jpg", mon.absoluteURL(page, "https://cdn.example/a.jpg"))
	assert.Equal(t, "https://cdn.example/a.jpg", mon.absoluteURL(page, "//cdn.example/a.jpg"))
	assert.Equal(t, "https://gallery.example/full/a.jpg", mon.absoluteURL(page, "/full/a.jpg"))
	assert.Equal(t, "https://gallery.example/a.jpg", mon.absoluteURL(page, "a.jpg"))
}
