package releases_test

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/geode-sdk/installer/releases"
	"github.com/itchio/ox"
	"github.com/itchio/wharf/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestConsumer(t *testing.T) *state.Consumer {
	return &state.Consumer{
		OnMessage: func(lvl string, msg string) {
			t.Helper()
			t.Logf("[%s] %s", lvl, msg)
		},
	}
}

// outcome collects the terminal callback of one fetch, and counts how
// many times each one fired.
type outcome struct {
	res releases.FetchResult
	err error

	finishedCalls int
	errorCalls    int
}

func runFetch(t *testing.T, params releases.FetchParams) *outcome {
	o := &outcome{}
	done := make(chan struct{})

	params.Consumer = makeTestConsumer(t)
	params.OnFinished = func(res releases.FetchResult) {
		o.res = res
		o.finishedCalls++
		close(done)
	}
	params.OnError = func(err error) {
		o.err = err
		o.errorCalls++
		close(done)
	}

	releases.FetchLatest(params)

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("fetch never completed")
	}

	// a second terminal callback would panic on the closed channel,
	// give it a moment to misbehave
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, o.finishedCalls+o.errorCalls)
	return o
}

func releaseServer(t *testing.T, repo string, tagName string, assets string) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/repos/%s/releases/latest", repo), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": %q, "assets": %s}`, tagName, assets)
	})
	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "artifact bytes")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func Test_FetchLatest(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/geode-sdk/loader/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"tag_name": "v1.2.0",
			"assets": [
				{"name": "geode-v1.2.0-mac.zip", "browser_download_url": "%[1]s/download/mac"},
				{"name": "geode-v1.2.0-win.zip", "browser_download_url": "%[1]s/download/win"},
				{"name": "geode-v1.2.0-win-installer.exe", "browser_download_url": "%[1]s/download/exe"}
			]
		}`, server.URL)
	})
	mux.HandleFunc("/download/win", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "loader archive bytes")
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.NoError(t, o.err)
	defer os.Remove(o.res.Path)

	// first match in document order wins
	assert.Equal(t, "geode-v1.2.0-win.zip", o.res.Asset.Name)
	assert.Equal(t, "v1.2.0", o.res.TagName)

	data, err := ioutil.ReadFile(o.res.Path)
	require.NoError(t, err)
	assert.Equal(t, "loader archive bytes", string(data))
}

func Test_FetchLatestNoMatchingAsset(t *testing.T) {
	server := releaseServer(t, "geode-sdk/loader", "v1.2.0",
		`[{"name": "geode-v1.2.0-mac.zip", "browser_download_url": "http://unused"}]`)

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.Error(t, o.err)

	var noMatch *releases.NoMatchingAssetError
	require.True(t, errors.As(o.err, &noMatch))
	assert.Equal(t, "geode-sdk/loader", noMatch.Repo)
	assert.Equal(t, "win", noMatch.Marker)
}

func Test_FetchLatestNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.Error(t, o.err)
	assert.Contains(t, o.err.Error(), "404")
}

func Test_FetchLatestUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
	}))
	defer server.Close()

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.Error(t, o.err)
	assert.Contains(t, o.err.Error(), "unauthorized")
}

func Test_FetchLatestMalformedMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer server.Close()

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.Error(t, o.err)
	assert.Contains(t, o.err.Error(), "parse release metadata")
}

func Test_FetchProgressReachesEnd(t *testing.T) {
	payload := make([]byte, 256*1024)
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/geode-sdk/api/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": "v2.0.0", "assets": [{"name": "geode-api.geode", "browser_download_url": "%s/download/api"}]}`, server.URL)
	})
	mux.HandleFunc("/download/api", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	var lastProgress float64
	o := &outcome{}
	done := make(chan struct{})
	releases.FetchLatest(releases.FetchParams{
		Repo:    "geode-sdk/api",
		Marker:  ".geode",
		APIBase: server.URL,
		Consumer: &state.Consumer{
			OnProgress: func(alpha float64) {
				lastProgress = alpha
			},
		},
		OnFinished: func(res releases.FetchResult) {
			o.res = res
			close(done)
		},
		OnError: func(err error) {
			o.err = err
			close(done)
		},
	})

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("fetch never completed")
	}
	require.NoError(t, o.err)
	defer os.Remove(o.res.Path)

	assert.InDelta(t, 1.0, lastProgress, 0.001)

	stats, err := os.Stat(o.res.Path)
	require.NoError(t, err)
	assert.EqualValues(t, len(payload), stats.Size())
}

func Test_FetchInterruptedLeavesNoTempFile(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/geode-sdk/loader/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"tag_name": "v1.2.0", "assets": [{"name": "geode-v1.2.0-win.zip", "browser_download_url": "%s/download/win"}]}`, server.URL)
	})
	mux.HandleFunc("/download/win", func(w http.ResponseWriter, r *http.Request) {
		// announce more than we deliver, so the transfer dies mid-copy
		w.Header().Set("Content-Length", "4096")
		w.Write([]byte("just a few bytes"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	before, err := filepath.Glob(filepath.Join(os.TempDir(), "geode-artifact-*"))
	require.NoError(t, err)

	o := runFetch(t, releases.FetchParams{
		Repo:    "geode-sdk/loader",
		Marker:  "win",
		APIBase: server.URL,
	})
	require.Error(t, o.err)

	after, err := filepath.Glob(filepath.Join(os.TempDir(), "geode-artifact-*"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_AssetMarker(t *testing.T) {
	assert.Equal(t, "win", releases.AssetMarker(&ox.Runtime{Platform: ox.PlatformWindows}))
	assert.Equal(t, "mac", releases.AssetMarker(&ox.Runtime{Platform: ox.PlatformOSX}))
	assert.Equal(t, "", releases.AssetMarker(&ox.Runtime{Platform: ox.PlatformLinux}))
}
