package releases

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/itchio/httpkit/timeout"
	"github.com/itchio/ox"
	"github.com/itchio/wharf/counter"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

// DefaultAPIBase is the release host all fetches go against unless a
// test points them elsewhere.
const DefaultAPIBase = "https://api.github.com"

const (
	// LoaderRepo publishes the loader archives, one per platform.
	LoaderRepo = "geode-sdk/loader"

	// ExtensionRepo publishes the .geode extension artifact.
	ExtensionRepo = "geode-sdk/api"

	// ExtensionAssetMarker matches the extension artifact on every
	// platform.
	ExtensionAssetMarker = ".geode"
)

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is the part of the "latest release" document we consume.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// NoMatchingAssetError means the latest release has no asset for us.
type NoMatchingAssetError struct {
	Repo   string
	Marker string
}

func (e *NoMatchingAssetError) Error() string {
	return fmt.Sprintf("no release asset matching %q found for %s", e.Marker, e.Repo)
}

// FetchResult is what a successful fetch hands back: where the
// artifact landed on disk, which asset it was, and the release it
// came from.
type FetchResult struct {
	Path    string
	Asset   Asset
	TagName string
}

// FetchParams describes one fetch: which repository, which asset
// marker, and where the outcome goes. Exactly one of OnFinished or
// OnError fires, once, from the fetch's own goroutine.
type FetchParams struct {
	Repo   string
	Marker string

	Consumer   *state.Consumer
	OnError    func(err error)
	OnFinished func(res FetchResult)

	// Client defaults to httpkit's timeout client.
	Client *http.Client

	// APIBase defaults to DefaultAPIBase. Tests point it at an
	// httptest server.
	APIBase string

	// Context cancels the download from outside. We never cancel
	// ourselves.
	Context context.Context
}

// AssetMarker returns the substring identifying this platform's
// loader artifact in release asset names, or "" if there is none.
func AssetMarker(rt *ox.Runtime) string {
	switch rt.Platform {
	case ox.PlatformWindows:
		return "win"
	case ox.PlatformOSX:
		return "mac"
	default:
		return ""
	}
}

// FetchLatest looks up the latest release of params.Repo, picks the
// first asset whose name contains params.Marker, and downloads it to
// a temporary file. It returns immediately; progress arrives through
// params.Consumer and the terminal state through OnFinished/OnError.
//
// Concurrent fetches are fully independent: no shared coordination,
// no de-duplication, and a failed fetch is terminal (re-invoke to
// retry).
func FetchLatest(params FetchParams) {
	go func() {
		res, err := fetchLatest(params)
		if err != nil {
			params.OnError(err)
			return
		}
		params.OnFinished(res)
	}()
}

// FetchLatestLoader fetches the loader archive for the current
// platform.
func FetchLatestLoader(params FetchParams) {
	rt := ox.CurrentRuntime()
	marker := AssetMarker(rt)
	if marker == "" {
		go params.OnError(errors.Errorf("no loader release assets exist for platform %s", rt.Platform))
		return
	}

	params.Repo = LoaderRepo
	params.Marker = marker
	FetchLatest(params)
}

// FetchLatestExtension fetches the .geode extension artifact, which
// is platform-independent.
func FetchLatestExtension(params FetchParams) {
	params.Repo = ExtensionRepo
	params.Marker = ExtensionAssetMarker
	FetchLatest(params)
}

func fetchLatest(params FetchParams) (FetchResult, error) {
	consumer := params.Consumer
	if consumer == nil {
		consumer = &state.Consumer{}
	}
	client := params.Client
	if client == nil {
		client = timeout.NewDefaultClient()
	}
	apiBase := params.APIBase
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}

	rel, err := lookupLatest(ctx, client, apiBase, params.Repo)
	if err != nil {
		return FetchResult{}, err
	}

	consumer.ProgressLabel(fmt.Sprintf("Downloading version %s", rel.TagName))
	consumer.Progress(0)

	asset, err := selectAsset(rel, params.Repo, params.Marker)
	if err != nil {
		return FetchResult{}, err
	}

	path, err := download(ctx, client, consumer, asset)
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{
		Path:    path,
		Asset:   *asset,
		TagName: rel.TagName,
	}, nil
}

func lookupLatest(ctx context.Context, client *http.Client, apiBase string, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", apiBase, repo)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req = req.WithContext(ctx)

	res, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err, "looking up latest release")
	}
	defer res.Body.Close()

	err = checkStatus(res)
	if err != nil {
		return nil, err
	}

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading release metadata")
	}

	rel := &Release{}
	err = json.Unmarshal(body, rel)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse release metadata")
	}

	return rel, nil
}

// selectAsset scans assets in document order and picks the first one
// whose name contains the marker.
func selectAsset(rel *Release, repo string, marker string) (*Asset, error) {
	for i := range rel.Assets {
		if strings.Contains(rel.Assets[i].Name, marker) {
			return &rel.Assets[i], nil
		}
	}
	return nil, &NoMatchingAssetError{Repo: repo, Marker: marker}
}

func download(ctx context.Context, client *http.Client, consumer *state.Consumer, asset *Asset) (string, error) {
	req, err := http.NewRequest("GET", asset.BrowserDownloadURL, nil)
	if err != nil {
		return "", errors.WithStack(err)
	}
	req = req.WithContext(ctx)

	res, err := client.Do(req)
	if err != nil {
		return "", classifyTransportError(ctx, err, fmt.Sprintf("downloading %s", asset.Name))
	}
	defer res.Body.Close()

	err = checkStatus(res)
	if err != nil {
		return "", err
	}

	dest, err := ioutil.TempFile("", "geode-artifact-")
	if err != nil {
		return "", errors.Wrap(err, "creating temporary download file")
	}
	defer dest.Close()

	totalBytes := res.ContentLength
	if totalBytes > 0 {
		consumer.ProgressLabel(fmt.Sprintf("Downloading %s (%s)", asset.Name, humanize.IBytes(uint64(totalBytes))))
	} else {
		// The transport can't predict the size, so there's no
		// percentage to compute.
		consumer.ProgressLabel("Beginning download")
		consumer.Progress(0)
	}

	cw := counter.NewWriterCallback(func(count int64) {
		if totalBytes > 0 {
			consumer.Progress(float64(count) / float64(totalBytes))
		} else {
			consumer.Progress(0)
		}
	}, dest)

	copiedBytes, err := io.Copy(cw, res.Body)
	if err != nil {
		dest.Close()
		os.Remove(dest.Name())
		return "", classifyTransportError(ctx, err, fmt.Sprintf("downloading %s", asset.Name))
	}

	consumer.Statf("Downloaded %s for %s", humanize.IBytes(uint64(copiedBytes)), asset.Name)
	return dest.Name(), nil
}

func checkStatus(res *http.Response) error {
	switch {
	case res.StatusCode == 200:
		return nil
	case res.StatusCode == 401 || res.StatusCode == 403:
		return errors.Errorf("unauthorized to fetch %s (HTTP %s)", res.Request.URL, res.Status)
	default:
		return errors.Errorf("fetching %s: got HTTP %s", res.Request.URL, res.Status)
	}
}

func classifyTransportError(ctx context.Context, err error, doing string) error {
	if ctx.Err() == context.Canceled {
		return errors.Errorf("%s: cancelled", doing)
	}
	if netErr, ok := errors.Cause(err).(interface{ Timeout() bool }); ok && netErr.Timeout() {
		return errors.Errorf("%s: timed out", doing)
	}
	return errors.Wrap(err, doing)
}
