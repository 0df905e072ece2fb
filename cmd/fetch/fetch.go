package fetch

import (
	"io"
	"os"

	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/mansion"
	"github.com/geode-sdk/installer/releases"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
)

var args = struct {
	extension *bool
	out       *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("fetch", "Download the latest loader release to a local file")
	args.extension = cmd.Flag("extension", "Fetch the .geode extension artifact instead of the loader").Bool()
	args.out = cmd.Flag("out", "File to write the artifact to (defaults to the asset name)").Short('o').String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.extension, *args.out))
}

func Do(ctx *mansion.Context, extension bool, out string) error {
	consumer := comm.NewStateConsumer()

	var res releases.FetchResult
	var err error
	if extension {
		res, err = Extension(ctx, consumer)
	} else {
		res, err = Loader(ctx, consumer)
	}
	if err != nil {
		return err
	}

	if out == "" {
		out = res.Asset.Name
	}
	err = os.Rename(res.Path, out)
	if err != nil {
		// the temp dir may sit on another filesystem, where rename
		// can't follow
		err = moveFile(res.Path, out)
	}
	if err != nil {
		return errors.Wrap(err, "moving downloaded artifact into place")
	}

	comm.Statf("Fetched %s %s to %s", res.Asset.Name, res.TagName, out)
	return nil
}

func moveFile(src string, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	if err != nil {
		return err
	}
	err = out.Close()
	if err != nil {
		return err
	}

	in.Close()
	return os.Remove(src)
}

type outcome struct {
	res releases.FetchResult
	err error
}

// Loader fetches the latest loader artifact for this platform,
// blocking until the fetch's callbacks have resolved.
func Loader(ctx *mansion.Context, consumer *state.Consumer) (releases.FetchResult, error) {
	return wait(consumer, func(params releases.FetchParams) {
		releases.FetchLatestLoader(params)
	}, ctx)
}

// Extension fetches the latest .geode extension artifact, blocking
// until the fetch's callbacks have resolved.
func Extension(ctx *mansion.Context, consumer *state.Consumer) (releases.FetchResult, error) {
	return wait(consumer, func(params releases.FetchParams) {
		releases.FetchLatestExtension(params)
	}, ctx)
}

func wait(consumer *state.Consumer, fetch func(releases.FetchParams), ctx *mansion.Context) (releases.FetchResult, error) {
	outc := make(chan outcome, 1)

	comm.StartProgress()
	fetch(releases.FetchParams{
		Client:   ctx.HTTPClient,
		Consumer: consumer,
		OnError: func(err error) {
			outc <- outcome{err: err}
		},
		OnFinished: func(res releases.FetchResult) {
			outc <- outcome{res: res}
		},
	})
	o := <-outc
	comm.EndProgress()

	return o.res, o.err
}
