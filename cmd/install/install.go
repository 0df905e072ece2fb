package install

import (
	"os"
	"path/filepath"

	"github.com/geode-sdk/installer/cmd/fetch"
	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/mansion"
	"github.com/geode-sdk/installer/provision"
	"github.com/pkg/errors"
)

var args = struct {
	game *string
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("install", "Apply the loader to a game installation")
	args.game = cmd.Arg("game", "Path to the game executable (auto-detected via Steam if omitted)").String()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.game))
}

func Do(ctx *mansion.Context, gamePath string) error {
	ctx.LoadManager()
	consumer := comm.NewStateConsumer()

	if gamePath == "" {
		found, ok := provision.FindGamePath()
		if !ok {
			return errors.New("could not find the game automatically, pass the path to its executable")
		}
		comm.Opf("Found game at %s", found)
		gamePath = found
	}

	conflicts := provision.DetectConflictingLoaders(filepath.Dir(gamePath))
	if conflicts != provision.ConflictNone {
		comm.Warnf("Found other mod loaders in the game directory: %s", conflicts)
		comm.Warn("Consider uninstalling them first, they won't work alongside Geode")
	}

	loaderRes, err := fetch.Loader(ctx, consumer)
	if err != nil {
		return err
	}
	defer os.Remove(loaderRes.Path)

	inst, err := provision.InstallLoaderFor(ctx.Manager, gamePath, loaderRes.Path, consumer)
	if err != nil {
		return err
	}

	extRes, err := fetch.Extension(ctx, consumer)
	if err != nil {
		return err
	}
	defer os.Remove(extRes.Path)

	err = provision.InstallExtensionFor(inst, extRes.Path, extRes.Asset.Name)
	if err != nil {
		return err
	}

	ctx.SaveManager()

	comm.Statf("Installed loader %s for %s", loaderRes.TagName, gamePath)
	return nil
}
