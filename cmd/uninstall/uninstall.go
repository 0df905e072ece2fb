package uninstall

import (
	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/manager"
	"github.com/geode-sdk/installer/mansion"
	"github.com/geode-sdk/installer/platform"
	"github.com/geode-sdk/installer/provision"
	"github.com/pkg/errors"
)

var args = struct {
	game     *string
	saveData *bool
	purge    *bool
}{}

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("uninstall", "Remove the loader from game installations")
	args.game = cmd.Arg("game", "Directory of a specific installation (defaults to all recorded ones)").String()
	args.saveData = cmd.Flag("save-data", "Also delete the loader's save data").Bool()
	args.purge = cmd.Flag("purge", "Also remove the SDK payload and all installer state").Bool()
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.Must(Do(ctx, *args.game, *args.saveData, *args.purge))
}

func Do(ctx *mansion.Context, gameDir string, saveData bool, purge bool) error {
	ctx.LoadManager()
	consumer := comm.NewStateConsumer()

	targets := ctx.Manager.Installations()
	if gameDir != "" {
		targets = nil
		for _, inst := range ctx.Manager.Installations() {
			if inst.Path == gameDir {
				targets = append(targets, inst)
			}
		}
		if len(targets) == 0 {
			return errors.Errorf("no recorded installation at %s", gameDir)
		}
	}

	for _, inst := range targets {
		comm.Opf("Removing loader from %s", inst.Path)

		err := provision.UninstallFrom(inst, consumer)
		if err != nil {
			return err
		}
		ctx.Manager.Remove(inst)

		if saveData {
			deleteSaveData(ctx, inst)
		}
	}

	if purge {
		comm.Opf("Removing SDK payload and installer state")
		err := ctx.Manager.UninstallSDK()
		if err != nil {
			return err
		}
		// No point saving state into a directory we're about to
		// delete.
		return ctx.Manager.Delete()
	}

	ctx.SaveManager()

	comm.Statf("Removed loader from %d installation(s)", len(targets))
	return nil
}

func deleteSaveData(ctx *mansion.Context, inst manager.Installation) {
	err := provision.DeleteSaveDataFrom(platform.CurrentPaths(), inst)
	if err != nil {
		if errors.Cause(err) == provision.ErrSaveDataNotFound {
			comm.Logf("No save data found for %s", inst.Exe)
			return
		}
		comm.Warnf("Could not delete save data for %s: %s", inst.Exe, err)
		return
	}
	comm.Logf("Deleted save data for %s", inst.Exe)
}
