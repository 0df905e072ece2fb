package status

import (
	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/mansion"
)

func Register(ctx *mansion.Context) {
	cmd := ctx.App.Command("status", "Show where the SDK lives and which installations have the loader")
	ctx.Register(cmd, do)
}

func do(ctx *mansion.Context) {
	ctx.LoadManager()
	mgr := ctx.Manager

	if mgr.FirstTime() {
		comm.Logf("First run: no previous installer state found")
	}
	comm.Logf("Data directory: %s", mgr.DataDirectory())

	if mgr.SDKInstalled() {
		comm.Logf("SDK installed at %s", mgr.SDKDirectory())
	} else {
		comm.Logf("SDK not installed (default location %s)", mgr.SDKDirectory())
	}

	installations := mgr.Installations()
	if len(installations) == 0 {
		comm.Logf("No game installations have the loader")
		return
	}

	comm.Logf("Loader applied to %d installation(s):", len(installations))
	for _, inst := range installations {
		comm.Logf("  %s (%s)", inst.Path, inst.Exe)
	}
}
