package main

import (
	"fmt"
	"log"
	"os"

	"github.com/geode-sdk/installer/cmd/fetch"
	"github.com/geode-sdk/installer/cmd/install"
	"github.com/geode-sdk/installer/cmd/status"
	"github.com/geode-sdk/installer/cmd/uninstall"
	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/mansion"
	"github.com/itchio/ox"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var (
	version = "head" // set by command-line on CI release builds
	app     = kingpin.New("geode-installer", "Install, update and remove the Geode SDK and mod loader")
)

var appArgs = struct {
	json       *bool
	quiet      *bool
	verbose    *bool
	noProgress *bool
}{
	app.Flag("json", "Enable machine-readable JSON-lines output").Short('j').Bool(),
	app.Flag("quiet", "Hide progress indicators & other extra info").Short('q').Bool(),
	app.Flag("verbose", "Display as much extra info as possible").Short('v').Bool(),
	app.Flag("no-progress", "Doesn't show progress indicators").Bool(),
}

func main() {
	log.SetFlags(0)

	app.HelpFlag.Short('h')
	app.Version(version)
	app.VersionFlag.Short('V')

	ctx := mansion.NewContext(app)
	ctx.Version = version
	ctx.VersionString = fmt.Sprintf("%s, built for %s", version, ox.CurrentRuntime())

	registerCommands(ctx)

	cmd, err := app.Parse(os.Args[1:])
	fullCmd := kingpin.MustParse(cmd, err)

	ctx.Quiet = *appArgs.quiet
	ctx.Verbose = *appArgs.verbose
	ctx.JSON = *appArgs.json
	comm.Configure(*appArgs.noProgress, *appArgs.quiet, *appArgs.verbose, *appArgs.json)

	do, ok := ctx.Commands[fullCmd]
	if !ok {
		comm.Dief("unknown command %s", fullCmd)
	}
	do(ctx)
}

func registerCommands(ctx *mansion.Context) {
	fetch.Register(ctx)
	install.Register(ctx)
	uninstall.Register(ctx)
	status.Register(ctx)
}
