package mansion

import (
	"fmt"
	"net/http"

	"github.com/geode-sdk/installer/comm"
	"github.com/geode-sdk/installer/manager"
	"github.com/geode-sdk/installer/platform"
	"github.com/itchio/httpkit/timeout"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type DoCommand func(ctx *Context)

// Context carries everything commands share: the kingpin app, the
// HTTP client, and the installation manager.
type Context struct {
	App      *kingpin.Application
	Commands map[string]DoCommand

	// VersionString is the complete version string
	VersionString string

	// Version is just the version number, as a string
	Version string

	// Quiet silences all output
	Quiet bool

	// Verbose enables chatty output
	Verbose bool

	// JSON enables machine-readable output
	JSON bool

	HTTPClient *http.Client

	Manager *manager.Manager
}

func NewContext(app *kingpin.Application) *Context {
	return &Context{
		App:        app,
		Commands:   make(map[string]DoCommand),
		HTTPClient: timeout.NewDefaultClient(),
		Manager:    manager.New(platform.CurrentPaths(), platform.CurrentRegistry()),
	}
}

func (ctx *Context) Register(clause *kingpin.CmdClause, do DoCommand) {
	ctx.Commands[clause.FullCommand()] = do
}

func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Verbose {
			comm.Dief("%+v", err)
		} else {
			comm.Dief("%s", err)
		}
	}
}

// LoadManager loads persisted installer state, once, before a command
// needs it.
func (ctx *Context) LoadManager() {
	ctx.Must(ctx.Manager.Load())
}

// SaveManager persists installer state. A registry failure after a
// successful file write is worth shouting about, but shouldn't undo
// an otherwise complete operation.
func (ctx *Context) SaveManager() {
	err := ctx.Manager.Save()
	if rwe, ok := err.(*manager.RegistryWriteError); ok {
		comm.Warnf("%s", rwe)
		return
	}
	ctx.Must(err)
}

func (ctx *Context) UserAgent() string {
	return fmt.Sprintf("geode-installer/%s", ctx.VersionString)
}
