package flags

import (
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

// NewApp returns the base CLI application. Callers attach flags and commands.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "primlist"
	app.Usage = "encode, decode and inspect primitive list snapshots"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}
