package launcher

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-primlist/flags"
)

// launcher carries state set up in the app's Before hook.
type launcher struct {
	cfg Config
	log *logrus.Logger

	// hooks are attached to the logger next to the Sentry hook.
	hooks []logrus.Hook
}

func newApp() *cli.App {
	return (&launcher{}).app()
}

func (l *launcher) app() *cli.App {
	app := flags.NewApp()
	app.Flags = flags.CommonFlags()
	app.Before = l.setup
	app.Commands = []cli.Command{
		l.encodeCommand(),
		l.decodeCommand(),
		l.inspectCommand(),
	}
	return app
}

// Launch runs the CLI with the given arguments, args[0] being the program name.
func Launch(args []string) error {
	return newApp().Run(args)
}

func (l *launcher) setup(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}

	out := ctx.App.ErrWriter
	if out == nil {
		out = os.Stderr
	}
	logger, err := newLogger(cfg.Logging, out)
	if err != nil {
		return err
	}

	for _, h := range l.hooks {
		logger.AddHook(h)
	}

	l.cfg = cfg
	l.log = logger
	l.log.WithFields(logrus.Fields{
		"config":    ctx.GlobalString("config"),
		"verbosity": cfg.Logging.Verbosity,
	}).Debug("configuration loaded")
	return nil
}

// logged reports a failed command at error level, which is what reaches
// Sentry, and passes the error on to the caller.
func (l *launcher) logged(name string, action func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		err := action(ctx)
		if err != nil {
			l.log.WithError(err).WithField("command", name).Error("command failed")
		}
		return err
	}
}
