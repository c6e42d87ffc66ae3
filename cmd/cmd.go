package cmd

import (
	"io/fs"
	"os"

	"emperror.dev/errors"
	"github.com/devguild/devlin/cmd/bot"
	"github.com/devguild/devlin/cmd/commands"
	"github.com/devguild/devlin/cmd/leaderboard"
	"github.com/devguild/devlin/cmd/preview"
	"github.com/devguild/devlin/common"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:    "devlin",
	Usage:   "Moderation bot for the Dev Guild",
	Version: common.Version(),

	Before: loadEnv,

	Commands: []*cli.Command{
		bot.Command,
		commands.Command,
		leaderboard.Command,
		preview.Command,
	},
}

// loadEnv loads a .env file in the working directory, if one exists.
func loadEnv(*cli.Context) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "loading .env")
	}
	return nil
}

func Run() error {
	return app.Run(os.Args)
}
