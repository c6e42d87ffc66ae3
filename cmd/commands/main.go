package commands

import (
	"fmt"

	"github.com/devguild/devlin/common"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "commands",
	Usage:  "Synchronize slash commands",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "token",
			Usage:    "The bot's token",
			EnvVars:  []string{"TOKEN"},
			Required: true,
		},
		&cli.Uint64Flag{
			Name:    "app-id",
			Usage:   "The bot's application ID (defaults to the bot user's ID)",
			EnvVars: []string{"APP_ID"},
		},
		&cli.BoolFlag{
			Name:  "global",
			Usage: "Synchronize slash commands globally (mutually exclusive with --guild)",
		},
		&cli.Uint64Flag{
			Name:  "guild",
			Usage: "Synchronize slash commands to a specific guild",
		},
	},
}

func run(c *cli.Context) error {
	global := c.Bool("global")
	guild := c.Uint64("guild")
	if global && guild != 0 {
		return cli.Exit("`global` and `guild` are mutually exclusive", 1)
	}

	if !global && guild == 0 {
		return cli.Exit("Neither `global` nor `guild` were set", 1)
	}

	client := api.NewClient("Bot " + c.String("token")).WithContext(c.Context)

	appID := discord.AppID(c.Uint64("app-id"))
	if !appID.IsValid() {
		me, err := client.Me()
		if err != nil {
			fmt.Println("Error getting bot user:", err)
			return err
		}
		appID = discord.AppID(me.ID)
	}

	if global {
		return globalCommands(client, appID)
	}
	return guildCommands(client, appID, discord.GuildID(guild))
}

func globalCommands(client *api.Client, appID discord.AppID) error {
	_, err := client.BulkOverwriteCommands(appID, common.Commands)
	if err != nil {
		fmt.Println("Error overwriting commands:", err)
		return err
	}

	fmt.Printf("Wrote %v global commands!\n", len(common.Commands))
	return nil
}

func guildCommands(client *api.Client, appID discord.AppID, guildID discord.GuildID) error {
	_, err := client.BulkOverwriteGuildCommands(appID, guildID, common.Commands)
	if err != nil {
		fmt.Println("Error overwriting commands:", err)
		return err
	}

	fmt.Printf("Wrote %v guild commands in %v!\n", len(common.Commands), guildID)
	return nil
}
