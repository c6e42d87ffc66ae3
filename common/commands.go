package common

import (
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
)

// Commands is the full set of slash commands the bot registers.
// Every command here must have a handler registered on the bot's router.
var Commands = []api.CreateCommandData{
	{
		Name:        "ping",
		Description: "Check the bot's latency",
	},
	{
		Name:                     "cleanup",
		Description:              "Cleanup guild members based on level and join date",
		DefaultMemberPermissions: discord.NewPermissions(discord.PermissionAdministrator),
	},
}
