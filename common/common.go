package common

import "github.com/diamondburned/arikawa/v3/discord"

// Colours used in embeds
const (
	ColourPurple discord.Color = 0x9b59b6
	ColourRed    discord.Color = 0xe74c3c
)
