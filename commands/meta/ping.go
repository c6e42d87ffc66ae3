package meta

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
	"time"

	"github.com/devguild/devlin/bot"
	"github.com/devguild/devlin/common"
	"github.com/devguild/devlin/common/log"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"
)

func (bot *Bot) ping(ctx *bot.CommandContext) (err error) {
	// this will return 0ms until the first heartbeat is acknowledged
	latency := bot.Latency()

	stats := runtime.MemStats{}
	runtime.ReadMemStats(&stats)

	e := discord.Embed{
		Color: common.ColourPurple,
		Fields: []discord.EmbedField{
			{
				Name:   "Memory usage",
				Value:  fmt.Sprintf("%v / %v", humanize.Bytes(stats.Alloc), humanize.Bytes(stats.Sys)),
				Inline: true,
			},
			{
				Name:   "Goroutines",
				Value:  fmt.Sprint(runtime.NumGoroutine()),
				Inline: true,
			},
			{
				Name: "Uptime",
				Value: fmt.Sprintf(
					"%v\n(Since %v)",
					common.FormatDuration(time.Since(bot.Start)),
					bot.Start.Format("Jan _2 2006, 15:04:05 MST"),
				),
				Inline: true,
			},
		},
	}

	sysMem, err := mem.VirtualMemory()
	if err != nil {
		log.Errorf("getting system memory: %v", err)
	} else {
		e.Fields = append(e.Fields, discord.EmbedField{
			Name:   "System memory",
			Value:  fmt.Sprintf("%v / %v (%.1f%%)", humanize.Bytes(sysMem.Used), humanize.Bytes(sysMem.Total), sysMem.UsedPercent),
			Inline: true,
		})
	}

	err = ctx.Reply(pongMessage(latency), e)
	if err != nil {
		return err
	}

	log.Infof("Ping command used. Latency: %v", latency)
	return nil
}

func pongMessage(latency time.Duration) string {
	ms := float64(latency) / float64(time.Millisecond)
	ms = math.Round(ms*100) / 100

	return "🏓 Pong! Latency: " + strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}
