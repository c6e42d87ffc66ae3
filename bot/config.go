package bot

import (
	"io/fs"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v3/discord"
)

// ErrNoToken is returned by Validate if no Discord token is configured.
const ErrNoToken = errors.Sentinel("no Discord token configured")

type Config struct {
	Auth        AuthConfig        `toml:"auth"`
	Bot         BotConfig         `toml:"bot"`
	Leaderboard LeaderboardConfig `toml:"leaderboard"`
	Cleanup     CleanupConfig     `toml:"cleanup"`
}

type AuthConfig struct {
	Discord string `toml:"discord" env:"TOKEN"`
	// Leaderboard is sent as-is in the Authorization header.
	Leaderboard string `toml:"leaderboard" env:"ARCANE_BOT_AUTH_TOKEN"`
	Sentry      string `toml:"sentry" env:"SENTRY_DSN"`
}

type BotConfig struct {
	CommandsGuildID discord.GuildID `toml:"commands_guild_id" env:"COMMANDS_GUILD_ID"`
	NoSyncCommands  bool            `toml:"no_sync_commands" env:"NO_SYNC_COMMANDS"`
	// Activity is shown as "Watching <activity>". Empty disables the presence update.
	Activity string `toml:"activity" env:"ACTIVITY"`

	Debug   bool   `toml:"debug" env:"DEBUG"`
	LogFile string `toml:"log_file" env:"LOG_FILE"`

	// HTTPListen is the address of the status server. Empty disables it.
	HTTPListen string `toml:"http_listen" env:"HTTP_LISTEN"`
}

type LeaderboardConfig struct {
	BaseURL     string   `toml:"base_url" env:"LEADERBOARD_BASE_URL"`
	CommunityID string   `toml:"community_id" env:"LEADERBOARD_COMMUNITY_ID"`
	Referer     string   `toml:"referer" env:"LEADERBOARD_REFERER"`
	UserAgent   string   `toml:"user_agent" env:"LEADERBOARD_USER_AGENT"`
	Timeout     duration `toml:"timeout" env:"LEADERBOARD_TIMEOUT"`
}

type CleanupConfig struct {
	LevelThreshold int              `toml:"level_threshold" env:"CLEANUP_LEVEL_THRESHOLD"`
	Cutoff         time.Time        `toml:"cutoff" env:"CLEANUP_CUTOFF"`
	ExcludedRoles  []discord.RoleID `toml:"excluded_roles" env:"CLEANUP_EXCLUDED_ROLES" envSeparator:","`

	ConfirmTimeout  duration `toml:"confirm_timeout" env:"CLEANUP_CONFIRM_TIMEOUT"`
	PreviewSize     int      `toml:"preview_size" env:"CLEANUP_PREVIEW_SIZE"`
	MaxErrorDetails int      `toml:"max_error_details" env:"CLEANUP_MAX_ERROR_DETAILS"`

	// Notice is sent to members before they're kicked.
	Notice string `toml:"notice" env:"CLEANUP_NOTICE"`
	// Reason is the audit log reason for kicks.
	Reason string `toml:"reason" env:"CLEANUP_REASON"`
}

// duration is a time.Duration that can be read from TOML and the environment as a string like "3m".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns d as a time.Duration.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// DefaultConfig returns the configuration used for anything not set in the config file or environment.
func DefaultConfig() Config {
	return Config{
		Bot: BotConfig{
			CommandsGuildID: 1302533051405963264,
			Activity:        "over .gg/peretas",
		},
		Leaderboard: LeaderboardConfig{
			BaseURL:     "https://arcane.bot/api",
			CommunityID: "1050867077742870558",
			Referer:     "https://arcane.bot/leaderboard/thedevguild",
			UserAgent:   "Arcane-Bot-5.0",
			Timeout:     duration(30 * time.Second),
		},
		Cleanup: CleanupConfig{
			LevelThreshold: 12,
			Cutoff:         time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
			ExcludedRoles: []discord.RoleID{
				1071866368372244661,
				1050868103350861965,
				1311580509452898335,
				1050867231761911889,
			},
			ConfirmTimeout:  duration(3 * time.Minute),
			PreviewSize:     10,
			MaxErrorDetails: 5,
			Notice: "Dev Guild | You have been kicked. Unfortunately, you did not reach the level requirement " +
				"to be a member. You may reapply at https://discord.gg/devguild",
			Reason: "Did not meet level requirements",
		},
	}
}

// ReadConfig reads the configuration. Defaults are overridden by the TOML file at path,
// which may not exist, and that in turn by environment variables.
func ReadConfig(path string) (c Config, err error) {
	c = DefaultConfig()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, errors.Wrap(err, "read config file")
		}

		if err == nil {
			err = toml.Unmarshal(b, &c)
			if err != nil {
				return c, errors.Wrap(err, "unmarshal config")
			}
		}
	}

	err = env.Parse(&c)
	if err != nil {
		return c, errors.Wrap(err, "parse environment")
	}
	return c, nil
}

// Validate returns an error if c can't be used to run the bot.
func (c Config) Validate() error {
	if c.Auth.Discord == "" {
		return ErrNoToken
	}
	if c.Cleanup.LevelThreshold < 0 {
		return errors.Errorf("invalid level threshold %v", c.Cleanup.LevelThreshold)
	}
	return nil
}
