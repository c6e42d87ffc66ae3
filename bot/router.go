package bot

import (
	"context"
	"runtime/debug"
	"sort"
	"sync"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/api"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"
	"go.uber.org/zap"
)

const (
	ErrUnknownCommand = errors.Sentinel("unknown command")
	ErrNotInGuild     = errors.Sentinel("command used outside of a server")
)

// HandlerFunc handles a single slash command invocation.
type HandlerFunc func(ctx *CommandContext) error

// CommandRecorder is notified of every command invocation that reaches a handler.
type CommandRecorder interface {
	IncCommand(name, status string)
}

// Command statuses passed to a CommandRecorder.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusPanic = "panic"
)

// Router dispatches slash commands to handlers registered by name.
// Commands are registered once at startup.
type Router struct {
	State *state.State

	// OnError is called with any error returned by (or recovered from) a handler.
	OnError  func(ctx *CommandContext, err error)
	Recorder CommandRecorder

	log *zap.SugaredLogger

	mu       sync.RWMutex
	commands map[string]*Command
}

// Command is a registered slash command.
type Command struct {
	Name      string
	guildOnly bool
	handler   HandlerFunc
}

// NewRouter returns a Router without any commands.
func NewRouter(s *state.State, log *zap.SugaredLogger) *Router {
	return &Router{
		State:    s,
		log:      log,
		commands: make(map[string]*Command),
	}
}

// Command returns the command with the given name, adding it if it doesn't exist yet.
func (r *Router) Command(name string) *Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmd, ok := r.commands[name]
	if !ok {
		cmd = &Command{Name: name}
		r.commands[name] = cmd
	}
	return cmd
}

// GuildOnly marks the command as only usable in servers.
func (c *Command) GuildOnly() *Command {
	c.guildOnly = true
	return c
}

// Exec sets the command's handler.
func (c *Command) Exec(fn HandlerFunc) {
	c.handler = fn
}

// Names returns the sorted names of all commands with a handler.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name, cmd := range r.commands {
		if cmd.handler != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Missing returns the names of commands in defs that don't have a handler.
func (r *Router) Missing(defs []api.CreateCommandData) (missing []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range defs {
		if cmd, ok := r.commands[def.Name]; !ok || cmd.handler == nil {
			missing = append(missing, def.Name)
		}
	}
	return missing
}

// Execute runs the handler for a command interaction. Any other interaction is ignored,
// as component interactions are consumed by whichever handler is waiting for them.
func (r *Router) Execute(ctx context.Context, ev *gateway.InteractionCreateEvent) (err error) {
	data, ok := ev.Data.(*discord.CommandInteraction)
	if !ok {
		return nil
	}

	r.mu.RLock()
	cmd, ok := r.commands[data.Name]
	r.mu.RUnlock()
	if !ok || cmd.handler == nil {
		r.log.Warnf("received unknown command %q from %v", data.Name, ev.SenderID())
		return errors.WithMessagef(ErrUnknownCommand, "command %q", data.Name)
	}

	cctx := newCommandContext(ctx, r.State, ev, data)
	if cmd.guildOnly && !ev.GuildID.IsValid() {
		err = cctx.ReplyEphemeral("This command can only be used in a server.")
		if err != nil {
			return errors.Wrap(err, "sending reply")
		}
		return ErrNotInGuild
	}

	status := StatusOK
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Errorf("panic in command %q: %v\n%s", data.Name, rec, debug.Stack())
			status = StatusPanic
			err = errors.Errorf("panic in command %q: %v", data.Name, rec)
		}

		if err != nil && r.OnError != nil {
			r.OnError(cctx, err)
		}

		if r.Recorder != nil {
			r.Recorder.IncCommand(data.Name, status)
		}
	}()

	err = cmd.handler(cctx)
	if err != nil {
		status = StatusError
		return errors.Wrapf(err, "running command %q", data.Name)
	}
	return nil
}
