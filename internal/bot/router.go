package bot

import (
	"strings"

	"github.com/MuizKmz/discord-bot-app/internal/handler"
	"github.com/MuizKmz/discord-bot-app/internal/metrics"
)

// CommandPrefix marks a message as a command.
const CommandPrefix = "!"

// Router maps commands to handlers. Messages that are not commands go to
// the fallback.
type Router struct {
	commands map[string]handler.HandlerFunc
	fallback handler.HandlerFunc
	global   []Middleware
	metrics  *metrics.Metrics
}

// newRouter creates an empty Router. global middleware wraps every
// dispatch, commands and fallback alike.
func newRouter(m *metrics.Metrics, global ...Middleware) *Router {
	return &Router{
		commands: make(map[string]handler.HandlerFunc),
		global:   global,
		metrics:  m,
	}
}

// Handle registers fn under every name, wrapped in mws.
func (r *Router) Handle(names []string, fn handler.HandlerFunc, mws ...Middleware) {
	wrapped := chain(fn, mws...)
	for _, name := range names {
		r.commands[strings.ToLower(name)] = wrapped
	}
}

// Fallback sets the handler for non-command text.
func (r *Router) Fallback(fn handler.HandlerFunc) {
	r.fallback = fn
}

// Commands returns the registered command names.
func (r *Router) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the handler for c.
func (r *Router) Dispatch(c handler.Context) error {
	return chain(r.route, r.global...)(c)
}

func (r *Router) route(c handler.Context) error {
	cmd, _ := ParseCommand(c.Text())
	if cmd != "" {
		fn, ok := r.commands[cmd]
		if !ok {
			return nil
		}
		if r.metrics != nil {
			r.metrics.Commands.WithLabelValues(cmd).Inc()
		}
		return fn(c)
	}
	if r.fallback == nil {
		return nil
	}
	return r.fallback(c)
}

// ParseCommand splits "!addword Seri exclusive" into "!addword" and its
// arguments. Non-command text returns an empty command.
func ParseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], CommandPrefix) || fields[0] == CommandPrefix {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
