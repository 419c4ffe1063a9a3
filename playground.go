// Package playground provides the terminal command processing core of Solana
// Playground: a registry of commands and sub-commands, a dispatcher which
// resolves and executes raw input lines against it, positional argument
// binding, lifecycle events and help rendering.
//
// Commands are registered once at startup under an internal key and the
// registry is treated as immutable afterwards. Execution of command bodies is
// serialized: at most one handler runs at a time, with queued invocations
// served in arrival order.
package playground

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ef-ds/deque"
	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/525411/solana-playground/parse"
)

// NewDispatcher creates a Dispatcher with an empty registry. Configuration
// functions may override the log sink, renderer and name conversion strategy.
func NewDispatcher(configs ...ConfigureDispatcherFunc) *Dispatcher {
	d := &Dispatcher{
		registry:      orderedmap.New(),
		lookup:        map[string]string{},
		pending:       deque.New(),
		handles:       map[string]*Handle{},
		notifier:      NewNotifier(),
		renderer:      NewRenderer(),
		logSink:       os.Stdout,
		nameConverter: DefaultCommandNameConverter,
	}

	for _, config := range configs {
		config(d)
	}

	return d
}

// RegisterCommand adds a command chain to the registry under an internal key.
// The command's display name defaults to the converted key when unset.
// Registration fails once the dispatcher has begun executing input.
func (d *Dispatcher) RegisterCommand(key string, cmd *Command) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.frozen {
		return fmt.Errorf(FmtErrorWithString, ErrRegistryFrozen, key)
	}
	if key == "" {
		return fmt.Errorf("%w: registry key is empty", ErrInvalidCommand)
	}
	if _, found := d.registry.Get(key); found {
		return fmt.Errorf("%w: key %q is already registered", ErrInvalidCommand, key)
	}
	if cmd == nil {
		return fmt.Errorf("%w: nil command for key %q", ErrInvalidCommand, key)
	}

	if cmd.Name == "" {
		cmd.Name = d.nameConverter(key)
	}
	if _, found := d.lookup[cmd.Name]; found {
		return fmt.Errorf("%w: name %q is already registered", ErrInvalidCommand, cmd.Name)
	}

	if err := validateCommand(cmd, 0, maxNestingDepth); err != nil {
		return err
	}

	d.registry.Set(key, cmd)
	d.lookup[cmd.Name] = key

	return nil
}

// ResolveByName returns the top-level command with the given display name.
// Matching is an exact string comparison against top-level names only.
func (d *Dispatcher) ResolveByName(name string) (*Command, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.resolveByNameLocked(name)
}

func (d *Dispatcher) resolveByNameLocked(name string) (*Command, error) {
	key, found := d.lookup[name]
	if !found {
		return nil, fmt.Errorf(FmtErrorWithString, ErrCommandNotFound, name)
	}
	cmd, _ := d.registry.Get(key)

	return cmd.(*Command), nil
}

// ListNames returns the display names of all top-level commands in
// registration order.
func (d *Dispatcher) ListNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	names := make([]string, 0, d.registry.Len())
	for pair := d.registry.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Value.(*Command).Name)
	}

	return names
}

// Execute tokenizes a raw input line and dispatches it: the first token
// selects a top-level command, subsequent tokens descend through sub-commands
// and the remainder binds to the resolved command's argument slots. The
// handler's result is returned to the caller.
//
// Blank input is a no-op. At most one handler body is in flight at a time;
// concurrent calls are queued and served in arrival order. Execute must not
// be called from inside a running handler - the nested call would wait on the
// queue the handler itself occupies.
func (d *Dispatcher) Execute(ctx context.Context, input string) (any, error) {
	tokens := parse.Split(input)
	if len(tokens) == 0 {
		return nil, nil
	}

	req := &runRequest{
		ctx:    ctx,
		tokens: tokens,
		raw:    input,
		done:   make(chan struct{}),
	}

	d.mu.Lock()
	d.frozen = true
	d.pending.PushBack(req)
	d.mu.Unlock()

	d.drain()
	<-req.done

	return req.result, req.err
}

// Subscribe registers a callback on a derived lifecycle event channel (see
// RunStartEvent and RunFinishEvent). The returned function deregisters it.
func (d *Dispatcher) Subscribe(event string, callback func(payload any)) func() {
	return d.notifier.Subscribe(event, callback)
}

// OnDidRunStart subscribes to the start event of a top-level command. The
// callback receives the executed input line.
func (d *Dispatcher) OnDidRunStart(name string, callback func(input string)) func() {
	return d.notifier.Subscribe(RunStartEvent(name), func(payload any) {
		input, _ := payload.(string)
		callback(input)
	})
}

// OnDidRunFinish subscribes to the finish event of a top-level command. The
// callback receives the handler's result.
func (d *Dispatcher) OnDidRunFinish(name string, callback func(result any)) func() {
	return d.notifier.Subscribe(RunFinishEvent(name), callback)
}

// SetLogSink redirects help and usage output. Defaults to os.Stdout.
func (d *Dispatcher) SetLogSink(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logSink = w
}

// WithLogSink sets the writer help and usage output is logged to.
func WithLogSink(w io.Writer) ConfigureDispatcherFunc {
	return func(dispatcher *Dispatcher) {
		dispatcher.logSink = w
	}
}

// WithNameConverter sets the key-to-display-name conversion strategy used for
// commands registered without an explicit name.
func WithNameConverter(converter NameConversionFunc) ConfigureDispatcherFunc {
	return func(dispatcher *Dispatcher) {
		dispatcher.nameConverter = converter
	}
}

// WithRenderer sets the help renderer.
func WithRenderer(renderer *Renderer) ConfigureDispatcherFunc {
	return func(dispatcher *Dispatcher) {
		dispatcher.renderer = renderer
	}
}

// joinTokens normalizes an input line to single-space separation. Dispatch
// semantics are defined over tokens, so the joined form is what lifecycle
// subscribers observe.
func joinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
