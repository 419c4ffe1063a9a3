package playground

import (
	"context"
	"fmt"
	"strings"
)

// Handle is the public face of a registered command, looked up by its
// internal registry key. Handles are built lazily on first access and
// memoized, so repeated lookups of the same key return the same handle.
type Handle struct {
	dispatcher *Dispatcher
	key        string
	cmd        *Command
}

// Command returns the handle for an internal registry key.
func (d *Dispatcher) Command(key string) (*Handle, error) {
	d.handleMu.Lock()
	defer d.handleMu.Unlock()

	if handle, found := d.handles[key]; found {
		return handle, nil
	}

	d.mu.Lock()
	registered, found := d.registry.Get(key)
	d.mu.Unlock()
	if !found {
		return nil, fmt.Errorf(FmtErrorWithString, ErrCommandNotFound, key)
	}

	handle := &Handle{dispatcher: d, key: key, cmd: registered.(*Command)}
	d.handles[key] = handle

	return handle, nil
}

// Name returns the command's display name.
func (h *Handle) Name() string {
	return h.cmd.Name
}

// Description returns the command's description.
func (h *Handle) Description() string {
	return h.cmd.Description
}

// Run executes the command through the dispatcher, so invocations take part
// in the same serialized run queue as raw input lines.
func (h *Handle) Run(ctx context.Context, args ...string) (any, error) {
	return h.dispatcher.Execute(ctx, strings.Join(append([]string{h.cmd.Name}, args...), " "))
}

// OnDidRunStart subscribes to the command's start event.
func (h *Handle) OnDidRunStart(callback func(input string)) func() {
	return h.dispatcher.OnDidRunStart(h.cmd.Name, callback)
}

// OnDidRunFinish subscribes to the command's finish event.
func (h *Handle) OnDidRunFinish(callback func(result any)) func() {
	return h.dispatcher.OnDidRunFinish(h.cmd.Name, callback)
}
