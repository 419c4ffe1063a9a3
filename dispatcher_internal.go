package playground

import (
	"context"
	"fmt"
	"strings"

	"github.com/525411/solana-playground/internal/util"
	"github.com/525411/solana-playground/parse"
)

// suggestionThreshold is the maximum edit distance between an unmatched
// top-level token and a command name for the name to be suggested.
const suggestionThreshold = 2

func validateCommand(cmd *Command, level, maxDepth int) error {
	if level > maxDepth {
		return fmt.Errorf("%w: max command depth of %d exceeded", ErrInvalidCommand, maxDepth)
	}

	commandType := "command"
	if level > 0 {
		commandType = "sub-command"
	}
	if cmd.Name == "" {
		return fmt.Errorf("%w: the 'Name' property is missing from %s on level %d", ErrInvalidCommand, commandType, level)
	}

	container := len(cmd.Subcommands) > 0
	leaf := cmd.Run != nil
	switch {
	case container && leaf:
		return fmt.Errorf("%w: %s %q declares both subcommands and a run handler", ErrInvalidCommand, commandType, cmd.Name)
	case !container && !leaf:
		return fmt.Errorf("%w: %s %q declares neither subcommands nor a run handler", ErrInvalidCommand, commandType, cmd.Name)
	case container && len(cmd.Args) > 0:
		return fmt.Errorf("%w: %s %q declares an argument schema on a container", ErrInvalidCommand, commandType, cmd.Name)
	}

	argNames := make(map[string]struct{}, len(cmd.Args))
	for _, arg := range cmd.Args {
		if arg.Name == "" {
			return fmt.Errorf("%w: %s %q declares an unnamed argument", ErrInvalidCommand, commandType, cmd.Name)
		}
		if _, dup := argNames[arg.Name]; dup {
			return fmt.Errorf("%w: %s %q declares argument %q twice", ErrInvalidCommand, commandType, cmd.Name, arg.Name)
		}
		argNames[arg.Name] = struct{}{}
	}

	if level == 0 {
		cmd.path = cmd.Name
	}

	siblingNames := make(map[string]struct{}, len(cmd.Subcommands))
	for _, sub := range cmd.Subcommands {
		if _, dup := siblingNames[sub.Name]; dup {
			return fmt.Errorf("%w: %s %q declares sibling sub-commands named %q", ErrInvalidCommand, commandType, cmd.Name, sub.Name)
		}
		siblingNames[sub.Name] = struct{}{}
		sub.path = cmd.path + " " + sub.Name
		if err := validateCommand(sub, level+1, maxDepth); err != nil {
			return err
		}
	}

	return nil
}

// subcommand returns the first sub-command with a matching name, in
// declaration order.
func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}

	return nil
}

func (c *Command) subcommandNames() []string {
	names := make([]string, 0, len(c.Subcommands))
	for _, sub := range c.Subcommands {
		names = append(names, sub.Name)
	}

	return names
}

// drain services queued run requests in arrival order. Only one goroutine
// drains at a time; callers whose request lands on a busy queue simply wait
// for the active drainer to reach it.
func (d *Dispatcher) drain() {
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true
	for d.pending.Len() > 0 {
		next, _ := d.pending.PopFront()
		d.mu.Unlock()

		req := next.(*runRequest)
		req.result, req.err = d.dispatch(req)
		close(req.done)

		d.mu.Lock()
	}
	d.draining = false
	d.mu.Unlock()
}

// dispatch walks the token list against the registry. The walk maintains the
// currently resolved command, descending whenever the next token names one of
// its sub-commands; the first token that does not becomes the argument
// boundary and everything after the current index binds positionally.
func (d *Dispatcher) dispatch(req *runRequest) (any, error) {
	d.mu.Lock()
	top, err := d.resolveByNameLocked(req.tokens[0])
	if err != nil {
		suggestions := d.suggestNamesLocked(req.tokens[0])
		d.mu.Unlock()
		if len(suggestions) > 0 {
			return nil, fmt.Errorf("%w: %s. Did you mean one of: %s?",
				ErrCommandNotFound, req.tokens[0], strings.Join(suggestions, ", "))
		}
		return nil, err
	}
	d.mu.Unlock()

	d.notifier.Emit(RunStartEvent(top.Name), joinTokens(req.tokens))

	var (
		cmd       = top
		args      []string
		argsTaken bool
	)

	state := parse.NewState(req.tokens)
	for state.Advance() {
		next := state.Peek()
		if sub := cmd.subcommand(next); next != "" && sub != nil {
			cmd = sub
		} else if !argsTaken {
			args = state.Rest()
			argsTaken = true
			if len(args) > 0 && cmd.Run == nil {
				return nil, fmt.Errorf("%w: %q is not a subcommand of %s. Available subcommands: %s",
					ErrUnknownSubcommand, args[0], cmd.path, strings.Join(cmd.subcommandNames(), ", "))
			}
			if cmd.Run != nil && len(args) > len(cmd.Args) {
				return nil, fmt.Errorf("%w: %s takes at most %d argument(s), got %d",
					ErrTooManyArguments, cmd.path, len(cmd.Args), len(args))
			}
		}

		if err := runChecks(req.ctx, cmd); err != nil {
			return nil, err
		}

		if state.Pos() < state.Len()-1 && len(args) == 0 {
			continue
		}

		if cmd.Run == nil {
			d.logHelp(cmd)
			return nil, nil
		}

		bound, err := bindArgs(cmd.Args, args)
		if err != nil {
			return nil, err
		}

		result, err := d.invoke(req.ctx, cmd, &ParsedInput{Raw: req.raw, Args: bound})
		if err != nil {
			return nil, err
		}
		d.notifier.Emit(RunFinishEvent(top.Name), result)

		return result, nil
	}

	return nil, nil
}

// runChecks runs a command's pre-run checks sequentially, in declaration
// order. The first failing check aborts the dispatch.
func runChecks(ctx context.Context, cmd *Command) error {
	for _, check := range cmd.Checks {
		if err := check(ctx); err != nil {
			return err
		}
	}

	return nil
}

// bindArgs maps argument tokens onto named slots positionally: the i-th token
// binds to the i-th slot. Optional slots without a token are simply absent
// from the result. Values stay raw strings; interpretation is the handler's
// concern.
func bindArgs(specs []*Arg, tokens []string) (map[string]string, error) {
	bound := make(map[string]string, len(tokens))
	for i, spec := range specs {
		if i < len(tokens) {
			bound[spec.Name] = tokens[i]
			continue
		}
		if !spec.Optional {
			return nil, fmt.Errorf(FmtErrorWithString, ErrMissingArgument, spec.Name)
		}
	}

	return bound, nil
}

// invoke runs a leaf command's handler, converting a panic into an error so a
// misbehaving handler cannot wedge the run queue.
func (d *Dispatcher) invoke(ctx context.Context, cmd *Command, input *ParsedInput) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			switch v := r.(type) {
			case error:
				err = fmt.Errorf(FmtErrorWithString, ErrPanicInHandler, v.Error())
			default:
				err = fmt.Errorf("%w: %v", ErrPanicInHandler, v)
			}
		}
	}()

	return cmd.Run(ctx, input)
}

// logHelp writes the usage block for a container command reached without a
// terminal sub-command. Help is informational, not an error.
func (d *Dispatcher) logHelp(cmd *Command) {
	entries := make([]HelpEntry, 0, len(cmd.Subcommands))
	for _, sub := range cmd.Subcommands {
		entries = append(entries, HelpEntry{Name: sub.Name, Description: sub.Description})
	}

	d.mu.Lock()
	sink := d.logSink
	d.mu.Unlock()

	fmt.Fprint(sink, d.renderer.UsageBlock(cmd.path, entries))
}

func (d *Dispatcher) suggestNamesLocked(input string) []string {
	var suggestions []string
	for pair := d.registry.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Value.(*Command).Name
		if util.LevenshteinDistance(input, name) <= suggestionThreshold {
			suggestions = append(suggestions, name)
		}
	}

	return suggestions
}
