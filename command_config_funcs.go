package playground

import "context"

// NewCommand creates and returns a new Command object. This function takes
// variadic ConfigureCommandFunc functions to customize the created command.
func NewCommand(configs ...ConfigureCommandFunc) *Command {
	cmd := &Command{
		Name:        "",
		Description: "",
		Subcommands: nil,
		Args:        nil,
		Run:         nil,
		Checks:      nil,
	}

	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// Set is a helper config function that allows setting multiple configuration
// functions on a command.
func (c *Command) Set(configs ...ConfigureCommandFunc) {
	for _, config := range configs {
		config(c)
	}
}

// WithName sets the display name for the command. Top-level commands
// registered without a name take the converted form of their registry key.
func WithName(name string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Name = name
	}
}

// WithCommandDescription sets the description for the command. The
// description is shown in sub-command help listings.
func WithCommandDescription(description string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Description = description
	}
}

// WithSubcommands associates nested sub-commands with a command, making it a
// container. A container cannot also carry a run handler.
func WithSubcommands(subcommands ...*Command) ConfigureCommandFunc {
	return func(command *Command) {
		command.Subcommands = append(command.Subcommands, subcommands...)
	}
}

// WithCallback sets the run handler for the command, making it a leaf.
func WithCallback(run RunFunc) ConfigureCommandFunc {
	return func(command *Command) {
		command.Run = run
	}
}

// WithArgs sets the positional argument schema of a leaf command, in binding
// order.
func WithArgs(args ...*Arg) ConfigureCommandFunc {
	return func(command *Command) {
		command.Args = append(command.Args, args...)
	}
}

// WithPreCheck appends pre-run checks. Checks run sequentially in the order
// they were added, before the handler.
func WithPreCheck(checks ...CheckFunc) ConfigureCommandFunc {
	return func(command *Command) {
		command.Checks = append(command.Checks, checks...)
	}
}

// NewArg creates a positional argument spec.
func NewArg(configs ...ConfigureArgFunc) *Arg {
	arg := &Arg{}

	for _, config := range configs {
		config(arg)
	}

	return arg
}

// WithArgName sets the argument's binding key.
func WithArgName(name string) ConfigureArgFunc {
	return func(arg *Arg) {
		arg.Name = name
	}
}

// SetOptional marks the argument as optional. Required arguments without a
// matching token fail the dispatch.
func SetOptional(optional bool) ConfigureArgFunc {
	return func(arg *Arg) {
		arg.Optional = optional
	}
}

// WithValues sets the argument's accepted-values provider, used for
// completion and help only.
func WithValues(values ValuesFunc) ConfigureArgFunc {
	return func(arg *Arg) {
		arg.Values = values
	}
}

// StaticValues adapts a fixed literal list to a ValuesFunc.
func StaticValues(values ...string) ValuesFunc {
	return func(context.Context) ([]string, error) {
		return values, nil
	}
}
