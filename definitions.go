package playground

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/ef-ds/deque"
	"github.com/iancoleman/strcase"
	orderedmap "github.com/wk8/go-ordered-map"
)

// RunFunc callback - specified on leaf commands and invoked once the command
// chain has been resolved and its arguments bound. The returned value is
// handed back to the caller of Execute and carried on the finish event.
type RunFunc func(ctx context.Context, input *ParsedInput) (any, error)

// CheckFunc is a pre-run check. All checks registered on a command must
// complete without error before its handler is allowed to run.
type CheckFunc func(ctx context.Context) error

// ValuesFunc resolves the accepted literal values of an argument. The list is
// used for completion and help only - it is never enforced at parse time.
// Resolution may be slow (network-backed lists); it is awaited only when a
// completion tree is built.
type ValuesFunc func(ctx context.Context) ([]string, error)

// ConfigureCommandFunc is used when defining Command options
type ConfigureCommandFunc func(command *Command)

// ConfigureArgFunc is used when defining Arg options
type ConfigureArgFunc func(arg *Arg)

// ConfigureDispatcherFunc is used when defining Dispatcher options
type ConfigureDispatcherFunc func(dispatcher *Dispatcher)

// NameConversionFunc converts an internal registry key to a display name
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToKebabCase converts a string to kebab case "my-command-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToLowerCase converts a string to lower case "mycommandname"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	DefaultCommandNameConverter = ToKebabCase
)

// Arg defines a positional argument slot of a leaf command
type Arg struct {
	Name     string
	Optional bool
	Values   ValuesFunc
}

// Command defines commands and sub-commands. A command is either a container
// (Subcommands set) or a leaf (Run set, optionally with Args) - never both.
// The shape is validated when the command is registered.
type Command struct {
	Name        string
	Description string
	Subcommands []*Command
	Args        []*Arg
	Run         RunFunc
	Checks      []CheckFunc

	path string
}

// ParsedInput is handed to a leaf command's handler: the original input line
// and the bound arguments. Only supplied arguments are present in Args.
type ParsedInput struct {
	Raw  string
	Args map[string]string
}

// Dispatcher owns the command registry and executes raw input lines against
// it. The registry is populated up front and frozen on first dispatch.
type Dispatcher struct {
	mu       sync.Mutex
	registry *orderedmap.OrderedMap // internal key -> *Command
	lookup   map[string]string      // display name -> internal key
	pending  *deque.Deque           // *runRequest, FIFO
	draining bool
	frozen   bool

	handleMu sync.Mutex
	handles  map[string]*Handle

	notifier      *Notifier
	renderer      *Renderer
	logSink       io.Writer
	nameConverter NameConversionFunc
}

var (
	ErrCommandNotFound   = errors.New("command not found")
	ErrUnknownSubcommand = errors.New("unknown subcommand")
	ErrTooManyArguments  = errors.New("too many arguments")
	ErrMissingArgument   = errors.New("missing argument")
	ErrInvalidCommand    = errors.New("invalid command")
	ErrRegistryFrozen    = errors.New("registry is frozen")
	ErrPanicInHandler    = errors.New("panic in command handler")
)

const (
	FmtErrorWithString = "%w: %s"
)

// maxNestingDepth bounds recursive command validation.
const maxNestingDepth = 64

// Lifecycle event channels are derived from the top-level command's display
// name by case-sensitive concatenation, no separator. External subscribers
// must use the same derivation to interoperate.
const (
	EventRunStartPrefix  = "ondidrunstart"
	EventRunFinishPrefix = "ondidrunfinish"
)

// RunStartEvent returns the start event channel name for a top-level command.
func RunStartEvent(name string) string {
	return EventRunStartPrefix + name
}

// RunFinishEvent returns the finish event channel name for a top-level command.
func RunFinishEvent(name string) string {
	return EventRunFinishPrefix + name
}

type runRequest struct {
	ctx    context.Context
	tokens []string
	raw    string
	result any
	err    error
	done   chan struct{}
}
