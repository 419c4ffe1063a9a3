// Command playground is a small interactive shell over the command core. It
// wires a playground-flavored registry and reads lines from stdin until EOF
// or "exit".
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	playground "github.com/525411/solana-playground"
)

var log = logrus.New()

type session struct {
	connected bool
}

func main() {
	log.SetLevel(logrus.InfoLevel)

	d := playground.NewDispatcher(playground.WithLogSink(os.Stdout))
	sess := &session{}
	if err := register(d, sess); err != nil {
		log.WithError(err).Fatal("registry setup failed")
	}

	d.OnDidRunFinish("connect", func(result any) {
		log.WithField("result", result).Debug("connect finished")
	})

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()
	for {
		fmt.Print("$ ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}

		result, err := d.Execute(ctx, line)
		if err != nil {
			log.WithError(err).Error("command failed")
			continue
		}
		if result != nil {
			fmt.Println(result)
		}
	}
}

type registration struct {
	key string
	cmd *playground.Command
}

func register(d *playground.Dispatcher, sess *session) error {
	requireTerminal := func(context.Context) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("connect requires an interactive terminal")
		}
		return nil
	}
	requireConnection := func(context.Context) error {
		if !sess.connected {
			return fmt.Errorf("not connected, run connect first")
		}
		return nil
	}

	registrations := []registration{
		{"connect", playground.NewCommand(
			playground.WithCommandDescription("Connect the wallet"),
			playground.WithPreCheck(requireTerminal),
			playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
				fmt.Print("keypair passphrase: ")
				passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return nil, err
				}
				if len(passphrase) == 0 {
					return nil, fmt.Errorf("empty passphrase")
				}
				sess.connected = true
				return "connected", nil
			}),
		)},
		{"build", playground.NewCommand(
			playground.WithCommandDescription("Build the current project"),
			playground.WithArgs(playground.NewArg(
				playground.WithArgName("target"),
				playground.SetOptional(true),
				playground.WithValues(playground.StaticValues("sbf", "bpf")),
			)),
			playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
				target, supplied := input.Args["target"]
				if !supplied {
					target = "sbf"
				}
				return fmt.Sprintf("built for %s", target), nil
			}),
		)},
		{"deploy", playground.NewCommand(
			playground.WithCommandDescription("Deploy the current project"),
			playground.WithPreCheck(requireConnection),
			playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
				return "deployed", nil
			}),
		)},
		{"balance", playground.NewCommand(
			playground.WithCommandDescription("Show the wallet balance"),
			playground.WithPreCheck(requireConnection),
			playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
				return "0 SOL", nil
			}),
		)},
		{"epoch", playground.NewCommand(
			playground.WithCommandDescription("Epoch utilities"),
			playground.WithSubcommands(
				playground.NewCommand(
					playground.WithName("at"),
					playground.WithCommandDescription("Show the epoch active at a point in time"),
					playground.WithArgs(playground.NewArg(playground.WithArgName("when"))),
					playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
						at, err := dateparse.ParseLocal(input.Args["when"])
						if err != nil {
							return nil, fmt.Errorf("unparseable point in time %q: %w", input.Args["when"], err)
						}
						return epochAt(at), nil
					}),
				),
			),
		)},
		// Registered without an explicit name to pick up the kebab-case
		// display name "priority-fee".
		{"priorityFee", playground.NewCommand(
			playground.WithCommandDescription("Show the current priority fee estimate"),
			playground.WithCallback(func(ctx context.Context, input *playground.ParsedInput) (any, error) {
				return "5000 microlamports", nil
			}),
		)},
	}

	for _, r := range registrations {
		if err := d.RegisterCommand(r.key, r.cmd); err != nil {
			return err
		}
	}

	return nil
}

// epochAt maps a point in time to an epoch ordinal, assuming mainnet genesis
// and a flat two-day epoch duration.
func epochAt(at time.Time) int64 {
	genesis := time.Date(2020, time.March, 16, 0, 0, 0, 0, time.UTC)
	if at.Before(genesis) {
		return 0
	}
	return int64(at.Sub(genesis) / (48 * time.Hour))
}
