package playground

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCompletionTree_MirrorsCommandNesting(t *testing.T) {
	d := NewDispatcher()

	err := d.RegisterCommand("build", NewCommand(
		WithName("build"),
		WithArgs(
			NewArg(WithArgName("target"), SetOptional(true), WithValues(StaticValues("sbf", "bpf"))),
			NewArg(WithArgName("profile"), SetOptional(true)),
		),
		WithCallback(echoHandler(nil)),
	))
	assert.Nil(t, err)

	err = d.RegisterCommand("wallet", NewCommand(
		WithName("wallet"),
		WithSubcommands(
			NewCommand(WithName("connect"), WithCallback(echoHandler(nil))),
			NewCommand(
				WithName("import"),
				WithArgs(NewArg(WithArgName("format"), WithValues(StaticValues("json", "base58")))),
				WithCallback(echoHandler(nil)),
			),
		),
	))
	assert.Nil(t, err)

	tree, err := d.BuildCompletionTree(context.Background())
	assert.Nil(t, err)

	expected := map[string]any{
		"build": map[string]any{
			"0": []string{"sbf", "bpf"},
			// "profile" has no values provider, so position 1 is absent
		},
		"wallet": map[string]any{
			"connect": map[string]any{},
			"import": map[string]any{
				"0": []string{"json", "base58"},
			},
		},
	}
	assert.Equal(t, expected, tree)
}

func TestBuildCompletionTree_ResolvesAsyncValues(t *testing.T) {
	d := NewDispatcher()

	resolved := false
	err := d.RegisterCommand("cluster", NewCommand(
		WithName("cluster"),
		WithArgs(NewArg(WithArgName("moniker"), WithValues(func(ctx context.Context) ([]string, error) {
			resolved = true
			return []string{"devnet", "testnet", "mainnet-beta"}, nil
		}))),
		WithCallback(echoHandler(nil)),
	))
	assert.Nil(t, err)

	tree, err := d.BuildCompletionTree(context.Background())
	assert.Nil(t, err)
	assert.True(t, resolved, "value providers are awaited when the tree is built")
	assert.Equal(t, []string{"devnet", "testnet", "mainnet-beta"}, tree["cluster"].(map[string]any)["0"])
}

func TestBuildCompletionTree_ProviderErrorAbortsTheBuild(t *testing.T) {
	d := NewDispatcher()

	boom := errors.New("rpc unavailable")
	err := d.RegisterCommand("cluster", NewCommand(
		WithName("cluster"),
		WithArgs(NewArg(WithArgName("moniker"), WithValues(func(ctx context.Context) ([]string, error) {
			return nil, boom
		}))),
		WithCallback(echoHandler(nil)),
	))
	assert.Nil(t, err)

	tree, err := d.BuildCompletionTree(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, tree)
}

func TestBuildCompletionTree_ValuesAreNeverEnforcedAtParseTime(t *testing.T) {
	d := NewDispatcher()

	err := d.RegisterCommand("build", NewCommand(
		WithName("build"),
		WithArgs(NewArg(WithArgName("target"), WithValues(StaticValues("sbf", "bpf")))),
		WithCallback(func(ctx context.Context, input *ParsedInput) (any, error) {
			return input.Args["target"], nil
		}),
	))
	assert.Nil(t, err)

	result, err := d.Execute(context.Background(), "build wasm")
	assert.Nil(t, err, "accepted-values lists are for completion only")
	assert.Equal(t, "wasm", result)
}
