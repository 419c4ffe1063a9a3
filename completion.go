package playground

import (
	"context"
	"strconv"
)

// BuildCompletionTree derives the completion data consumed by an external
// input-completion UI. The tree mirrors the registry's nesting exactly:
// container nodes are keyed by their sub-command names; a leaf node carries,
// for every argument with a Values provider, an entry keyed by the argument's
// decimal position whose value is the resolved list.
//
// Asynchronous value providers are resolved here; a failing provider aborts
// the build.
func (d *Dispatcher) BuildCompletionTree(ctx context.Context) (map[string]any, error) {
	d.mu.Lock()
	roots := make([]*Command, 0, d.registry.Len())
	for pair := d.registry.Oldest(); pair != nil; pair = pair.Next() {
		roots = append(roots, pair.Value.(*Command))
	}
	d.mu.Unlock()

	tree := make(map[string]any, len(roots))
	for _, cmd := range roots {
		node, err := completionNode(ctx, cmd)
		if err != nil {
			return nil, err
		}
		tree[cmd.Name] = node
	}

	return tree, nil
}

func completionNode(ctx context.Context, cmd *Command) (map[string]any, error) {
	node := map[string]any{}

	for _, sub := range cmd.Subcommands {
		child, err := completionNode(ctx, sub)
		if err != nil {
			return nil, err
		}
		node[sub.Name] = child
	}

	for i, arg := range cmd.Args {
		if arg.Values == nil {
			continue
		}
		values, err := arg.Values(ctx)
		if err != nil {
			return nil, err
		}
		node[strconv.Itoa(i)] = values
	}

	return node, nil
}
