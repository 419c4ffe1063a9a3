package playground

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_SubscribersFireInSubscriptionOrder(t *testing.T) {
	n := NewNotifier()

	var order []string
	n.Subscribe("ondidrunstartdeploy", func(any) { order = append(order, "a") })
	n.Subscribe("ondidrunstartdeploy", func(any) { order = append(order, "b") })
	n.Subscribe("ondidrunstartdeploy", func(any) { order = append(order, "c") })

	n.Emit("ondidrunstartdeploy", "deploy")
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestNotifier_DisposeRemovesOnlyTheSubscriber(t *testing.T) {
	n := NewNotifier()

	var calls []string
	n.Subscribe("evt", func(any) { calls = append(calls, "keep") })
	dispose := n.Subscribe("evt", func(any) { calls = append(calls, "drop") })

	dispose()
	dispose() // disposing twice is a no-op

	n.Emit("evt", nil)
	assert.Equal(t, []string{"keep"}, calls)
}

func TestNotifier_DisposeDuringEmitDoesNotAffectThePass(t *testing.T) {
	n := NewNotifier()

	var calls []string
	var disposeSecond func()
	n.Subscribe("evt", func(any) {
		calls = append(calls, "first")
		disposeSecond()
	})
	disposeSecond = n.Subscribe("evt", func(any) { calls = append(calls, "second") })

	n.Emit("evt", nil)
	assert.Equal(t, []string{"first", "second"}, calls,
		"the in-progress pass uses the subscriber list as it was when the emit began")

	calls = nil
	n.Emit("evt", nil)
	assert.Equal(t, []string{"first"}, calls, "the disposal takes effect on the next pass")
}

func TestNotifier_ChannelsAreIndependent(t *testing.T) {
	n := NewNotifier()

	var payloads []any
	n.Subscribe(RunStartEvent("build"), func(p any) { payloads = append(payloads, p) })

	n.Emit(RunStartEvent("deploy"), "deploy x")
	n.Emit(RunFinishEvent("build"), 42)
	n.Emit(RunStartEvent("build"), "build sbf")

	assert.Equal(t, []any{"build sbf"}, payloads)
}

func TestEventNameDerivation(t *testing.T) {
	assert.Equal(t, "ondidrunstartbuild", RunStartEvent("build"))
	assert.Equal(t, "ondidrunfinishbuild", RunFinishEvent("build"))
	assert.Equal(t, "ondidrunstartpriority-fee", RunStartEvent("priority-fee"))
}
