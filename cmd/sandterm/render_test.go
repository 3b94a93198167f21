package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sandfall/sand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	e, err := sand.NewEngine(sand.DefaultConfig(), sand.WithSeed(3))
	require.NoError(t, err)
	e.Step(sand.HardDrop)

	snap := e.Snapshot()
	buf := compose(snap)
	require.Len(t, buf, snap.Height)
	require.Len(t, buf[0], snap.Width)

	for _, g := range snap.Grains {
		assert.Equal(t, g.Color, buf[g.Y][g.X])
	}
	top := snap.Active.Blocks[0]
	assert.Equal(t, snap.Active.Color, buf[top.Y*snap.Scale][top.X*snap.Scale])
}

func TestKeyIntent(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want sand.Intent
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), sand.MoveLeft},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), sand.MoveRight},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), sand.HardDrop},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), sand.Rotate},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), sand.Quit},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), sand.Reset},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), sand.NoIntent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, keyIntent(tt.ev))
	}
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	return screen
}

func closed(events <-chan tcell.Event) func() bool {
	return func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}
}

func TestPollEventsForwardsKeys(t *testing.T) {
	screen := newSimScreen(t)
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done, 0)

	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	select {
	case ev := <-events:
		key, ok := ev.(*tcell.EventKey)
		require.True(t, ok)
		assert.Equal(t, sand.MoveLeft, keyIntent(key))
	case <-time.After(time.Second):
		t.Fatal("key event not forwarded")
	}

	screen.Fini()
	assert.Eventually(t, closed(events), time.Second, 5*time.Millisecond)
}

func TestPollEventsStopsWhenDone(t *testing.T) {
	screen := newSimScreen(t)
	defer screen.Fini()
	done := make(chan struct{})
	events := pollEvents(screen, done, 0)

	// nothing drains the channel, so the second key leaves the sender waiting
	screen.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'l', tcell.ModNone)
	close(done)

	assert.Eventually(t, closed(events), time.Second, 5*time.Millisecond)
}
