package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segclock/hal"
	"segclock/sevenseg"
	"segclock/shiftreg"
)

func TestStartsInTimeModeAtSlotZero(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	assert.Equal(t, sevenseg.ModeTime, r.c.Mode())
	assert.Equal(t, 0, r.c.Slot())
	assert.Equal(t, uint32(0), r.c.Elapsed())
}

func TestStepWithoutRefreshWritesNothing(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.c.Step())
	}
	assert.Empty(t, r.out.frames)
	assert.Equal(t, 0, r.c.Slot())
}

func TestOneSlotPerRefresh(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)

	var selects []byte
	for i := 0; i < 10; i++ {
		if i == 5 {
			r.mode.pressed = true
		}
		require.NoError(t, r.refresh())
		// A second iteration without a new refresh must not render.
		require.NoError(t, r.c.Step())
		selects = append(selects, r.out.frames[len(r.out.frames)-1].Select)
	}
	require.Len(t, r.out.frames, 10)
	want := []byte{0xF1, 0xF2, 0xF4, 0xF8, 0xF1, 0xF2, 0xF4, 0xF8, 0xF1, 0xF2}
	assert.Equal(t, want, selects)
}

func TestTimeFrames(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	for i := 0; i < 125; i++ {
		r.c.TimeKeeper().Tick()
	}
	for i := 0; i < sevenseg.Digits; i++ {
		require.NoError(t, r.refresh())
	}
	assert.Equal(t, []sevenseg.Frame{
		{Segments: 0xC0, Select: 0xF1},
		{Segments: 0x24, Select: 0xF2},
		{Segments: 0xC0, Select: 0xF4},
		{Segments: 0x92, Select: 0xF8},
	}, r.out.frames)
	assert.Zero(t, r.pot.reads)
}

func TestVoltageFrames(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	r.mode.pressed = true
	r.pot.value = 0.5

	for i := 0; i < sevenseg.Digits; i++ {
		require.NoError(t, r.refresh())
	}
	assert.Equal(t, []sevenseg.Frame{
		{Segments: 0x79, Select: 0xF1},
		{Segments: 0x82, Select: 0xF2},
		{Segments: 0x92, Select: 0xF4},
		{Segments: 0xC0, Select: 0xF8},
	}, r.out.frames)
	assert.Equal(t, sevenseg.Digits, r.pot.reads)
}

func TestModeFollowsButtonLevel(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)

	r.mode.pressed = true
	require.NoError(t, r.c.Step())
	assert.Equal(t, sevenseg.ModeVoltage, r.c.Mode())

	r.mode.pressed = false
	require.NoError(t, r.c.Step())
	assert.Equal(t, sevenseg.ModeTime, r.c.Mode())

	assert.Equal(t, []string{"input: mode VOLTAGE", "input: mode TIME"}, r.log.lines)
}

func TestResetOncePerPress(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		r.c.TimeKeeper().Tick()
	}

	r.reset.pressed = true
	require.NoError(t, r.c.Step())
	assert.Equal(t, uint32(0), r.c.Elapsed())

	// Time keeps running while the button stays down.
	for i := 0; i < 3; i++ {
		r.c.TimeKeeper().Tick()
		require.NoError(t, r.c.Step())
	}
	assert.Equal(t, uint32(3), r.c.Elapsed())
	assert.Equal(t, []string{"input: reset"}, r.log.lines)

	r.reset.pressed = false
	require.NoError(t, r.c.Step())
	r.reset.pressed = true
	require.NoError(t, r.c.Step())
	assert.Equal(t, uint32(0), r.c.Elapsed())
}

func TestResetClearsDisplayedTime(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	for i := 0; i < 5999; i++ {
		r.c.TimeKeeper().Tick()
	}
	r.reset.pressed = true
	for i := 0; i < sevenseg.Digits; i++ {
		require.NoError(t, r.refresh())
	}
	var patterns [sevenseg.Digits]byte
	for i, f := range r.out.frames {
		patterns[i] = f.Segments
	}
	assert.Equal(t, "00.00", sevenseg.Text(patterns))
}

func TestWriteErrorKeepsSlot(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	r.out.err = errors.New("bus fault")

	err = r.refresh()
	require.ErrorContains(t, err, "controller: bus fault")
	assert.Equal(t, 0, r.c.Slot())
}

func TestRunStopsOnCancel(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReturnsStepError(t *testing.T) {
	r, err := newRig()
	require.NoError(t, err)
	r.reset.fail = true

	err = r.c.Run(context.Background())
	require.ErrorContains(t, err, "controller: input: reset:")
}

func TestVirtualTimerDrivesDisplay(t *testing.T) {
	panel := hal.NewPanel()
	chain := hal.NewShiftChain(panel.Latch)
	drv, err := shiftreg.New(chain.Pins())
	require.NoError(t, err)

	reset := &button{name: hal.PinReset}
	mode := &button{name: hal.PinMode}
	p := &pot{value: 1.0}
	in, err := NewInputSampler(reset, mode, p)
	require.NoError(t, err)
	c, err := New(in, drv, nil)
	require.NoError(t, err)

	clock := hal.NewVirtualTimer()
	detach := c.Attach(clock)
	defer detach()

	run := func(d time.Duration) {
		for end := clock.Now() + d; clock.Now() < end; {
			clock.Advance(time.Millisecond)
			require.NoError(t, c.Step())
		}
	}

	run(3010 * time.Millisecond)
	assert.Equal(t, uint32(3), c.Elapsed())
	assert.Equal(t, "00.03", panel.Text())
	assert.Zero(t, panel.Stray())

	mode.pressed = true
	run(10 * time.Millisecond)
	assert.Equal(t, "3.300", panel.Text())

	mode.pressed = false
	reset.pressed = true
	run(10 * time.Millisecond)
	assert.Equal(t, "00.00", panel.Text())
	assert.Equal(t, uint64(3030/2), panel.Frames())
}
