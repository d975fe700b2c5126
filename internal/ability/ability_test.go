package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/soulsworn/internal/geom"
	"chosenoffset.com/soulsworn/internal/simulation"
)

func TestCooldownNeverUsedIsReady(t *testing.T) {
	c := Cooldown{PeriodMS: 240}
	assert.True(t, c.Ready(0))

	c.Trigger(100)
	assert.False(t, c.Ready(339))
	assert.True(t, c.Ready(340))
}

func TestChargesAreIndependent(t *testing.T) {
	c := NewCharges(5500, 2)

	first, ok := c.Claim(1000)
	require.True(t, ok)
	second, ok := c.Claim(1000)
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	_, ok = c.Claim(1001)
	assert.False(t, ok, "both slots cooling")
	assert.Equal(t, 0, c.Ready(6499))

	idx, ok := c.Claim(6500)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, c.Ready(6500), "slot 1 recovered independently")
}

func TestChargesClaimFirstEligibleIndex(t *testing.T) {
	c := NewCharges(100, 2)
	c.slots[1].Trigger(50)
	c.slots[0].Trigger(120)

	// Slot 1 has rested longer, but slot 0 is the first ready index.
	idx, ok := c.Claim(250)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestShotPoolBurstThenSharedRecharge(t *testing.T) {
	p := NewShotPool(2000)
	p.SetCapacity(2)

	assert.True(t, p.Take(0))
	assert.True(t, p.Take(10))
	assert.False(t, p.Take(20))

	p.Refresh(2010)
	assert.Equal(t, 0, p.Available, "recharge needs strictly more than the cooldown")
	p.Refresh(2011)
	assert.Equal(t, 2, p.Available)
}

func TestShotPoolRefreshBeforeFirstCast(t *testing.T) {
	p := NewShotPool(2000)
	p.Capacity = 1

	p.Refresh(0)
	assert.Equal(t, 1, p.Available)
}

func TestJumps(t *testing.T) {
	j := Jumps{Capacity: 2}
	assert.False(t, j.Use(), "empty until refilled")

	j.Refill()
	assert.True(t, j.Use())
	assert.True(t, j.Use())
	assert.False(t, j.Use())
	assert.Equal(t, 0, j.Available)
}

func TestInvulnerabilityCountsDown(t *testing.T) {
	var v Invulnerability
	v.Grant(3)

	for i := 0; i < 2; i++ {
		v.Tick()
		assert.True(t, v.Active())
	}
	v.Tick()
	assert.False(t, v.Active())
	assert.Equal(t, 0, v.Remaining())

	v.Tick()
	assert.Equal(t, 0, v.Remaining())
}

func TestKnockbackDecaysGeometrically(t *testing.T) {
	k := Knockback{Decay: 0.8}
	k.Apply(geom.V(5, -2), 3)

	assert.Equal(t, geom.V(5, -2), k.Step())
	assert.InDelta(t, 4.0, k.Step().X(), 1e-9)
	assert.True(t, k.Active())
	assert.InDelta(t, 3.2, k.Step().X(), 1e-9)
	assert.False(t, k.Active())
	assert.Equal(t, geom.Vec2{}, k.Step())
}

func TestSwingBlocksRestartUntilCooldownAndDuration(t *testing.T) {
	s := Swing{DurationMS: 110, cooldown: Cooldown{PeriodMS: 240}}

	assert.True(t, s.Start(0))
	assert.False(t, s.Start(5), "already swinging")

	s.Update(110)
	assert.True(t, s.Active())
	s.Update(111)
	assert.False(t, s.Active())

	assert.False(t, s.Start(200), "cooldown not elapsed")
	assert.True(t, s.Start(240))
}

func TestDashRunsForItsFrames(t *testing.T) {
	d := Dash{Charges: NewCharges(5500, 1), Frames: 3, Speed: 5}

	require.True(t, d.Start(0, -1))
	assert.Equal(t, -5.0, d.Velocity())
	assert.False(t, d.Tick())
	assert.False(t, d.Tick())
	assert.True(t, d.Tick())
	assert.False(t, d.Active())
	assert.False(t, d.Start(10, 1))
}

func TestKitResetAppliesLevelGrants(t *testing.T) {
	cfg := simulation.DefaultConfig()
	k := NewKit(cfg.Player)
	k.Invuln.Grant(50)
	k.Knockback.Apply(geom.V(1, 1), 5)

	k.Reset(simulation.LevelConfig{Jumps: 3, Dashes: 2, Fireballs: 1})

	assert.Equal(t, 3, k.Jumps.Capacity)
	assert.Equal(t, 0, k.Jumps.Available)
	assert.Equal(t, 2, k.Dash.Charges.Len())
	assert.Equal(t, 2, k.Dash.Charges.Ready(0))
	assert.Equal(t, 1, k.Fireballs.Available)
	assert.False(t, k.Invuln.Active())
	assert.False(t, k.Knockback.Active())

	k.Reset(simulation.LevelConfig{})
	assert.Equal(t, 0, k.Dash.Charges.Len())
}
