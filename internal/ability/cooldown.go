// Package ability tracks the player's independently cooling resources:
// jump charges, dash slots, the melee swing, ranged shots, knockback and
// the invulnerability window. Each tracker only ever touches its own state.
package ability

// Cooldown is a single slot gated by wall-clock time. A slot that has never
// fired is always ready.
type Cooldown struct {
	PeriodMS int64
	last     int64
	used     bool
}

// Ready reports whether at least PeriodMS has passed since the last trigger.
func (c *Cooldown) Ready(now int64) bool {
	return !c.used || now-c.last >= c.PeriodMS
}

// Trigger starts the cooldown at now.
func (c *Cooldown) Trigger(now int64) {
	c.last = now
	c.used = true
}

// Elapsed returns the time since the last trigger and whether there was one.
func (c *Cooldown) Elapsed(now int64) (int64, bool) {
	return now - c.last, c.used
}

// Reset forgets the last trigger.
func (c *Cooldown) Reset() {
	c.last = 0
	c.used = false
}

// Charges is a set of cooldown slots sharing one period. Any ready slot can
// be spent; the others keep cooling undisturbed.
type Charges struct {
	PeriodMS int64
	slots    []Cooldown
}

// NewCharges creates n ready slots.
func NewCharges(periodMS int64, n int) Charges {
	c := Charges{PeriodMS: periodMS}
	for i := 0; i < n; i++ {
		c.Add()
	}
	return c
}

// Add appends a ready slot.
func (c *Charges) Add() {
	c.slots = append(c.slots, Cooldown{PeriodMS: c.PeriodMS})
}

// Len returns the number of slots.
func (c *Charges) Len() int {
	return len(c.slots)
}

// Ready counts the slots usable at now.
func (c *Charges) Ready(now int64) int {
	n := 0
	for i := range c.slots {
		if c.slots[i].Ready(now) {
			n++
		}
	}
	return n
}

// Claim spends the first ready slot in index order, which is not
// necessarily the one that has rested longest.
func (c *Charges) Claim(now int64) (int, bool) {
	for i := range c.slots {
		if c.slots[i].Ready(now) {
			c.slots[i].Trigger(now)
			return i, true
		}
	}
	return -1, false
}

// Clear removes every slot.
func (c *Charges) Clear() {
	c.slots = c.slots[:0]
}
