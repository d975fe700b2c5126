//go:build simdebug

package invariant

const strict = true
