//go:build !simdebug

package invariant

const strict = false
