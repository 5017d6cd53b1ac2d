//go:build !packeddebug

package packed

const debugChecks = false
