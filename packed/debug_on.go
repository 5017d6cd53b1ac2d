//go:build packeddebug

package packed

// debugChecks makes every structural mutation re-validate the maps.
const debugChecks = true
