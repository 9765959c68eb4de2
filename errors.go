package terraskel

import "fmt"

// fault reports a broken structural invariant or a call made out of
// order: the caller handed the skeleton an inconsistent topology, or
// called an operation whose preconditions were never met. There is no
// sane recovery other than aborting.
func fault(format string, args ...any) {
	panic(fmt.Sprintf("terraskel: "+format, args...))
}
