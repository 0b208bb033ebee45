package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies would statically validate the node graph: every
// declared dependency used, every used dependency declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers a dependency's ID from the package name of
	// the type parameter passed to Dep[T]. Every adapter here resolves
	// interfaces out of the shared ports package, so the checker expects a
	// single node called "ports" and flags the whole graph.
	t.Skip("graft.AssertDepsValid cannot model multiple nodes behind one interface package")
	graft.AssertDepsValid(t, "../../internal")
}
