// Package elementmodel provides the typed-element data model underlying
// FHIR tooling: a uniform, read-only view over hierarchical resource data
// and the two materialization directions between that view and
// schema-shaped in-memory instances.
//
// The model has three parts:
//
//   - The typed-node contract (package element): every tree node exposes a
//     name, an optional scalar value, a runtime type, a stable location
//     path, a display path, and lazy child enumeration. Both wire-decoded
//     data and programmatically built instances satisfy the same contract,
//     so consumers such as a FHIRPath evaluator are representation-agnostic.
//
//   - The schema materializer (package materialize): consumes a typed-node
//     tree plus a mapping provider and produces schema-shaped instances,
//     enforcing cardinality, member-closedness, and enumeration rules with
//     precisely located structural errors.
//
//   - The object-tree adapter (package objtree): wraps an already-built
//     instance and re-exposes it as a typed-node tree, lazily computing
//     paths and coerced scalar values.
//
// # Quick Start
//
//	import (
//	    em "github.com/gofhir/elementmodel"
//	    "github.com/gofhir/elementmodel/jsontree"
//	    "github.com/gofhir/elementmodel/materialize"
//	    "github.com/gofhir/elementmodel/objtree"
//	)
//
//	root, err := jsontree.Decode(resourceJSON, provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m := materialize.New(provider, em.WithAcceptUnknownMembers(true))
//	inst, err := m.Materialize(root)
//	if err != nil {
//	    var serr *em.StructuralError
//	    if errors.As(err, &serr) {
//	        fmt.Println(serr.Location, serr.Message)
//	    }
//	}
//
//	node := objtree.Wrap(inst) // same contract as the decoded tree
//
// # Data Flow
//
//	wire decoder -> typed-node tree -> materializer -> schema instance
//	schema instance -> adapter -> typed-node tree -> collection operators
//
// # Architecture
//
// The package follows patterns from HAPI FHIR and Firely, adapted for Go:
//
//   - Small interfaces (1-2 methods each) for composability
//   - Functional options for configuration
//   - Go 1.23 iterators for lazy, short-circuiting tree traversal
//   - Generic LRU caching for descriptor resolution
package elementmodel
