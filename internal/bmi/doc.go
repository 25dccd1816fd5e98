// Package bmi provides the model-coupling contract for stepping simulation
// components.
//
// The package defines the lifecycle and variable-exchange interface that any
// coupled component must expose:
//
//   - [Engine]: raw simulation component (initialize/update/get/set/finalize)
//   - [Handle]: lifecycle-enforcing wrapper owning one engine's state
//   - [Grid]: spatial discretization a variable is defined on
//   - [VarInfo]: per-variable exchange metadata (units, dtype, grid, role)
//
// # Lifecycle
//
// A handle moves Uninitialized -> Initialized -> Finalized exactly once:
//
//	h := bmi.Open(coastline.New())
//	err := h.Initialize(bmi.Config{"number_of_rows": 100})
//	err = h.Update()
//	err = h.Finalize()
//
// Operations invalid for the current state fail with [LifecycleError]; bad
// variable names with [UnknownVariableError]; mismatched array lengths with
// [ShapeError].
//
// # Thread Safety
//
// Handle instances are NOT thread-safe. Coupled runs are strictly sequential;
// for parallel parameter sweeps use [coupler.Ensemble], which builds an
// independent set of handles per run.
package bmi
