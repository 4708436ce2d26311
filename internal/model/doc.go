// Package model holds the data types exchanged between the generation
// pipeline and the execution layer.
//
// The types fall into two groups:
//
//   - Generation inputs and outputs: BlockNode and Edge describe the visual
//     graph as the canvas delivers it; TerraformResource, Variable, Output
//     and GeneratedArtifact describe the derived infrastructure code.
//
//   - Execution inputs and outputs: ExecutionRequest configures a single
//     sandboxed run of the provisioning tool, ExecutionResult reports its
//     outcome, and PlanSummary carries the interpreted counts of a plan run.
//
// Everything in this package is a plain value created fresh per call. No
// type here holds state between a generation or execution call and the next;
// callers own the lifecycle of every instance they receive.
package model
