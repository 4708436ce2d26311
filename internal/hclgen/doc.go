// Package hclgen renders a generated artifact into Terraform HCL text.
//
// Rendering is deterministic: provider preamble first, then variables,
// resources and outputs, each in the order the upstream stages produced
// them. The serializer never re-sorts resources and never fails; every Go
// value the builder can produce has a defined HCL spelling.
package hclgen
