// Package espalier runs a multi-stage customer-support workflow in which
// each stage executes an ordered list of named abilities. Abilities are
// heterogeneous: deterministic transforms run in-process, generative ones
// delegate to a text-completion backend whose output is validated and
// repaired, and human ones consume an answer queue or suspend the run.
//
// The engine is stateless across calls: a suspended workflow is resumed by
// replaying it from the original seed with an answer queue one element
// longer, relying on deterministic and generative results being recomputed
// identically up to the suspension point.
package espalier
