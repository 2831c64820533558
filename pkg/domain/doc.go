// Package domain contains the core types of the Espalier workflow engine:
// the shared State mapping, stage configuration, ability descriptors, and
// the lifecycle hooks used for observability.
//
// These types carry no behavior beyond small helpers; the execution logic
// lives in the runtime and executor packages.
package domain
