// Package derive runs the derivation pipeline over enum descriptors.
//
// Each declaration is validated and, when valid, synthesized into
// conversion artifacts. Declarations are independent and are derived in
// parallel. Once every declaration is done, the realized capabilities are
// registered and each failed declaration is checked against the registry,
// the way the host compiler would check the conversions it needs. Failures
// and missing capabilities become diagnostics, reported sequentially in
// declaration order, so a run's transcript does not depend on scheduling.
package derive
