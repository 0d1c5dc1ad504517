// Package iol implements the intraocular lens power calculation engine:
// the lens constants registry, the biometric edge-case detector, the four
// optical formulas (SRK/T, Holladay 1, Haigis, Barrett Universal II), the
// multi-formula consensus orchestrator, and small refraction utilities.
//
// Everything in this package is pure and synchronous. A calculation is a
// deterministic function of its inputs, holds no shared mutable state, and
// is safe to invoke concurrently without locks, which is required for
// clinical auditability and reproducible testing.
package iol
