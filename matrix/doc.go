// Package matrix offers the dense float64 linear algebra used by the
// market-model packages.
//
// The matrix package provides:
//
//   - Dense: a row-major matrix with error-returning At/Set and an optional
//     finite-only numeric policy.
//   - Kernels: Mul, Transpose, Scale, the Jacobi symmetric eigen
//     decomposition (Eigen / EigenSym) and row-wise L2 normalisation.
//   - Validators and sentinel errors shared by every caller.
//   - A copy bridge to gonum.org/v1/gonum/mat for LAPACK-backed routines.
//
// All kernels allocate a fresh result and leave their operands untouched,
// so matrices can be shared read-only between goroutines once built.
package matrix
