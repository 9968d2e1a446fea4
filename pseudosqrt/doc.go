// Package pseudosqrt computes rank-reduced pseudo square roots of
// symmetric (correlation) matrices.
//
// For a symmetric N×N matrix M the reducer returns F (N×R) with F·Fᵀ ≈ M,
// keeping the R leading principal components that carry the requested
// share of the total eigenvalue mass. Matrices that are not positive
// semi-definite are handled according to a SalvagingAlgorithm.
//
// The RankReducer interface lets callers swap the decomposition: the
// default Reducer uses the deterministic Jacobi rotations of the matrix
// package, and GonumSolver switches it to gonum's LAPACK routines.
package pseudosqrt
