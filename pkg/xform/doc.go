/*
Package xform provides rigid/affine transforms and time-sampled transform
sequences.

Matrices are cogentcore math32.Matrix4 values: column-major storage, column
vectors, translation in elements 12, 13 and 14. A Transform keeps a
local-to-parent matrix together with its inverse.

A Sequence composed from two sequences keeps both operands, so evaluating it at
time t yields exactly the product of the operands evaluated at t, whatever
samples each operand carries.
*/
package xform
