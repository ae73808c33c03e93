// Package tac translates a small imperative scripting language into
// three-address code. Supported constructs:
//   - Assignment `name = expr`; the first assignment to a name declares it.
//   - Arithmetic and comparison expressions (+, -, *, /, ==, !=, <, <=, >, >=)
//     with parentheses for grouping. Comparisons do not chain.
//   - `if cond: { ... } elif cond: { ... } else: { ... }`.
//   - `while cond: { ... }`.
//   - `for name in range(N): { ... }` counting from 0 to N-1.
//
// The generated code is linear: control flow becomes labels, `goto` and
// `if (test) goto label;` lines, and every intermediate value is stored in a
// uniquely numbered temporary. All variables share one numeric type.
package tac
