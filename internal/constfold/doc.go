// Package constfold implements constant folding with static overflow
// diagnostics over the ir instruction graph.
//
// # Algorithm
//
// Each function is processed to a fixed point by a deduplicated worklist:
// instructions whose required operands are literals are replaced by
// synthesized literal results, their uses are rewired, and instructions that
// become unused and side-effect-free are deleted eagerly and transitively.
// Because every successful fold removes at least one live instruction and
// the dependency graph is acyclic, the loop terminates.
//
// Folding never guesses: an instruction folds only when every operand its
// rule requires is already a literal, and any unsupported or ambiguous case
// resolves to "not foldable" with the instruction left untouched.
//
// # Diagnostics
//
// Checked operations (division, checked truncation, integer-to-float
// conversion, and the *_over arithmetic builtins with a live report flag)
// are validated against their target widths. Violations are reported through
// the diag.Reporter; except for the arithmetic builtins, which fold to their
// wrapped (value, flag) pair regardless, a diagnosed instruction is left in
// the IR unfolded so downstream consumers still see a well-typed node.
//
// # Determinism
//
// The worklist pops the smallest instruction ID first. Arena IDs grow in
// program order, so when several overflow sites exist in one function their
// diagnostics are emitted in program order, independent of fold scheduling.
package constfold
