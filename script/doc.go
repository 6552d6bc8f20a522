// Package script implements the sdfscript toolchain: a small expression
// language for signed distance fields. A program runs in four stages:
//   - Expand unrolls `@N{...}` and `@xyz{...}` macros, substituting `$`,
//     `$$` and `$$$` with the current, next and following loop element.
//   - Lex turns the expanded text into tokens, resolving builtin mnemonics
//     such as `L`, `U` or `bx3` to FunctionName tags.
//   - Parse builds a Statement tree with a Pratt parser. Statements are
//     separated by `,` or `;` and the last value computed is the result.
//   - Evaluate walks the tree for one point, or Generate re-emits it as a
//     Rhai function and Format as canonical DSL text.
//
// Every stage fails fast with a *Error carrying the kind, position and a
// code frame. Evaluation is bounded by a step quota and honours context
// cancellation.
package script
