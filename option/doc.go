// Package option turns raw command-line arguments into an ordered list of
// handler invocations.
//
// # Pipeline
//
// Arguments pass through three stages:
//
//  1. [Lexer.Tokenize] splits each argument into [Token] values. The number
//     of leading hyphens selects the form: none is a positional value, one
//     is a short option (or a negative number when [WithNumbers] is set), two
//     is a long option, and three or more is a syntax error. Both option
//     forms accept an inline value after "=".
//  2. [Vocabulary.Match] resolves each option name against the closed set of
//     [ID] values. Names match case-insensitively when they are equal, when
//     one is a prefix of the other, or when the name abbreviates an entry
//     ("lv" for "level"). More than one candidate is an error, never a guess.
//  3. [Dispatcher.Plan] pairs every option with the positional value that
//     follows it, looks up the handlers registered in a [Table], and orders
//     the resulting [Invocation] list according to the table's [Policy].
//     [Dispatcher.Execute] runs the list and stops at the first error.
//
// # Policies
//
// A [Simple] table keeps one handler per option and requires a value for
// every option; invocations run in the order they were typed. An [Extended]
// table keeps every registered handler, passes an absent [Arg] when no value
// follows an option, and runs invocations in [ID] rank order.
//
// # Errors
//
// Every failure is an [*Error]. Use [errors.Is] with [ErrSyntax],
// [ErrAmbiguous], [ErrUnrecognized], [ErrMissingArgument], [ErrValidation],
// or [ErrWrite] to classify it.
package option
