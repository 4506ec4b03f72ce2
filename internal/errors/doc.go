// Package errors provides coded, actionable error messages for the tour
// CLI.
//
// Each TourError carries a registered code that maps to:
//   - a short message
//   - a longer explanation
//   - a category used for grouping
//
// Runtime sentinel errors from the server and reactive packages are
// mapped to codes with Classify, so the CLI can print the same message
// whichever layer failed.
//
// # Usage
//
//	err := errors.UnknownRoot("countr", []string{"form", "counter", "iteration"})
//	fmt.Print(err.Format())
//	// ERROR E002: Unknown root widget
//	//
//	//   No root is registered under "countr".
//	//
//	//   Hint: Did you mean "counter"?
package errors
