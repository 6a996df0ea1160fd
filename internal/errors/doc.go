// Package errors provides coded, actionable errors for ripple's
// configuration, CLI and preview server.
//
// Each error code maps to a registered template with a category, a short
// message and a longer explanation:
//
//	err := errors.New("E102").
//	    WithLocation("ripple.yaml", 3, 9).
//	    WithSuggestion("Use a port between 1 and 65535")
//
//	fmt.Println(err.Format())
//	// ERROR E102: Invalid preview port
//	//
//	//   ripple.yaml:3:9
//	//
//	//       2 │ preview:
//	//   →   3 │   port: 70000
//	//         │         ^
//	//
//	//   Hint: Use a port between 1 and 65535
//
// Codes are grouped by range: E100-E199 configuration, E200-E299 CLI,
// E300-E399 preview server.
package errors
