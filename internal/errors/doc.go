// Package errors provides structured, actionable errors for the adapter.
//
// Each error has a unique code (e.g., "E002") that maps to a category, a
// short message, a detailed explanation and a documentation URL. Errors
// created from a code can carry a suggestion and wrap an underlying error;
// errors.Is matches two coded errors with the same code.
//
// # Usage
//
//	err := errors.New("E002").
//	    WithDetail(`no component is registered as "Users/Idx"`).
//	    WithSuggestion(`did you mean "Users/Index"?`).
//	    Wrap(resolve.ErrComponentNotFound)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E002: Component not found
//	//
//	//   no component is registered as "Users/Idx"
//	//
//	//   Hint: did you mean "Users/Index"?
package errors
