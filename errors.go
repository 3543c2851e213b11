package chaplin

import "fmt"

// The library distinguishes three failure categories, none of which are
// recovered internally:
//
//   - Usage errors: malformed arguments to Delegate and friends. The caller
//     must fix the call site.
//   - Configuration errors: a declarative binding names a method that does
//     not exist or is not callable, or a required override (TemplateFunc) is
//     missing.
//   - Contract violations: a view reaches Dispose without ever having gone
//     through NewView's base setup.
//
// All three are programming errors in the dependent code, so they panic with
// a "chaplin:"-prefixed message rather than returning an error the caller
// would have to thread through rendering paths.

func panicUsage(format string, args ...any) {
	panic("chaplin: " + fmt.Sprintf(format, args...))
}

func panicConfig(format string, args ...any) {
	panic("chaplin: " + fmt.Sprintf(format, args...))
}

func panicContract(format string, args ...any) {
	panic("chaplin: " + fmt.Sprintf(format, args...))
}
