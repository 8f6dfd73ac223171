package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// UnknownCaller is the label used when the calling site cannot be resolved.
const UnknownCaller = "Unknown"

// callerSkip is the number of frames between a resolver and the code that
// called into the facility: the dispatch method and the public entry point.
const callerSkip = 2

// CallerResolver returns a label for the code that issued a log call.
// skip counts frames above the resolver's caller, in the same way as
// runtime.Caller.
type CallerResolver func(skip int) string

// StackCaller is the default CallerResolver. It walks the call stack and
// renders "Context.Operation:Line N", where Context is the receiver type for
// methods and the package name for plain functions.
func StackCaller(skip int) (label string) {
	defer func() {
		if recover() != nil {
			label = UnknownCaller
		}
	}()

	pc, _, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return UnknownCaller
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return UnknownCaller
	}
	label = funcLabel(fn.Name())
	if label == "" {
		return UnknownCaller
	}
	if line > 0 {
		return fmt.Sprintf("%s:Line %d", label, line)
	}
	return label
}

// FixedCaller returns a resolver that always yields label.
func FixedCaller(label string) CallerResolver {
	return func(int) string { return label }
}

// funcLabel turns a fully qualified function name into "Context.Operation".
//
//	example.com/mod/loader.(*Loader).Load  -> Loader.Load
//	example.com/mod/loader.Scene.Len       -> Scene.Len
//	example.com/mod/loader.New             -> loader.New
//	example.com/mod/loader.New.func1       -> loader.New.func1
func funcLabel(full string) string {
	full = stripTypeParams(full)
	if i := strings.LastIndex(full, "/"); i >= 0 {
		full = full[i+1:]
	}
	pkg, rest, ok := strings.Cut(full, ".")
	if !ok || pkg == "" || rest == "" {
		return ""
	}

	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ").")
		if end < 0 {
			return ""
		}
		recv := strings.TrimPrefix(rest[1:end], "*")
		return recv + "." + rest[end+2:]
	}

	if recv, method, ok := strings.Cut(rest, "."); ok && !isClosure(method) {
		return recv + "." + method
	}
	return pkg + "." + rest
}

// isClosure reports whether name is a compiler generated closure suffix
// such as "func1" or "func2.3".
func isClosure(name string) bool {
	rest, ok := strings.CutPrefix(name, "func")
	if !ok || rest == "" {
		return false
	}
	return rest[0] >= '0' && rest[0] <= '9'
}

func stripTypeParams(name string) string {
	for {
		open := strings.Index(name, "[")
		if open < 0 {
			return name
		}
		end := strings.Index(name[open:], "]")
		if end < 0 {
			return name
		}
		name = name[:open] + name[open+end+1:]
	}
}
