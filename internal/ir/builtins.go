package ir

// Builtin identifies a call that lowers to a dedicated IR construct rather
// than a command invocation.
type Builtin uint8

const (
	NotBuiltin Builtin = iota
	BuiltinArg      // arg(n)      -> "$n"
	BuiltinArgs     // args()      -> "$@"
	BuiltinArgCount // arg_count() -> "$#"
	BuiltinEnv      // env("NAME") -> "$NAME"
	BuiltinExit     // exit(code)
)

var builtins = map[string]Builtin{
	"arg":                BuiltinArg,
	"args":               BuiltinArgs,
	"arg_count":          BuiltinArgCount,
	"env":                BuiltinEnv,
	"std::env::var":      BuiltinEnv,
	"exit":               BuiltinExit,
	"std::process::exit": BuiltinExit,
}

// LookupBuiltin classifies a call target.
func LookupBuiltin(name string) Builtin {
	return builtins[name]
}

// IsBuiltin reports whether name is one of the builtin calls.
func IsBuiltin(name string) bool {
	return LookupBuiltin(name) != NotBuiltin
}
