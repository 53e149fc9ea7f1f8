package validate

import (
	"fmt"
	"strings"

	"rash/internal/ir"
)

// Identifier checks a name that will become a shell function or variable.
// Every binding site (functions, parameters, lets, pattern and loop
// variables) goes through here.
func Identifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier is empty")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("identifier contains a NUL byte")
	}
	if i := strings.IndexAny(name, "$`\\"); i >= 0 {
		return fmt.Errorf("identifier %q contains shell metacharacter %q", name, name[i])
	}
	if !ir.IsShellName(name) {
		return fmt.Errorf("identifier %q is not a portable shell name", name)
	}
	if strings.HasPrefix(name, ir.ReservedPrefix) {
		return fmt.Errorf("identifier %q uses the prefix %q reserved for generated names", name, ir.ReservedPrefix)
	}
	return nil
}

// shellSpecial are variables the shell or the emitted preamble depend on.
var shellSpecial = map[string]struct{}{
	"IFS": {}, "PATH": {}, "PWD": {}, "OLDPWD": {}, "HOME": {}, "SHELL": {},
	"ENV": {}, "CDPATH": {}, "PS1": {}, "PS2": {}, "PS4": {}, "OPTIND": {},
	"OPTARG": {}, "LINENO": {}, "PPID": {}, "LANG": {}, "LC_ALL": {},
	"LC_CTYPE": {}, "LC_COLLATE": {}, "LC_MESSAGES": {}, "MAIL": {},
	"MAILPATH": {}, "TERM": {}, "USER": {}, "BASH_ENV": {}, "SHELLOPTS": {},
}

// shellCommands are reserved words and builtins a function definition
// would break or shadow.
var shellCommands = map[string]string{
	"if": "reserved word", "then": "reserved word", "else": "reserved word",
	"elif": "reserved word", "fi": "reserved word", "do": "reserved word",
	"done": "reserved word", "case": "reserved word", "esac": "reserved word",
	"while": "reserved word", "until": "reserved word", "for": "reserved word",
	"in": "reserved word", "function": "reserved word", "select": "reserved word",

	"break": "special builtin", "continue": "special builtin", "eval": "special builtin",
	"exec": "special builtin", "exit": "special builtin", "export": "special builtin",
	"readonly": "special builtin", "return": "special builtin", "set": "special builtin",
	"shift": "special builtin", "times": "special builtin", "trap": "special builtin",
	"unset": "special builtin",

	"printf": "builtin", "test": "builtin", "true": "builtin", "false": "builtin",
	"cd": "builtin", "read": "builtin", "wait": "builtin", "umask": "builtin",
	"alias": "builtin", "unalias": "builtin", "getopts": "builtin", "hash": "builtin",
	"type": "builtin", "ulimit": "builtin", "command": "builtin", "local": "builtin",
	"kill": "builtin", "jobs": "builtin", "fg": "builtin", "bg": "builtin",
}

// commandCollision explains why name cannot be a function name, or returns "".
func commandCollision(name string) string {
	if kind, ok := shellCommands[name]; ok {
		return "is a shell " + kind
	}
	if ir.IsBuiltin(name) {
		return "is a rash builtin"
	}
	if ir.IsAllowedCommand(name) {
		return "would shadow the allowed command of the same name"
	}
	return ""
}

// IsShellSpecial reports whether name shadows a shell-special variable.
func IsShellSpecial(name string) bool {
	_, ok := shellSpecial[name]
	return ok
}
