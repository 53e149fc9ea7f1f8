package ir

import (
	"sort"
	"strings"
)

// EffectSet is a bitset of side effects. The empty set means pure.
type EffectSet uint8

const (
	EffectReadsEnv EffectSet = 1 << iota
	EffectNetwork
	EffectFilesystem
	EffectProcess
	// EffectUnknown marks commands missing from the table; it is never treated as pure.
	EffectUnknown
)

// Pure is the empty effect set.
const Pure EffectSet = 0

func (s EffectSet) IsPure() bool                    { return s == Pure }
func (s EffectSet) Has(other EffectSet) bool        { return s&other == other && other != 0 }
func (s EffectSet) Union(other EffectSet) EffectSet { return s | other }

var effectNames = []struct {
	bit  EffectSet
	name string
}{
	{EffectReadsEnv, "reads-env"},
	{EffectNetwork, "network"},
	{EffectFilesystem, "filesystem"},
	{EffectProcess, "process"},
	{EffectUnknown, "unknown"},
}

// Names lists the effects in s in a fixed order.
func (s EffectSet) Names() []string {
	var out []string
	for _, e := range effectNames {
		if s&e.bit != 0 {
			out = append(out, e.name)
		}
	}
	return out
}

func (s EffectSet) String() string {
	if s.IsPure() {
		return "pure"
	}
	return strings.Join(s.Names(), "|")
}

// commandEffects — конечная таблица внешних команд, которые можно вызывать
// из программы. Читается конкурентно, никогда не изменяется.
var commandEffects = map[string]EffectSet{
	// pure text utilities
	"echo":     Pure,
	"printf":   Pure,
	"test":     Pure,
	"true":     Pure,
	"false":    Pure,
	"basename": Pure,
	"dirname":  Pure,
	"expr":     Pure,
	"seq":      Pure,
	"tr":       Pure,

	// environment and host introspection
	"env":      EffectReadsEnv,
	"printenv": EffectReadsEnv,
	"pwd":      EffectReadsEnv,
	"id":       EffectReadsEnv,
	"whoami":   EffectReadsEnv,
	"hostname": EffectReadsEnv,
	"uname":    EffectReadsEnv,
	"date":     EffectReadsEnv,
	"command":  EffectReadsEnv,

	// filesystem
	"cat":      EffectFilesystem,
	"ls":       EffectFilesystem,
	"mkdir":    EffectFilesystem,
	"rmdir":    EffectFilesystem,
	"rm":       EffectFilesystem,
	"cp":       EffectFilesystem,
	"mv":       EffectFilesystem,
	"ln":       EffectFilesystem,
	"touch":    EffectFilesystem,
	"chmod":    EffectFilesystem,
	"chown":    EffectFilesystem,
	"find":     EffectFilesystem,
	"grep":     EffectFilesystem,
	"sed":      EffectFilesystem,
	"awk":      EffectFilesystem,
	"head":     EffectFilesystem,
	"tail":     EffectFilesystem,
	"wc":       EffectFilesystem,
	"sort":     EffectFilesystem,
	"uniq":     EffectFilesystem,
	"cut":      EffectFilesystem,
	"tee":      EffectFilesystem,
	"stat":     EffectFilesystem,
	"readlink": EffectFilesystem,
	"install":  EffectFilesystem,
	"tar":      EffectFilesystem,
	"gzip":     EffectFilesystem,

	// network
	"curl":  EffectNetwork,
	"wget":  EffectNetwork | EffectFilesystem,
	"ssh":   EffectNetwork,
	"scp":   EffectNetwork | EffectFilesystem,
	"rsync": EffectNetwork | EffectFilesystem,
	"nc":    EffectNetwork,
	"ping":  EffectNetwork,
	"git":   EffectNetwork | EffectFilesystem,

	// processes
	"kill":  EffectProcess,
	"sleep": EffectProcess,
	"ps":    EffectProcess | EffectReadsEnv,
	"sudo":  EffectProcess | EffectUnknown,
}

// CommandEffects returns the effect set of an external command.
// Commands missing from the table are EffectUnknown, never pure.
func CommandEffects(name string) EffectSet {
	if eff, ok := commandEffects[name]; ok {
		return eff
	}
	return EffectUnknown
}

// IsAllowedCommand reports whether name is a key of the command table.
func IsAllowedCommand(name string) bool {
	_, ok := commandEffects[name]
	return ok
}

// AllowedCommands returns the command table keys in sorted order.
func AllowedCommands() []string {
	out := make([]string, 0, len(commandEffects))
	for name := range commandEffects {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
