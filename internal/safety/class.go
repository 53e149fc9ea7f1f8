package safety

import "rash/internal/diag"

// Class identifies one injection pattern.
type Class uint8

const (
	ClassNulByte Class = iota
	ClassShellshock
	ClassJNDILookup
	ClassQuoteEscape
	ClassCommandSubst
	ClassProcessSubst
	ClassBacktick
	ClassHereDoc
	ClassRedirection
	ClassNewlineCommand
	ClassAndList
	ClassOrList
	ClassPipe
	ClassCommandSeparator
	ClassBackground
	ClassVariableExpansion
	ClassGlobStar
	ClassGlobQuestion
)

// Classes lists every class in scan order.
var Classes = []Class{
	ClassNulByte, ClassShellshock, ClassJNDILookup, ClassQuoteEscape,
	ClassCommandSubst, ClassProcessSubst, ClassBacktick, ClassHereDoc,
	ClassRedirection, ClassNewlineCommand, ClassAndList, ClassOrList,
	ClassPipe, ClassCommandSeparator, ClassBackground, ClassVariableExpansion,
	ClassGlobStar, ClassGlobQuestion,
}

type classInfo struct {
	code diag.Code
	name string
}

var classTable = [...]classInfo{
	ClassNulByte:           {diag.InjNulByte, "NUL byte"},
	ClassShellshock:        {diag.InjShellshock, "Shellshock function definition"},
	ClassJNDILookup:        {diag.InjJNDILookup, "JNDI lookup"},
	ClassQuoteEscape:       {diag.InjQuoteEscape, "unbalanced quote next to a metacharacter"},
	ClassCommandSubst:      {diag.InjCommandSubst, "command substitution"},
	ClassProcessSubst:      {diag.InjProcessSubst, "process substitution"},
	ClassBacktick:          {diag.InjBacktick, "backtick substitution"},
	ClassHereDoc:           {diag.InjHereDoc, "here-document"},
	ClassRedirection:       {diag.InjRedirection, "redirection to a device"},
	ClassNewlineCommand:    {diag.InjNewlineCommand, "newline followed by a command"},
	ClassAndList:           {diag.InjAndList, "'&&' command list"},
	ClassOrList:            {diag.InjOrList, "'||' command list"},
	ClassPipe:              {diag.InjPipe, "pipe"},
	ClassCommandSeparator:  {diag.InjCommandSeparator, "command separator ';'"},
	ClassBackground:        {diag.InjBackground, "background operator '&'"},
	ClassVariableExpansion: {diag.InjVariableExpansion, "parameter expansion"},
	ClassGlobStar:          {diag.InjGlobStar, "glob '*'"},
	ClassGlobQuestion:      {diag.InjGlobQuestion, "glob '?'"},
}

func (c Class) Code() diag.Code {
	if int(c) < len(classTable) {
		return classTable[c].code
	}
	return diag.InjInfo
}

func (c Class) String() string {
	if int(c) < len(classTable) {
		return classTable[c].name
	}
	return "unknown injection class"
}
