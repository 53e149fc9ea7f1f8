package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexInvalidUTF8              Code = 1006

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectBlock        Code = 2005
	SynUnclosedDelimiter  Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynMacroNotAllowed    Code = 2008
	SynBadAttribute       Code = 2009
	SynNestingTooDeep     Code = 2010
	SynBadPattern         Code = 2011
	SynFeatureNotAllowed  Code = 2012
	SynExpectSemicolon    Code = 2013

	// Структурная валидация AST
	ValInfo                Code = 3000
	ValMissingEntryPoint   Code = 3001
	ValDuplicateFunction   Code = 3002
	ValBadIdentifier       Code = 3003
	ValNestingTooDeep      Code = 3004
	ValNulInLiteral        Code = 3005
	ValRecursion           Code = 3006
	ValUndefinedFunction   Code = 3007
	ValDisallowedType      Code = 3008
	ValShellReservedName   Code = 3009
	ValMissingReturnValue  Code = 3010
	ValUnboundedLoop       Code = 3011
	ValEntryPointSignature Code = 3012
	ValDuplicateParam      Code = 3013
	ValCommandName         Code = 3014

	// Injection-safety scan, one code per pattern class
	InjInfo               Code = 4000
	InjCommandSeparator   Code = 4001
	InjPipe               Code = 4002
	InjAndList            Code = 4003
	InjOrList             Code = 4004
	InjCommandSubst       Code = 4005
	InjBacktick           Code = 4006
	InjVariableExpansion  Code = 4007
	InjGlobStar           Code = 4008
	InjGlobQuestion       Code = 4009
	InjNulByte            Code = 4010
	InjNewlineCommand     Code = 4011
	InjQuoteEscape        Code = 4012
	InjShellshock         Code = 4013
	InjJNDILookup         Code = 4014
	InjHereDoc            Code = 4015
	InjProcessSubst       Code = 4016
	InjRedirection        Code = 4017
	InjBackground         Code = 4018

	// Lowering AST -> Shell IR
	LowInfo                Code = 5000
	LowUnsupportedExpr     Code = 5001
	LowUnsupportedStmt     Code = 5002
	LowUnsupportedPattern  Code = 5003
	LowTypeMismatch        Code = 5004
	LowUndefinedVariable   Code = 5005
	LowBadArgPosition      Code = 5006
	LowBadBuiltinCall      Code = 5007
	LowUnsupportedOperator Code = 5008
	LowBadFormatString     Code = 5009
	LowUnsupportedMethod   Code = 5010
	LowBreakOutsideLoop    Code = 5011

	// Emission Shell IR -> text
	EmtInfo                 Code = 6000
	EmtUnsupportedNode      Code = 6001
	EmtUnsupportedValue     Code = 6002
	EmtBadArithmeticOperand Code = 6003
	EmtBadName              Code = 6004
	EmtBadArgPosition       Code = 6005

	// Verification of emitted text
	VerInfo             Code = 7000
	VerParseFailed      Code = 7001
	VerLinterFailed     Code = 7002
	VerLinterMissing    Code = 7003
	VerNondeterministic Code = 7004
	VerNotIdempotent    Code = 7005
	VerNetworkEffect    Code = 7006

	// IO и окружение
	IOInfo          Code = 8000
	IOLoadFileError Code = 8001
	IOWriteError    Code = 8002
	IOCacheError    Code = 8003
	IOManifestError Code = 8004

	ObsInfo    Code = 9000
	ObsTimings Code = 9001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid integer literal",
		LexBadEscape:                "Invalid escape sequence",
		LexInvalidUTF8:              "Invalid UTF-8 in source",

		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectIdentifier:   "Expected identifier",
		SynExpectType:         "Expected type",
		SynExpectExpression:   "Expected expression",
		SynExpectBlock:        "Expected block",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynUnexpectedTopLevel: "Only functions are allowed at top level",
		SynMacroNotAllowed:    "Macro is not in the allow-list",
		SynBadAttribute:       "Invalid attribute",
		SynNestingTooDeep:     "Syntax nesting too deep",
		SynBadPattern:         "Invalid pattern",
		SynFeatureNotAllowed:  "Language feature is not supported",
		SynExpectSemicolon:    "Expected semicolon",

		ValInfo:                "Validation information",
		ValMissingEntryPoint:   "Missing entry point",
		ValDuplicateFunction:   "Duplicate function name",
		ValBadIdentifier:       "Unsafe identifier",
		ValNestingTooDeep:      "Expression nesting too deep",
		ValNulInLiteral:        "NUL byte in string literal",
		ValRecursion:           "Recursive call graph",
		ValUndefinedFunction:   "Call to undefined function",
		ValDisallowedType:      "Type is not allowed",
		ValShellReservedName:   "Identifier shadows a shell special variable",
		ValMissingReturnValue:  "Function does not produce a value",
		ValUnboundedLoop:       "Loop has no static iteration bound",
		ValEntryPointSignature: "Invalid entry point signature",
		ValDuplicateParam:      "Duplicate parameter name",
		ValCommandName:         "Function name collides with a shell command",

		InjInfo:              "Injection scan information",
		InjCommandSeparator:  "Command separator in literal",
		InjPipe:              "Pipe in literal",
		InjAndList:           "AND list operator in literal",
		InjOrList:            "OR list operator in literal",
		InjCommandSubst:      "Command substitution in literal",
		InjBacktick:          "Backtick substitution in literal",
		InjVariableExpansion: "Variable expansion in literal",
		InjGlobStar:          "Glob '*' in literal",
		InjGlobQuestion:      "Glob '?' in literal",
		InjNulByte:           "NUL byte in literal",
		InjNewlineCommand:    "Newline followed by a command in literal",
		InjQuoteEscape:       "Quote escape attempt in literal",
		InjShellshock:        "Shellshock function signature in literal",
		InjJNDILookup:        "JNDI lookup string in literal",
		InjHereDoc:           "Here-document opener in literal",
		InjProcessSubst:      "Process substitution in literal",
		InjRedirection:       "Redirection in literal",
		InjBackground:        "Background operator in literal",

		LowInfo:                "Lowering information",
		LowUnsupportedExpr:     "Expression has no shell translation",
		LowUnsupportedStmt:     "Statement has no shell translation",
		LowUnsupportedPattern:  "Pattern has no shell translation",
		LowTypeMismatch:        "Operand type mismatch",
		LowUndefinedVariable:   "Undefined variable",
		LowBadArgPosition:      "Invalid argument position",
		LowBadBuiltinCall:      "Invalid builtin call",
		LowUnsupportedOperator: "Operator not supported for operand type",
		LowBadFormatString:     "Invalid format string",
		LowUnsupportedMethod:   "Method has no shell translation",
		LowBreakOutsideLoop:    "break or continue outside of a loop",

		EmtInfo:                 "Emission information",
		EmtUnsupportedNode:      "IR node has no shell rendering",
		EmtUnsupportedValue:     "IR value has no shell rendering",
		EmtBadArithmeticOperand: "Invalid arithmetic operand",
		EmtBadName:              "Invalid shell name",
		EmtBadArgPosition:       "Invalid argument position",

		VerInfo:             "Verification information",
		VerParseFailed:      "Emitted script does not parse",
		VerLinterFailed:     "Linter reported problems",
		VerLinterMissing:    "Linter is not available",
		VerNondeterministic: "Emission is not deterministic",
		VerNotIdempotent:    "Command is not idempotent",
		VerNetworkEffect:    "Script performs network access",

		IOInfo:          "I/O information",
		IOLoadFileError: "Failed to load file",
		IOWriteError:    "Failed to write output",
		IOCacheError:    "Compile cache error",
		IOManifestError: "Invalid project manifest",

		ObsInfo:    "Observability information",
		ObsTimings: "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("INJ%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("EMT%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("VER%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
