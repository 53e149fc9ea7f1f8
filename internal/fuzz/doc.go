// Package fuzztests houses Go fuzz harnesses for the rash compiler:
// lexer, parser and the whole pipeline down to emitted shell text.
// Their goal is to catch panics, hangs and broken invariants on arbitrary
// inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, парсер
// и driver.Compile.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
