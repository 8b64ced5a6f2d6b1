// Package fuzztests houses Go fuzz harnesses for the listing pipeline
// (lexer, checker and PRG encoder). They guard against panics and broken
// invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, Validate и Encode.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/check, internal/diag, internal/prg.

package fuzztests
