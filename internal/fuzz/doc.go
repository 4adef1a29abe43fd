// Package fuzztests holds Go fuzz harnesses for the lexer and parser. They
// feed arbitrary bytes through FileSet, lexer and parser and check that
// nothing panics, hangs or leaks a partial tree.
//
// Не делает: генерацию корпусов, запись файлов, запуск CLI.
package fuzztests
