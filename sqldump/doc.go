// Package sqldump scans MySQL dump files, as published for MediaWiki
// databases, for the tuples of one table.
//
// A dump is a sequence of SQL statements. Only statements of the form
//
//	INSERT INTO `table` VALUES (v, v, ...),(v, v, ...),...;
//
// are interpreted; everything else (CREATE TABLE, comments, LOCK TABLES, and
// INSERTs into other tables) is skipped byte for byte. Values are NULL,
// TRUE/FALSE, signed decimal integers, floats and single-quoted strings with
// MySQL backslash escapes.
//
// Scanning never copies the input. String literals without escapes are
// returned as slices of the input; only literals containing escape sequences
// get a buffer of their own (see Str).
package sqldump
