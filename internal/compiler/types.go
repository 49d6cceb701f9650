package compiler

// Type represents a c4 expression or declared type: CHAR and INT are base
// types, and each level of pointer indirection adds PTR (spec §4.C). So
// "int **x" has type INT+PTR+PTR; "ty >= PTR" tests for "is a pointer", and
// "ty > PTR" for "points at a word-sized element" (any pointer but char*).
type Type int

const (
	CHAR Type = 0
	INT  Type = 1
	PTR  Type = 2
)

// wordSize is what a pointer's scaled arithmetic steps by for any type
// above PTR (spec §4.C, pointer-arithmetic scaling); char pointers (and
// plain ints/chars) step by 1.
const wordSize = 4
