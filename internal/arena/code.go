// Package arena implements the two append-only backing stores the compiler
// writes into: a code word arena and a data byte arena. Addresses handed
// out by either are offsets, never host pointers, so that the resulting
// image stays position-independent (spec §3, §9 "arena+index model").
package arena

// Code is the append-only code segment: a growing array of signed 32-bit
// instruction/operand words. Word 0 is a sentinel so that the first real
// instruction lives at offset 1, matching spec §3's "code buffer starts
// with a sentinel word at index 0".
type Code struct {
	Words []int32
}

// NewCode returns a Code arena with its sentinel word already written.
func NewCode() *Code {
	return &Code{Words: []int32{0}}
}

// Here returns the address the next Emit will be written to.
func (c *Code) Here() int32 { return int32(len(c.Words)) }

// Emit appends word and returns the address it was written to.
func (c *Code) Emit(word int32) int32 {
	addr := c.Here()
	c.Words = append(c.Words, word)
	return addr
}

// Last returns the most recently emitted word. Valid only when len(Words)
// > 1 (past the sentinel); callers that rely on it always do so right
// after emitting at least one real word.
func (c *Code) Last() int32 { return c.Words[len(c.Words)-1] }

// RewriteLast overwrites the most recently emitted word in place. Used by
// the expression compiler's assignment and pre/post ++/-- paths,
// which both need to turn a just-emitted load (LI/LC) into something else
// without re-walking the expression (spec §9, "peek last emitted word").
func (c *Code) RewriteLast(word int32) { c.Words[len(c.Words)-1] = word }

// Rewind discards the most recently emitted word. Used by unary & to
// cancel the load that would otherwise read the lvalue it is addressing.
func (c *Code) Rewind() { c.Words = c.Words[:len(c.Words)-1] }

// Patch sets the word at slot to the signed offset from slot to the
// current emission head, the "relative branch" invariant spec §3 and §8
// (testable property 1) require of every branch operand.
func (c *Code) Patch(slot int32) { c.Words[slot] = c.Here() - slot }

// PatchTo sets the word at slot to the signed offset from slot to target,
// for backward branches (e.g. a while loop's trailing jump) where the
// target is a previously recorded address rather than the current head.
func (c *Code) PatchTo(slot, target int32) { c.Words[slot] = target - slot }
