/*
Package scramble removes the simple XOR mask applied to every Dunjunz level
block on tape.

Each byte is XORed with the low eight bits of its own position in the block,
so the keystream is 0x00, 0x01, ... 0xff, 0x00, ... and applying the mask
twice yields the original bytes.
*/
package scramble

// Unscramble returns a new slice holding b with the position mask removed.
// The input is not modified.
func Unscramble(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[i] = b[i] ^ byte(i&0xff)
	}
	return out
}

// Scramble applies the position mask to b. The mask is its own inverse so
// this is the same transform as Unscramble.
func Scramble(b []byte) []byte {
	return Unscramble(b)
}
