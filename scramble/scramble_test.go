package scramble

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnscramble(t *testing.T) {
	in := []byte{0x00, 0x00, 0x00, 0xff, 0x10}
	assert.Equal(t, []byte{0x00, 0x01, 0x02, 0xfc, 0x14}, Unscramble(in))

	// Input must be left alone
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xff, 0x10}, in)
}

func TestUnscrambleWraps(t *testing.T) {
	in := make([]byte, 0x201)
	out := Unscramble(in)
	assert.Len(t, out, len(in))
	assert.Equal(t, byte(0xff), out[0xff])
	assert.Equal(t, byte(0x00), out[0x100])
	assert.Equal(t, byte(0x00), out[0x200])
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 255, 256, 257, 4096} {
		b := make([]byte, n)
		rng.Read(b)

		// Second pass regenerates the keystream from scratch
		got := Scramble(Unscramble(b))
		if !bytes.Equal(b, got) {
			t.Errorf("Scramble(Unscramble(b)) with %d bytes did not round trip", n)
		}
	}
}

func TestEmpty(t *testing.T) {
	assert.Empty(t, Unscramble(nil))
}
