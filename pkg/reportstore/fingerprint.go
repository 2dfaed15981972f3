package reportstore

import (
	"encoding/binary"

	"randcert-go/pkg/congruential"
	"randcert-go/pkg/middlesquare"
)

// table is a permutation of 0..255 for Pearson hashing, shuffled with the
// middle-square sequence so it is reproducible across builds.
var table = shuffledTable(middlesquare.DefaultSeed)

func shuffledTable(seed int) [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = uint8(i)
	}
	pool := middlesquare.NewPool(len(t)-1, seed)
	for i := len(t) - 1; i > 0; i-- {
		j := pool.At(len(t)-1-i) % (i + 1)
		t[i], t[j] = t[j], t[i]
	}
	return t
}

// hash64 runs eight Pearson hashes seeded 0..7 and concatenates them.
func hash64(data []byte) uint64 {
	var h uint64
	if len(data) == 0 {
		return h
	}
	for seed := 0; seed < 8; seed++ {
		b := table[uint8(seed)^data[0]]
		for _, c := range data[1:] {
			b = table[b^c]
		}
		h = h<<8 | uint64(b)
	}
	return h
}

// Fingerprint identifies a generator configuration. Equal configurations
// always share a fingerprint; the store compares the full configuration on
// lookup to rule out collisions.
func Fingerprint(cfg congruential.Config) uint64 {
	buf := make([]byte, 0, 48)
	for _, v := range []uint64{
		uint64(cfg.Count),
		cfg.Multiplier,
		cfg.Increment,
		uint64(cfg.PoolSize),
		cfg.Modulus,
		uint64(cfg.InitialSeed),
	} {
		buf = binary.BigEndian.AppendUint64(buf, v)
	}
	return hash64(buf)
}
