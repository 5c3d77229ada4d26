package sink

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// xxhashSeed derives a short, collision-resistant identifier from a
// monotonic job counter. The teacher hashes file content for index
// dedup with the same library; here it hashes a counter instead, since
// a scan job has no content to hash yet when its temp files are named.
func xxhashSeed(counter uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], counter)
	return xxhash.Sum64(buf[:])
}
