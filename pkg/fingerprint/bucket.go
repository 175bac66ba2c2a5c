package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"net/http"

	"github.com/dmitrymomot/httpkit/pkg/clientip"
)

// bucketCount is the number of assignment buckets. Percentage-based rollouts
// compare a client's bucket against a threshold in [0, 100].
const bucketCount = 100

// Bucket assigns the request's client to one of 100 stable buckets derived
// from the client IP and User-Agent. The same client always lands in the same
// bucket, which makes the result suitable for deterministic percentage
// rollouts: a client is inside an N% rollout when Bucket(r) < N.
//
// Unlike Generate, the bucket intentionally ignores Accept headers and the
// header set so that content negotiation does not move a client between
// buckets mid-session.
func Bucket(r *http.Request) int {
	key := clientip.GetIP(r) + "|" + r.UserAgent()
	hash := sha256.Sum256([]byte(key))
	return int(binary.BigEndian.Uint32(hash[:4]) % bucketCount)
}
