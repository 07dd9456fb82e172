package rsmq

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

const (
	idRandomLen = 22
	idPrefixLen = 10
	idAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var idAlphabetSize = big.NewInt(int64(len(idAlphabet)))

// generateMessageID produces the 32-character sortable id described in the
// data model: a 10-character base-36 encoding of tsMillis (left padded with
// zeros) followed by 22 characters drawn uniformly from the 62-character
// alphanumeric alphabet. Ids therefore sort lexicographically by send time.
func generateMessageID(tsMillis uint64) (string, error) {
	prefix := strconv.FormatUint(tsMillis, 36)
	if len(prefix) < idPrefixLen {
		prefix = strings.Repeat("0", idPrefixLen-len(prefix)) + prefix
	}

	suffix, err := randomAlphanumeric(idRandomLen)
	if err != nil {
		return "", err
	}

	return prefix + suffix, nil
}

func randomAlphanumeric(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, idAlphabetSize)
		if err != nil {
			return "", ErrBugCreatingRandomValue
		}
		sb.WriteByte(idAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// decodeSentMillis recovers the millisecond send timestamp embedded in the
// first 10 characters of a message id.
func decodeSentMillis(id string) uint64 {
	if len(id) < idPrefixLen {
		return 0
	}
	ts, err := strconv.ParseUint(id[:idPrefixLen], 36, 64)
	if err != nil {
		return 0
	}
	return ts
}
