package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/librarian/core"
)

// Key prefixes for different data types
const (
	bookPrefix         = "book"
	bookPositionPrefix = "bookpos"
	requestLogPrefix   = "reqlog"
	requestLogIDSeq    = "reqlogseq"
)

// makeBookKey generates a key for a book by ID.
func makeBookKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", bookPrefix, id))
}

// makeBookPositionKey generates a key for the corpus-order index.
// Format: prefix:position
func makeBookPositionKey(position int) []byte {
	prefix := []byte(bookPositionPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}

// makeRequestLogKey generates a key for a request log entry.
// Format: prefix:id
func makeRequestLogKey(id core.ID) []byte {
	prefix := []byte(requestLogPrefix + ":")
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
