package badger

import (
	"fmt"

	"github.com/poiesic/realsearch/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix = "chunk"
	chunkTypePrefix   = "chunkt"
)

// makeChunkKey generates a key for a document chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkTypeKey generates a composite key for the chunk-type index.
// Format: prefix:type:id
func makeChunkTypeKey(ct core.ChunkType, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", chunkTypePrefix, ct, id))
}
