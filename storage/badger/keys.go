package badger

import (
	"fmt"

	"github.com/poiesic/papyrus/core"
)

// Key prefixes for different data types
const (
	paperRecordPrefix = "paprec"
)

// makePaperKey generates a key for a paper by ID.
func makePaperKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", paperRecordPrefix, id))
}
