package query

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/sqlq/internal/value"
)

// HashDomain separates query hashes from any other content hash.
const HashDomain = "sqlq/query/v1"

// Equal reports whether q and other compile to the same text with the same
// bound values. How either query was built does not matter.
func (q *Query) Equal(other *Query) bool {
	if q == nil || other == nil {
		return q == other
	}
	if q == other {
		return true
	}
	return q.Compile().Equal(other.Compile())
}

// Hash returns a content hash of the compiled statement. Equal queries hash
// equally.
func (q *Query) Hash() string {
	stmt := q.Compile()
	args, err := value.MarshalCanonicalList(stmt.Args)
	if err != nil {
		// Args were normalized at construction; they always encode.
		panic(&InternalError{Kind: q.kind, Message: fmt.Sprintf("encode args: %v", err)})
	}

	data := make([]byte, 0, len(stmt.SQL)+1+len(args))
	data = append(data, stmt.SQL...)
	data = append(data, 0x00)
	data = append(data, args...)
	return value.Fingerprint(HashDomain, data)
}

// String returns the compiled statement with its bound values appended.
func (q *Query) String() string {
	return q.Compile().String()
}

func formatArg(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return strconv.Quote(val)
	case []byte:
		return "0x" + hex.EncodeToString(val)
	case time.Time:
		return strconv.Quote(val.Format(time.RFC3339Nano))
	default:
		return fmt.Sprint(val)
	}
}
