package offline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/podstock/stocksync/internal/domain"
)

// Op is the kind of remote-store write a queued entry carries
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// InsertPayload carries a full row to insert
type InsertPayload struct {
	Row json.RawMessage `json:"row"`
}

// UpdatePayload carries a patch for the row with the given id
type UpdatePayload struct {
	ID    string          `json:"id"`
	Patch json.RawMessage `json:"patch"`
}

// DeletePayload names the row to delete
type DeletePayload struct {
	ID string `json:"id"`
}

// Entry is one buffered write. It is a tagged variant: Op selects which of
// the three payload fields is set, and dispatch is an exhaustive switch on
// Op rather than a dynamic branch.
type Entry struct {
	ID         string            `json:"id"`
	Collection domain.Collection `json:"collection"`
	Op         Op                `json:"operation"`
	EnqueuedAt time.Time         `json:"enqueued_at"`

	Insert *InsertPayload `json:"insert,omitempty"`
	Update *UpdatePayload `json:"update,omitempty"`
	Delete *DeletePayload `json:"delete,omitempty"`
}

// Validate checks that the entry carries exactly the payload its Op names
func (e Entry) Validate() error {
	switch e.Op {
	case OpInsert:
		if e.Insert == nil || e.Update != nil || e.Delete != nil {
			return fmt.Errorf("entry %s: insert op requires exactly an insert payload", e.ID)
		}
	case OpUpdate:
		if e.Update == nil || e.Insert != nil || e.Delete != nil {
			return fmt.Errorf("entry %s: update op requires exactly an update payload", e.ID)
		}
	case OpDelete:
		if e.Delete == nil || e.Insert != nil || e.Update != nil {
			return fmt.Errorf("entry %s: delete op requires exactly a delete payload", e.ID)
		}
	default:
		return fmt.Errorf("entry %s: unknown operation %q", e.ID, e.Op)
	}
	return nil
}
