package domain

import "time"

// FlushReason tells why the pipeline sent a write.
type FlushReason string

const (
	FlushDebounced FlushReason = "debounce"  // debounce window elapsed
	FlushReconcile FlushReason = "reconcile" // stranded intent of another product
	FlushRemove    FlushReason = "remove"    // immediate removal
)

// FlushRecord is one gateway write attempt made by the pipeline.
type FlushRecord struct {
	ID        int64         `json:"id"`
	ProductID int           `json:"productId"`
	Quantity  int           `json:"quantity"`
	Reason    FlushReason   `json:"reason"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}
