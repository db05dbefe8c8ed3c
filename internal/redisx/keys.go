package redisx

import "time"

// Cached order body: order:{id} -> JSON exactly as served by GET /orders/{id}.
// Dropped on cancellation.
const KeyOrderCache = "order:%d"

var TTLOrderCache = 5 * time.Minute
