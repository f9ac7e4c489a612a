package purchase

import "errors"

// ErrPeriodNotPurchased is distinguished from generic failures so the
// caller can render a purchase prompt instead of an error banner.
var ErrPeriodNotPurchased = errors.New("period not purchased")
