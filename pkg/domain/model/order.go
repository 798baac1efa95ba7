package model

import "github.com/m-mizutani/goerr/v2"

// Order controls how histogram points are sequenced for plotting.
type Order int

const (
	// OrderFirstSeen keeps the order in which seconds first appeared in the input.
	OrderFirstSeen Order = iota
	// OrderChronological sorts points by time.
	OrderChronological
)

func (o Order) String() string {
	switch o {
	case OrderChronological:
		return "time"
	default:
		return "first-seen"
	}
}

// ParseOrder converts a flag value into an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "first-seen", "":
		return OrderFirstSeen, nil
	case "time", "chronological":
		return OrderChronological, nil
	default:
		return OrderFirstSeen, goerr.New("invalid point order",
			goerr.V("order", s),
			goerr.T(ErrTagInvalidOption))
	}
}
