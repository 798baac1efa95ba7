package aggregate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ohler55/ojg/jp"
)

// DefaultField is the record field holding the event time in epoch milliseconds.
const DefaultField = "timestamp_ms"

// compileField turns a field name or JSONPath expression into a jp.Expr.
// A bare name is looked up at the top level of the record.
func compileField(field string) (jp.Expr, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = DefaultField
	}

	expr := field
	if !strings.HasPrefix(field, "$") && !strings.HasPrefix(field, "@") {
		expr = "$." + field
	}

	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timestamp field expression", goerr.V("field", field))
	}
	return x, nil
}

// epochMillis converts a decoded JSON value into epoch milliseconds.
// ok is false for anything that is not a finite number or an integer string.
func epochMillis(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n <= math.MinInt64 {
			return 0, false
		}
		return int64(math.Trunc(n)), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return epochMillis(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// epochSecond floors milliseconds to the containing second.
func epochSecond(ms int64) int64 {
	sec := ms / 1000
	if ms%1000 < 0 {
		sec--
	}
	return sec
}
