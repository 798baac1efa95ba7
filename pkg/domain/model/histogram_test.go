package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"velocity/pkg/domain/model"
)

func TestHistogramAdd(t *testing.T) {
	t.Run("counts repeated seconds", func(t *testing.T) {
		h := model.NewHistogram(time.UTC)
		h.AddUnix(1000)
		h.AddUnix(1000)
		h.AddUnix(2000)

		gt.Equal(t, h.Len(), 2)
		gt.Equal(t, h.Total(), 3)
		gt.Equal(t, h.Count(time.Unix(1000, 0)), 2)
		gt.Equal(t, h.Count(time.Unix(2000, 0)), 1)
		gt.Equal(t, h.Peak(), 2)
	})

	t.Run("sub-second precision is dropped", func(t *testing.T) {
		h := model.NewHistogram(time.UTC)
		h.Add(time.Unix(1000, 100*int64(time.Millisecond)))
		h.Add(time.Unix(1000, 900*int64(time.Millisecond)))

		gt.Equal(t, h.Len(), 1)
		gt.Equal(t, h.Count(time.Unix(1000, 0)), 2)
	})

	t.Run("nil location falls back to local", func(t *testing.T) {
		h := model.NewHistogram(nil)
		gt.Equal(t, h.Location(), time.Local)
	})
}

func TestHistogramPoints(t *testing.T) {
	h := model.NewHistogram(time.UTC)
	for _, sec := range []int64{30, 10, 30, 20, 10, 30} {
		h.AddUnix(sec)
	}

	t.Run("first-seen order", func(t *testing.T) {
		points := h.Points(model.OrderFirstSeen)
		gt.A(t, points).Length(3)
		gt.Equal(t, points[0].Time.Unix(), int64(30))
		gt.Equal(t, points[0].Count, 3)
		gt.Equal(t, points[1].Time.Unix(), int64(10))
		gt.Equal(t, points[1].Count, 2)
		gt.Equal(t, points[2].Time.Unix(), int64(20))
		gt.Equal(t, points[2].Count, 1)
	})

	t.Run("chronological order", func(t *testing.T) {
		points := h.Points(model.OrderChronological)
		gt.A(t, points).Length(3)
		gt.Equal(t, points[0].Time.Unix(), int64(10))
		gt.Equal(t, points[1].Time.Unix(), int64(20))
		gt.Equal(t, points[2].Time.Unix(), int64(30))
	})

	t.Run("sorting does not disturb insertion order", func(t *testing.T) {
		_ = h.Points(model.OrderChronological)
		points := h.Points(model.OrderFirstSeen)
		gt.Equal(t, points[0].Time.Unix(), int64(30))
	})

	t.Run("points carry histogram location", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		h := model.NewHistogram(loc)
		h.AddUnix(0)
		points := h.Points(model.OrderFirstSeen)
		gt.Equal(t, points[0].Time.Location(), loc)
		gt.Equal(t, points[0].Time.Hour(), 9)
	})
}

func TestHistogramSpan(t *testing.T) {
	t.Run("empty histogram", func(t *testing.T) {
		h := model.NewHistogram(time.UTC)
		_, _, ok := h.Span()
		gt.False(t, ok)
		gt.A(t, h.Points(model.OrderFirstSeen)).Length(0)
		gt.Equal(t, h.Total(), 0)
	})

	t.Run("span ignores insertion order", func(t *testing.T) {
		h := model.NewHistogram(time.UTC)
		h.AddUnix(50)
		h.AddUnix(5)
		h.AddUnix(500)
		start, end, ok := h.Span()
		gt.True(t, ok)
		gt.Equal(t, start.Unix(), int64(5))
		gt.Equal(t, end.Unix(), int64(500))
	})
}

func TestParseOrder(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		o, err := model.ParseOrder("first-seen")
		gt.NoError(t, err)
		gt.Equal(t, o, model.OrderFirstSeen)

		o, err = model.ParseOrder("")
		gt.NoError(t, err)
		gt.Equal(t, o, model.OrderFirstSeen)

		o, err = model.ParseOrder("time")
		gt.NoError(t, err)
		gt.Equal(t, o, model.OrderChronological)
		gt.Equal(t, o.String(), "time")
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := model.ParseOrder("random")
		gt.Error(t, err)
		gt.True(t, goerr.HasTag(err, model.ErrTagInvalidOption))
	})
}

func TestStatsSkipped(t *testing.T) {
	s := model.Stats{Lines: 10, Records: 6, Malformed: 3, MissingField: 1}
	gt.Equal(t, s.Skipped(), 4)
}
