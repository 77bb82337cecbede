// Package aggregate groups time-stamped samples into day or week buckets and
// reduces every bucket to a single value. It backs both chart series and
// mission threshold checks.
package aggregate

import (
	"fmt"
	"sort"
	"time"
)

type Bucketing int

const (
	Daily Bucketing = iota
	Weekly
)

func (b Bucketing) String() string {
	switch b {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	default:
		return fmt.Sprintf("bucketing(%d)", int(b))
	}
}

type Reducer int

const (
	Sum Reducer = iota
	Average
	// First keeps the value of the earliest sample in the bucket.
	First
)

type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Key identifies a bucket. Daily buckets only use Day, weekly buckets only
// use Year and Week (ISO 8601, weeks start on Monday).
type Key struct {
	Day  int64
	Year int
	Week int
}

func (k Key) Less(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Week != other.Week {
		return k.Week < other.Week
	}
	return k.Day < other.Day
}

func (k Key) String() string {
	if k.Year != 0 {
		return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
	}
	return time.Unix(k.Day*secondsPerDay, 0).UTC().Format(time.DateOnly)
}

type Bucket struct {
	Key       Key       `json:"-"`
	Label     string    `json:"label"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Count     int       `json:"count"`
}

const secondsPerDay = 24 * 60 * 60

// DayNumber returns the number of days since the unix epoch of the local
// calendar date of t in loc.
func DayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(location(loc)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func KeyOf(t time.Time, bucketing Bucketing, loc *time.Location) Key {
	if bucketing == Weekly {
		year, week := t.In(location(loc)).ISOWeek()
		return Key{Year: year, Week: week}
	}
	return Key{Day: DayNumber(t, loc)}
}

// Aggregate groups samples by bucket and returns the reduced buckets sorted
// ascending by key. A nil loc means time.Local.
func Aggregate(samples []Sample, bucketing Bucketing, reducer Reducer, loc *time.Location) []Bucket {
	type group struct {
		sum      float64
		count    int
		first    Sample
		earliest time.Time
	}

	groups := make(map[Key]*group)
	for _, s := range samples {
		key := KeyOf(s.Timestamp, bucketing, loc)
		g, ok := groups[key]
		if !ok {
			g = &group{first: s, earliest: s.Timestamp}
			groups[key] = g
		}
		g.sum += s.Value
		g.count++
		if s.Timestamp.Before(g.earliest) {
			g.earliest = s.Timestamp
			g.first = s
		}
	}

	buckets := make([]Bucket, 0, len(groups))
	for key, g := range groups {
		b := Bucket{
			Key:       key,
			Label:     key.String(),
			Timestamp: g.earliest,
			Count:     g.count,
		}
		switch reducer {
		case Average:
			b.Value = g.sum / float64(g.count)
		case First:
			b.Value = g.first.Value
		default:
			b.Value = g.sum
		}
		buckets = append(buckets, b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Less(buckets[j].Key)
	})

	return buckets
}

// ValueAt returns the reduced value of the bucket containing t, or 0 when
// no sample fell into that bucket.
func ValueAt(samples []Sample, bucketing Bucketing, reducer Reducer, t time.Time, loc *time.Location) float64 {
	key := KeyOf(t, bucketing, loc)
	for _, b := range Aggregate(samples, bucketing, reducer, loc) {
		if b.Key == key {
			return b.Value
		}
	}
	return 0
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
