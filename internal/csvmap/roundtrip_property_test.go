package csvmap

import (
	"bytes"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type sample struct {
	Name  string
	Size  float64
	Fast  bool
	When  time.Time
	At    Clock
	Tags  StringSet
	Notes string
}

func sampleFields() []Field[sample] {
	return []Field[sample]{
		{
			Name: "name", Kind: KindString,
			Get: func(s *sample) interface{} { return s.Name },
			Set: func(s *sample, v interface{}) { s.Name, _ = v.(string) },
		},
		{
			Name: "size", Kind: KindFloat,
			Get: func(s *sample) interface{} { return s.Size },
			Set: func(s *sample, v interface{}) { s.Size, _ = v.(float64) },
		},
		{
			Name: "fast", Kind: KindBool,
			Get: func(s *sample) interface{} { return s.Fast },
			Set: func(s *sample, v interface{}) { s.Fast, _ = v.(bool) },
		},
		{
			Name: "when", Kind: KindDate,
			Get: func(s *sample) interface{} { return s.When },
			Set: func(s *sample, v interface{}) { s.When, _ = v.(time.Time) },
		},
		{
			Name: "at", Kind: KindTime,
			Get: func(s *sample) interface{} { return s.At },
			Set: func(s *sample, v interface{}) { s.At, _ = v.(Clock) },
		},
		{
			Name: "tags", Kind: KindSet, Optional: true,
			Get: func(s *sample) interface{} { return s.Tags },
			Set: func(s *sample, v interface{}) {
				if set, ok := v.(StringSet); ok {
					s.Tags = set
				} else {
					s.Tags = StringSet{}
				}
			},
		},
		{
			Name: "notes", Kind: KindString, Optional: true,
			Get: func(s *sample) interface{} { return s.Notes },
			Set: func(s *sample, v interface{}) { s.Notes, _ = v.(string) },
		},
	}
}

var tokenGen = gen.RegexMatch(`[a-zA-Z][a-zA-Z0-9 .,_-]{0,15}[a-zA-Z0-9]`)

func sampleGen() gopter.Gen {
	return gopter.CombineGens(
		tokenGen,
		gen.Float64Range(-100000, 100000),
		gen.Bool(),
		gen.Int64Range(0, 20000),
		gen.IntRange(0, 23),
		gen.IntRange(0, 59),
		gen.SliceOfN(3, tokenGen),
		tokenGen,
	).Map(func(vs []interface{}) sample {
		tags := StringSet{}
		for _, t := range vs[6].([]string) {
			tags.Add(t)
		}
		return sample{
			Name: vs[0].(string),
			Size: vs[1].(float64),
			Fast: vs[2].(bool),
			When: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(vs[3].(int64))),
			At:   Clock{Hour: vs[4].(int), Minute: vs[5].(int)},
			Tags: tags,
			Notes: vs[7].(string),
		}
	})
}

// Saving records and loading them back yields the same records,
// whatever the field contents.
func TestProperty_RecordRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("save then load produces equal records", prop.ForAll(
		func(samples []sample) bool {
			records := make([]*sample, len(samples))
			for i := range samples {
				records[i] = &samples[i]
			}

			var buf bytes.Buffer
			if err := SaveRecords(&buf, records, sampleFields(), nil, nil); err != nil {
				t.Logf("save failed: %v", err)
				return false
			}

			loaded, rowErrs, err := LoadRecords(&buf, sampleFields(), nil)
			if err != nil {
				t.Logf("load failed: %v", err)
				return false
			}
			if len(rowErrs) != 0 {
				t.Logf("unexpected row errors: %v", rowErrs)
				return false
			}
			if len(loaded) != len(records) {
				return false
			}

			for i := range records {
				a, b := records[i], loaded[i]
				if a.Name != b.Name || a.Fast != b.Fast || a.Notes != b.Notes {
					return false
				}
				if a.Size != b.Size {
					return false
				}
				if !a.When.Equal(b.When) {
					return false
				}
				if a.At.Hour != b.At.Hour || a.At.Minute != b.At.Minute {
					return false
				}
				if len(a.Tags) != len(b.Tags) {
					return false
				}
				for tag := range a.Tags {
					if !b.Tags.Has(tag) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(sampleGen()),
	))

	properties.TestingRun(t)
}
