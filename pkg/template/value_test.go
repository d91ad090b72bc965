package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"zero", Number(0), false},
		{"number", Number(-1.5), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty list", List(), false},
		{"list", List(Null()), true},
		{"empty record", Map(Record{}), false},
		{"record", Map(Record{"a": Null()}), true},
		{"empty raw", Raw(""), false},
		{"raw", Raw("<br>"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Truthy())
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "3", Int(3).Text())
	assert.Equal(t, "3.8", Number(3.8).Text())
	assert.Equal(t, "-0.25", Number(-0.25).Text())
	assert.Equal(t, "true", Bool(true).Text())
	assert.Equal(t, "x", String("x").Text())
	assert.Equal(t, "", Null().Text())
	assert.Equal(t, "", List(String("x")).Text())
}

func TestLookup(t *testing.T) {
	r := Record{
		"personal_info": Map(Record{
			"name": String("Ada"),
			"links": Map(Record{
				"github": String("gh"),
			}),
		}),
		"skills": Strings([]string{"Go"}),
	}

	v, found := r.Lookup("personal_info.name")
	require.True(t, found)
	assert.Equal(t, "Ada", v.Text())

	v, found = r.Lookup("personal_info.links.github")
	require.True(t, found)
	assert.Equal(t, "gh", v.Text())

	_, found = r.Lookup("personal_info.missing")
	assert.False(t, found)

	_, found = r.Lookup("skills.0")
	assert.False(t, found)

	_, found = r.Lookup("personal_info.name.first")
	assert.False(t, found)
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestFromAny(t *testing.T) {
	type level int

	v := FromAny(map[string]any{
		"name":     "Ada",
		"age":      36,
		"gpa":      3.9,
		"active":   true,
		"none":     nil,
		"tags":     []string{"a", "b"},
		"links":    map[string]string{"github": "gh"},
		"nested":   []any{map[string]any{"k": "v"}},
		"level":    level(2),
		"pointer":  &[]int{1},
		"stringer": stringer{},
		"raw":      Raw("<b>"),
	})
	require.Equal(t, KindRecord, v.Kind())
	r := v.Record()

	assert.Equal(t, KindString, r["name"].Kind())
	assert.Equal(t, "36", r["age"].Text())
	assert.Equal(t, "3.9", r["gpa"].Text())
	assert.True(t, r["active"].Truthy())
	assert.Equal(t, KindNull, r["none"].Kind())

	require.Equal(t, KindList, r["tags"].Kind())
	assert.Len(t, r["tags"].Items(), 2)
	assert.Equal(t, "b", r["tags"].Items()[1].Text())

	gh, found := r["links"].Record().Lookup("github")
	require.True(t, found)
	assert.Equal(t, "gh", gh.Text())

	nested := r["nested"].Items()
	require.Len(t, nested, 1)
	assert.Equal(t, "v", nested[0].Record()["k"].Text())

	assert.Equal(t, KindNumber, r["level"].Kind())
	assert.Equal(t, "2", r["level"].Text())

	require.Len(t, r["pointer"].Items(), 1)
	assert.Equal(t, "stringer", r["stringer"].Text())

	assert.Equal(t, KindString, r["raw"].Kind())
	assert.Equal(t, "<b>", r["raw"].Text())
}

func TestRecordFromMapNil(t *testing.T) {
	r := RecordFromMap(nil)
	require.NotNil(t, r)
	assert.Empty(t, r)
}

func TestKeys(t *testing.T) {
	r := Record{"b": Null(), "a": Null(), "c": Null()}
	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "raw", KindRaw.String())
}
