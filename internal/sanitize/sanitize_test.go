package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips tags", "<b>bold</b> text", "bold text"},
		{"strips script tags", "<script>alert(1)</script>ok", "alert(1)ok"},
		{"escapes special characters", `Tom & "Jerry"`, "Tom &amp; &#34;Jerry&#34;"},
		{"escapes single quotes", "it's", "it&#39;s"},
		{"collapses whitespace runs", "a   b\t\nc", "a b c"},
		{"stray angle bracket kept", "1 < 2", "1 &lt; 2"},
		{"empty string", "", ""},
		{"combined", "  <i> spaced   out </i>  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, String(tt.input))
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		"  hello  ",
		"<b>bold</b> text",
		`Tom & "Jerry" <script>alert('x')</script>`,
		"already &amp; escaped",
		"a   b\t\nc",
		"1 < 2 > 0",
	}
	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "sanitizing twice must equal sanitizing once for %q", in)
	}
}

func TestValue(t *testing.T) {
	input := map[string]interface{}{
		"name": "  <b>Ann</b>  ",
		"tags": []interface{}{" one ", "<i>two</i>", 3},
		"nested": map[string]interface{}{
			"deep": []interface{}{
				map[string]interface{}{"leaf": "  a   b "},
			},
		},
		"count":  7,
		"active": true,
	}

	out := Value(input).(map[string]interface{})

	assert.Equal(t, "Ann", out["name"])
	assert.Equal(t, []interface{}{"one", "two", 3}, out["tags"])
	nested := out["nested"].(map[string]interface{})
	deep := nested["deep"].([]interface{})
	assert.Equal(t, "a b", deep[0].(map[string]interface{})["leaf"])
	assert.Equal(t, 7, out["count"])
	assert.Equal(t, true, out["active"])

	// input untouched
	assert.Equal(t, "  <b>Ann</b>  ", input["name"])
}

func TestValueIdempotent(t *testing.T) {
	input := map[string]interface{}{
		"a": " <b>x</b> & y ",
		"b": []interface{}{"   'quoted'  ", map[string]interface{}{"c": "z   z"}},
	}
	once := Value(input)
	assert.Equal(t, once, Value(once))
}
