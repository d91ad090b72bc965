package template

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) (r Record) {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	r = RecordFromMap(data)
	return r
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     string
		want     string
	}{
		{
			name:     "flat scalar",
			template: "Hello {{name}}!",
			data:     `{"name": "World"}`,
			want:     "Hello World!",
		},
		{
			name:     "escaping",
			template: "{{bio}}",
			data:     `{"bio": "<b>x</b>"}`,
			want:     "&lt;b&gt;x&lt;/b&gt;",
		},
		{
			name:     "escapes quotes and ampersand",
			template: `<a title="{{t}}">`,
			data:     `{"t": "Tom & \"Jerry\" 'quoted'"}`,
			want:     `<a title="Tom &amp; &#34;Jerry&#34; &#39;quoted&#39;">`,
		},
		{
			name:     "nested key",
			template: "{{a.b}}",
			data:     `{"a": {"b": "Z"}}`,
			want:     "Z",
		},
		{
			name:     "deeply nested key",
			template: "{{a.b.c}}",
			data:     `{"a": {"b": {"c": 7}}}`,
			want:     "7",
		},
		{
			name:     "numbers and bools",
			template: "{{gpa}} {{years}} {{open}}",
			data:     `{"gpa": 3.8, "years": 5, "open": false}`,
			want:     "3.8 5 false",
		},
		{
			name:     "whitespace inside tag",
			template: "{{ name }}",
			data:     `{"name": "Ada"}`,
			want:     "Ada",
		},
		{
			name:     "unresolved placeholder passes through",
			template: "{{unknown}}",
			data:     `{}`,
			want:     "{{unknown}}",
		},
		{
			name:     "record placeholder passes through",
			template: "{{a}}",
			data:     `{"a": {"b": "Z"}}`,
			want:     "{{a}}",
		},
		{
			name:     "list placeholder passes through",
			template: "{{items}}",
			data:     `{"items": [1, 2]}`,
			want:     "{{items}}",
		},
		{
			name:     "key is not a prefix match",
			template: "{{name}} {{name_full}} {{names}}",
			data:     `{"name": "A", "name_full": "B"}`,
			want:     "A B {{names}}",
		},
		{
			name:     "bare key without delimiters is untouched",
			template: "name {name} {{name}}",
			data:     `{"name": "A"}`,
			want:     "name {name} A",
		},
		{
			name:     "conditional true",
			template: "{{#if show}}YES{{/if}}",
			data:     `{"show": true}`,
			want:     "YES",
		},
		{
			name:     "conditional false",
			template: "{{#if show}}YES{{/if}}",
			data:     `{"show": false}`,
			want:     "",
		},
		{
			name:     "conditional missing",
			template: "{{#if show}}YES{{/if}}",
			data:     `{}`,
			want:     "",
		},
		{
			name:     "conditional empty string",
			template: "a{{#if s}}YES{{/if}}b",
			data:     `{"s": ""}`,
			want:     "ab",
		},
		{
			name:     "conditional zero",
			template: "{{#if n}}YES{{/if}}",
			data:     `{"n": 0}`,
			want:     "",
		},
		{
			name:     "conditional empty list",
			template: "{{#if l}}YES{{/if}}",
			data:     `{"l": []}`,
			want:     "",
		},
		{
			name:     "conditional empty record",
			template: "{{#if r}}YES{{/if}}",
			data:     `{"r": {}}`,
			want:     "",
		},
		{
			name:     "conditional non-empty record",
			template: "{{#if r}}YES{{/if}}",
			data:     `{"r": {"k": 1}}`,
			want:     "YES",
		},
		{
			name:     "conditional nested path with body placeholder",
			template: `{{#if contact.github}}<a href="{{contact.github}}">GitHub</a>{{/if}}`,
			data:     `{"contact": {"github": "https://github.com/ada"}}`,
			want:     `<a href="https://github.com/ada">GitHub</a>`,
		},
		{
			name:     "loop over records",
			template: "{{#each items}}<li>{{this.name}}</li>{{/each}}",
			data:     `{"items": [{"name": "A"}, {"name": "B"}]}`,
			want:     "<li>A</li>\n<li>B</li>",
		},
		{
			name:     "loop over scalars",
			template: "{{#each tags}}<span>{{this}}</span>{{/each}}",
			data:     `{"tags": ["Go", "<SQL>"]}`,
			want:     "<span>Go</span>\n<span>&lt;SQL&gt;</span>",
		},
		{
			name:     "loop empty list",
			template: "{{#each items}}X{{/each}}",
			data:     `{"items": []}`,
			want:     "",
		},
		{
			name:     "loop missing list",
			template: "{{#each items}}X{{/each}}",
			data:     `{}`,
			want:     "",
		},
		{
			name:     "loop over non-list",
			template: "[{{#each items}}X{{/each}}]",
			data:     `{"items": "nope"}`,
			want:     "[]",
		},
		{
			name:     "loop missing field renders empty",
			template: "{{#each items}}<li>{{this.name}}|{{this.missing}}</li>{{/each}}",
			data:     `{"items": [{"name": "A"}]}`,
			want:     "<li>A|</li>",
		},
		{
			name:     "loop mixed scalar and record items",
			template: "{{#each items}}[{{this}}/{{this.name}}]{{/each}}",
			data:     `{"items": ["x", {"name": "y"}, 3]}`,
			want:     "[x/]\n[/y]\n[3/]",
		},
		{
			name:     "loop body resolves root paths",
			template: "{{#each items}}{{owner}}:{{this}}{{/each}}",
			data:     `{"owner": "ada", "items": ["a", "b"]}`,
			want:     "ada:a\nada:b",
		},
		{
			name:     "nested loop over item field",
			template: "{{#each exp}}<h3>{{this.company}}</h3><ul>{{#each this.tasks}}<li>{{this}}</li>{{/each}}</ul>{{/each}}",
			data:     `{"exp": [{"company": "Acme", "tasks": ["a", "b"]}, {"company": "Init", "tasks": []}]}`,
			want:     "<h3>Acme</h3><ul><li>a</li>\n<li>b</li></ul>\n<h3>Init</h3><ul></ul>",
		},
		{
			name:     "conditional on item field",
			template: `{{#each projects}}{{this.name}}{{#if this.url}} ({{this.url}}){{/if}}{{/each}}`,
			data:     `{"projects": [{"name": "A", "url": "u"}, {"name": "B"}]}`,
			want:     "A (u)\nB",
		},
		{
			name:     "nested conditionals",
			template: "{{#if a}}A{{#if b}}B{{/if}}C{{/if}}",
			data:     `{"a": true, "b": false}`,
			want:     "AC",
		},
		{
			name:     "this outside a loop resolves from root",
			template: "{{this}}",
			data:     `{}`,
			want:     "{{this}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.template, decode(t, tt.data))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderMalformed(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     Record
		want     string
	}{
		{
			name:     "unterminated if keeps open tag and renders the rest",
			template: "{{#if show}}Hello {{name}}",
			data:     Record{"show": Bool(true), "name": String("Ada")},
			want:     "{{#if show}}Hello Ada",
		},
		{
			name:     "unterminated each",
			template: "{{#each items}}<li>{{this}}</li>",
			data:     Record{"items": Strings([]string{"a"})},
			want:     "{{#each items}}<li>{{this}}</li>",
		},
		{
			name:     "stray close tag",
			template: "a{{/if}}b",
			data:     Record{},
			want:     "a{{/if}}b",
		},
		{
			name:     "interleaved blocks",
			template: "{{#if a}}{{#each b}}X{{/if}}{{/each}}",
			data:     Record{"a": Bool(true), "b": Strings([]string{"1"})},
			want:     "{{#each b}}X{{/each}}",
		},
		{
			name:     "missing closing delimiter",
			template: "Hi {{name",
			data:     Record{"name": String("Ada")},
			want:     "Hi {{name",
		},
		{
			name:     "invalid tag content",
			template: "{{a b}} {{#if}}x{{/if}} {{#unless a}}",
			data:     Record{"a": String("A")},
			want:     "{{a b}} {{#if}}x{{/if}} {{#unless a}}",
		},
		{
			name:     "later open delimiter wins",
			template: "{{ {{name}}",
			data:     Record{"name": String("Ada")},
			want:     "{{ Ada",
		},
		{
			name:     "empty template",
			template: "",
			data:     Record{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.data))
		})
	}
}

func TestRenderRaw(t *testing.T) {
	data := Record{
		"timeline": Raw(`<div class="timeline-item">A &amp; B</div>`),
		"name":     String("<i>Ada</i>"),
		"items":    List(Raw("<b>1</b>"), String("<b>2</b>")),
	}

	got := Render("{{timeline}}|{{name}}|{{#each items}}{{this}}{{/each}}", data)
	assert.Equal(t, `<div class="timeline-item">A &amp; B</div>|&lt;i&gt;Ada&lt;/i&gt;|<b>1</b>`+"\n"+`&lt;b&gt;2&lt;/b&gt;`, got)
}

func TestRenderFromDecodedDataNeverRaw(t *testing.T) {
	data := RecordFromMap(map[string]any{
		"bio":  Raw("<script>x</script>"),
		"list": []any{Raw("<b>")},
	})

	got := Render("{{bio}}{{#each list}}{{this}}{{/each}}", data)
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;&lt;b&gt;", got)
}

func TestRenderIsPure(t *testing.T) {
	tmpl := "{{#each items}}<li>{{this.name}}</li>{{/each}}{{#if show}}{{title}}{{/if}}"
	data := decode(t, `{"items": [{"name": "A"}, {"name": "B"}], "show": 1, "title": "T"}`)

	first := Render(tmpl, data)
	second := Render(tmpl, data)
	assert.Equal(t, first, second)

	// Input data is unchanged.
	assert.Equal(t, decode(t, `{"items": [{"name": "A"}, {"name": "B"}], "show": 1, "title": "T"}`), data)
}

func TestRenderKeyOrderIndependent(t *testing.T) {
	tmpl := "{{a}} {{b.c}} {{b.d}} {{e}}"

	first := Record{}
	first["a"] = String("1")
	first["b"] = Map(Record{"c": String("2"), "d": String("3")})
	first["e"] = String("4")

	second := Record{}
	second["e"] = String("4")
	inner := Record{}
	inner["d"] = String("3")
	inner["c"] = String("2")
	second["b"] = Map(inner)
	second["a"] = String("1")

	assert.Equal(t, Render(tmpl, first), Render(tmpl, second))
	assert.Equal(t, "1 2 3 4", Render(tmpl, first))
}

func TestRenderSubstitutedTextIsNotReparsed(t *testing.T) {
	data := Record{
		"a": String("{{b}}"),
		"b": String("B"),
	}
	assert.Equal(t, "{{b}}", Render("{{a}}", data))
}

func TestExecuteConcurrent(t *testing.T) {
	tmpl := Parse("{{#each items}}{{this.n}}{{/each}}")
	data := decode(t, `{"items": [{"n": 1}, {"n": 2}, {"n": 3}]}`)
	want := "1\n2\n3"

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = tmpl.Execute(data)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRenderLargeUnterminatedTemplate(t *testing.T) {
	tmpl := strings.Repeat("{{#if a}}x", 2000)
	got := Render(tmpl, Record{"a": Bool(true)})
	assert.Equal(t, tmpl, got)
}

func TestRenderManyMismatchedBlocks(t *testing.T) {
	const n = 100000
	tmpl := strings.Repeat("{{#if a}}", n) + strings.Repeat("{{/each}}", n)

	started := time.Now()
	parsed := Parse(tmpl)
	got := parsed.Execute(Record{"a": Bool(true)})
	elapsed := time.Since(started)

	assert.Equal(t, tmpl, got)
	assert.Len(t, parsed.Diagnostics(), 2*n)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRenderManyMismatchedBlocksAcrossLines(t *testing.T) {
	const n = 50000
	tmpl := strings.Repeat("{{#each a}}\n", n) + strings.Repeat("{{/if}}\n", n)

	started := time.Now()
	diags := Parse(tmpl).Diagnostics()
	elapsed := time.Since(started)

	require.Len(t, diags, 2*n)
	assert.Equal(t, n, diags[n-1].Line)
	assert.Equal(t, n+1, diags[n].Line)
	assert.Equal(t, 1, diags[n].Column)
	assert.Less(t, elapsed, 5*time.Second)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&#34;&#39;", Escape(`&<>"'`))
	assert.Equal(t, "plain", Escape("plain"))
}
