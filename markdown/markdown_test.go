package markdown_test

import (
	"testing"

	"github.com/fwojciec/trickle/markdown"
	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	positives := map[string]string{
		"heading":         "# Services",
		"heading level 6": "intro\n###### small",
		"bold":            "We offer **haircuts**.",
		"italic":          "We offer *haircuts*.",
		"inline code":     "run `make`",
		"fence":           "```\ncode\n```",
		"unordered list":  "Options:\n- cut\n- color",
		"plus list":       "+ item",
		"ordered list":    "1. Choose a service",
		"link":            "See [our site](https://example.com)",
		"blockquote":      "> quoted",
		"table":           "| Service | Price |\n|---|---|",
		"horizontal rule": "above\n---\nbelow",
	}
	for name, text := range positives {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, markdown.Detect(text), text)
		})
	}

	negatives := map[string]string{
		"empty":              "",
		"prose":              "Sure, we offer haircuts.",
		"hash without space": "#hashtag",
		"multiline prose":    "Hello!\nHow can I help you today?",
		"lone asterisk":      "5 * 3 = 15",
		"price":              "A trim costs $25.",
	}
	for name, text := range negatives {
		t.Run("not "+name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, markdown.Detect(text), text)
		})
	}
}

func TestDetect_ReevaluatedAsContentGrows(t *testing.T) {
	t.Parallel()

	assert.False(t, markdown.Detect("Here is "))
	assert.False(t, markdown.Detect("Here is `the"))
	assert.True(t, markdown.Detect("Here is `the` list"))

	assert.False(t, markdown.Detect("Hello"))
	grown := "Hello\n\n```js\nconsole.log(1)"
	assert.True(t, markdown.Detect(grown))
	assert.Equal(t, markdown.View{Markdown: true, Text: grown + "\n```"}, markdown.Normalize(grown, true))
}

func TestRepair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "complete text unchanged", in: "Hello **world**", want: "Hello **world**"},
		{name: "empty", in: "", want: ""},
		{name: "python fence", in: "```python\nprint('hi')", want: "```python\nprint('hi')\n```"},
		{name: "fence with trailing newline", in: "```\ncode\n", want: "```\ncode\n```"},
		{name: "fence opener only", in: "Here:\n```go", want: "Here:\n```go\n```"},
		{name: "closed fence unchanged", in: "```\na\n```\ndone", want: "```\na\n```\ndone"},
		{name: "second fence open", in: "```\na\n```\ntext\n```sh\nls", want: "```\na\n```\ntext\n```sh\nls\n```"},
		{name: "tilde fence", in: "~~~\ncode", want: "~~~\ncode\n~~~"},
		{name: "long fence", in: "````md\n```\ninner", want: "````md\n```\ninner\n````"},
		{name: "shorter run does not close", in: "````\na\n```", want: "````\na\n```\n````"},
		{name: "tilde does not close backtick", in: "```\na\n~~~", want: "```\na\n~~~\n```"},
		{name: "indented fence in list", in: "1. Run:\n   ```bash\n   ls", want: "1. Run:\n   ```bash\n   ls\n   ```"},
		{name: "open inline span", in: "Use `git sta", want: "Use `git sta`"},
		{name: "open span ending in double backtick", in: "Type `ls then ``", want: "Type `ls then `` `"},
		{name: "closed inline span", in: "Use `git status` now", want: "Use `git status` now"},
		{name: "span across lines", in: "Use `git\nstatus` now", want: "Use `git\nstatus` now"},
		{name: "span reset by blank line", in: "a `b\n\nc", want: "a `b\n\nc"},
		{name: "open span in trailing paragraph", in: "a `b` c\n\nd `e", want: "a `b` c\n\nd `e`"},
		{name: "double backticks ignored", in: "``not a span", want: "``not a span"},
		{name: "escaped backtick ignored", in: "a \\` b", want: "a \\` b"},
		{name: "backslash inside span is literal", in: "`a\\` b", want: "`a\\` b"},
		{name: "backtick inside fence ignored", in: "```\nx = `a\n```\n", want: "```\nx = `a\n```\n"},
		{name: "fence wins over inline", in: "Use `x\n```\ncode", want: "Use `x\n```\ncode\n```"},
		{name: "partial fence is left alone", in: "a `b\n``", want: "a `b\n``"},
		{name: "CRLF fence", in: "```\r\ncode\r\n```\r\n", want: "```\r\ncode\r\n```\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, markdown.Repair(tt.in))
		})
	}
}

func TestRepair_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"```python\nprint('hi')",
		"```\ncode\n",
		"````\na\n```",
		"Use `git sta",
		"see `",
		"x `a` `",
		"a `b\n``",
		"`a ``",
		"Type `ls then ``",
		"x `y ```",
		"   ```bash\n   ls",
		"Use `x\n```\ncode",
		"plain text",
	}
	for _, in := range inputs {
		once := markdown.Repair(in)
		assert.Equal(t, once, markdown.Repair(once), "input %q", in)
	}
}

func TestRepair_EveryPrefixIdempotent(t *testing.T) {
	t.Parallel()

	reply := "Here are our services:\n\n" +
		"| Service | Price |\n|---|---|\n| Cut | $30 |\n\n" +
		"Book with `book --slot 3`:\n\n" +
		"```bash\ncurl -X POST /api/book\n```\n\n" +
		"1. Pick a **time**\n2. Confirm"
	for i := 0; i <= len(reply); i++ {
		prefix := reply[:i]
		once := markdown.Repair(prefix)
		assert.Equal(t, once, markdown.Repair(once), "prefix %d", i)
		assert.True(t, len(once) >= len(prefix))
		assert.Equal(t, prefix, once[:len(prefix)], "repair only appends")
	}
	assert.Equal(t, reply, markdown.Repair(reply))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("plain text is not markdown", func(t *testing.T) {
		t.Parallel()
		v := markdown.Normalize("Sure, we offer haircuts.", true)
		assert.Equal(t, markdown.View{Text: "Sure, we offer haircuts."}, v)
	})

	t.Run("streaming markdown is repaired", func(t *testing.T) {
		t.Parallel()
		v := markdown.Normalize("```python\nprint('hi')", true)
		assert.Equal(t, markdown.View{Markdown: true, Text: "```python\nprint('hi')\n```"}, v)
	})

	t.Run("complete markdown is not repaired", func(t *testing.T) {
		t.Parallel()
		v := markdown.Normalize("```python\nprint('hi')", false)
		assert.Equal(t, markdown.View{Markdown: true, Text: "```python\nprint('hi')"}, v)
	})

	t.Run("non-markdown is never repaired", func(t *testing.T) {
		t.Parallel()
		v := markdown.Normalize("it`s fine", true)
		assert.Equal(t, markdown.View{Text: "it`s fine"}, v)
	})

	t.Run("input is not modified", func(t *testing.T) {
		t.Parallel()
		content := "Use `x"
		_ = markdown.Normalize(content, true)
		assert.Equal(t, "Use `x", content)
	})
}
