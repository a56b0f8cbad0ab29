package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kroobeet/engine/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "alice", "alice"},
		{"tags", "<b>alice</b>", "alice"},
		{"script", "<script>alert(1)</script>bob", "bob"},
		{"entities", "tom &amp; jerry", "tom & jerry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, sanitizer.StripHTML(tt.in))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	got := sanitizer.SanitizeHTML(`<p onclick="x()">hi <a href="javascript:alert(1)">x</a><strong>ok</strong></p>`)
	require.NotContains(t, got, "onclick")
	require.NotContains(t, got, "javascript:")
	require.Contains(t, got, "<strong>ok</strong>")

	got = sanitizer.SanitizeHTML(`<a href="https://example.com">site</a>`)
	require.Contains(t, got, `rel="nofollow"`)
}

func TestField(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alice smith", sanitizer.Field("  alice \n\t <i>smith</i> ", 0))
	require.Equal(t, "ali", sanitizer.Field("alice", 3))
	require.Equal(t, "日本", sanitizer.Field("日本語", 2))
	require.Empty(t, sanitizer.Field("<br>", 10))
}
