package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		html  string
		attr  string
	}{
		{"", "", ""},
		{"Tom & Jerry", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{`say "hi"`, "say &quot;hi&quot;", "say &quot;hi&quot;"},
		{"a\nb\tc", "a\nb\tc", "a&#10;b&#9;c"},
		{"Hello 世界", "Hello 世界", "Hello 世界"},
	}

	for _, tt := range tests {
		if got := escapeHTML(tt.input); got != tt.html {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.html)
		}
		if got := escapeAttr(tt.input); got != tt.attr {
			t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.attr)
		}
	}
}
