package post

import "testing"

func TestLocales_Path(t *testing.T) {
	l := NewLocales("en", []string{"en", "zh"})
	tests := []struct {
		locale string
		slug   string
		want   string
	}{
		{"en", "x", "/posts/x"},
		{"zh", "x", "/zh/posts/x"},
		{"", "x", "/posts/x"},
		{"fr", "x", "/posts/x"},
		{"zh", "a b", "/zh/posts/a%20b"},
	}
	for _, tt := range tests {
		if got := l.Path(tt.locale, tt.slug); got != tt.want {
			t.Errorf("Path(%q, %q) = %q, want %q", tt.locale, tt.slug, got, tt.want)
		}
	}
}

func TestLocales_Resolve(t *testing.T) {
	l := NewLocales("en", []string{"zh"})
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"ZH", "zh"},
		{"zh-CN", "zh"},
		{"en-GB", "en"},
		{"zh-CN,zh;q=0.9,en;q=0.8", "zh"},
		{"fr", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		if got := l.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewLocales_DefaultFirst(t *testing.T) {
	l := NewLocales("zh", []string{"en", "zh", "en"})
	if len(l.Supported) != 2 || l.Supported[0] != "zh" || l.Supported[1] != "en" {
		t.Errorf("unexpected supported list %v", l.Supported)
	}
}
