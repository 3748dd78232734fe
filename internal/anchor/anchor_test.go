package anchor

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Tom & Jerry", "tom-and-jerry"},
		{"R&D", "r-and-d"},
		{"Multiple   spaces\tand\nnewlines", "multiple-spaces-and-newlines"},
		{"What's new in v2.0?", "whats-new-in-v20"},
		{"--dashes--everywhere--", "dashes-everywhere"},
		{"a - . - b", "a-b"},
		{"快速开始", "快速开始"},
		{"Über Größe", "über-größe"},
		{"部署 & 运维", "部署-and-运维"},
		{"snake_case_name", "snakecasename"},
		{"100%", "100"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{
		"Hello World",
		"Tom & Jerry",
		"a - . - b",
		"&&&",
		"  -x-  &  -y-  ",
		"Ünïcödé Ⅻ ① ٣",
		"İstanbul",
		"ΟΔΥΣΣΕΥΣ",
		"emoji 🚀 launch",
		"tabs\t\tand nbsp",
	}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFragment(t *testing.T) {
	if got := Fragment("Getting Started"); got != "#getting-started" {
		t.Errorf("expected %q, got %q", "#getting-started", got)
	}
	if got := Fragment(""); got != "#" {
		t.Errorf("expected %q for empty text, got %q", "#", got)
	}
}
