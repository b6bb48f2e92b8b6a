package raw

import "testing"

func TestGetTrimsAndDefaults(t *testing.T) {
	t.Setenv("BOOT_NAME", "  portal  ")
	t.Setenv("BOOT_BLANK", "   ")

	c := New().Prefix("BOOT_")
	if got := c.Get("NAME", "x"); got != "portal" {
		t.Fatalf("Get NAME = %q", got)
	}
	if got := c.Get("BLANK", "fallback"); got != "fallback" {
		t.Fatalf("blank value did not fall back: %q", got)
	}
	if got := c.Get("ABSENT", "fallback"); got != "fallback" {
		t.Fatalf("absent value did not fall back: %q", got)
	}
}

func TestPrefixNesting(t *testing.T) {
	t.Setenv("A_B_KEY", "nested")
	if got := New().Prefix("A_").Prefix("B_").Get("KEY", ""); got != "nested" {
		t.Fatalf("nested prefix lookup = %q", got)
	}
}

func TestGetBool(t *testing.T) {
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"Yes", false, true},
		{"0", true, false},
		{"no", true, false},
		{"banana", true, false},
		{"", true, true},
		{"", false, false},
	}
	for _, c := range cases {
		t.Setenv("RB_FLAG", c.val)
		if got := New().Prefix("RB_").GetBool("FLAG", c.def); got != c.want {
			t.Errorf("GetBool(%q, def=%v) = %v want %v", c.val, c.def, got, c.want)
		}
	}
}

func TestGetInt(t *testing.T) {
	cases := []struct {
		val  string
		want int
	}{
		{"5", 5},
		{"007", 7},
		{"0", 0},
		{"-3", 9},
		{"3.5", 9},
		{"x", 9},
		{"", 9},
	}
	for _, c := range cases {
		t.Setenv("RI_N", c.val)
		if got := New().Prefix("RI_").GetInt("N", 9); got != c.want {
			t.Errorf("GetInt(%q) = %d want %d", c.val, got, c.want)
		}
	}
}
