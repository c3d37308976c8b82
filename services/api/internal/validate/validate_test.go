package validate

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"11", "(11"},
		{"119876", "(11) 9876"},
		{"11987654321", "(11) 98765-4321"},
		{"(11) 98765-4321", "(11) 98765-4321"},
		{"+55 11 98765-4321 ext 9", "(55) 11987-6543"},
	}
	for _, tc := range cases {
		if got := FormatPhone(tc.in); got != tc.want {
			t.Fatalf("FormatPhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	if !ValidPhone("(11) 98765-4321") {
		t.Fatal("masked phone must validate")
	}
	for _, bad := range []string{"", "11987654321", "(11)98765-432", "(1) 98765-4321"} {
		if ValidPhone(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestValidEmail(t *testing.T) {
	if !ValidEmail("") {
		t.Fatal("empty email is optional and must pass")
	}
	if !ValidEmail("joao@example.com") {
		t.Fatal("expected valid email to pass")
	}
	for _, bad := range []string{"joao", "joao@", "joao@site", "a b@c.d"} {
		if ValidEmail(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}
