package soulnames

import "testing"

func TestCheckName(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"foo", false},
		{"fooBar123", false},
		{"int", true},     // reserved type name
		{"const", true},   // reserved modifier
		{"log", true},     // reserved operator-shaped name
		{"foo!", true},    // illegal symbol
		{"a.b", true},     // dot is illegal in a bare identifier
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckName(c.name)
			if (err != nil) != c.wantErr {
				t.Fatalf("CheckName(%q) error = %v, wantErr %v", c.name, err, c.wantErr)
			}
		})
	}
}

func TestLookupInternalType(t *testing.T) {
	kind, ok := LookupInternalType("int")
	if !ok {
		t.Fatal("expected 'int' to be a known internal type")
	}
	if Internal(kind) != "int" {
		t.Fatalf("round trip mismatch: got %q", Internal(kind))
	}

	if _, ok := LookupInternalType("not_a_type"); ok {
		t.Fatal("expected 'not_a_type' to be unknown")
	}
}

func TestParseTokensLongestFirst(t *testing.T) {
	if len(ParseTokens) == 0 {
		t.Fatal("ParseTokens must be populated by init")
	}
	for i := 1; i < len(ParseTokens); i++ {
		if len(ParseTokens[i-1]) < len(ParseTokens[i]) {
			t.Fatalf("ParseTokens not sorted longest-first at index %d: %q before %q",
				i, ParseTokens[i-1], ParseTokens[i])
		}
	}
}
