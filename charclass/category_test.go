package charclass

import "testing"

func TestCategoryRoundTripsThroughComplement(t *testing.T) {
	for _, name := range []string{"L", "Nd", "P", "S", "Z"} {
		r, ok := Category(name)
		if !ok {
			t.Fatalf("Category(%q) not found", name)
		}
		rt := r.Complement().Complement()
		if !rt.Equal(r) {
			t.Fatalf("category %q did not round-trip through complement/complement", name)
		}
	}
}

func TestCategoryKnownMembers(t *testing.T) {
	if !Lu.Contains('A') {
		t.Fatal("Lu should contain 'A'")
	}
	if !Ll.Contains('a') {
		t.Fatal("Ll should contain 'a'")
	}
	if !Nd.Contains('5') {
		t.Fatal("Nd should contain '5'")
	}
	if Lu.Contains('a') {
		t.Fatal("Lu should not contain 'a'")
	}
}

func TestIdentifierComposite(t *testing.T) {
	if !IdentifierStart.Contains('_') {
		t.Fatal("IdentifierStart should include '_'")
	}
	if IdentifierStart.Contains('5') {
		t.Fatal("IdentifierStart should not include digits")
	}
	if !IdentifierPart.Contains('5') {
		t.Fatal("IdentifierPart should include digits")
	}
}

func TestCategoryFallbackToStandardLibrary(t *testing.T) {
	if _, ok := Category("Co"); !ok {
		t.Fatal("expected Category fallback to resolve 'Co' via unicode.Categories")
	}
	if _, ok := Category("NotACategory"); ok {
		t.Fatal("expected unknown category name to report false")
	}
}
