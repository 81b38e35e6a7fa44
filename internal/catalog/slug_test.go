package catalog

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Summer Collection", "summer-collection"},
		{"  Padded  Spaces  ", "padded-spaces"},
		{"Tees & Tops", "tees-tops"},
		{"Automne/Hiver 2025", "automne-hiver-2025"},
		{"UPPER", "upper"},
		{"---", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Fatalf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
