// internal/fasta/normalize_test.go
package fasta

import (
	"strings"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{">NC_000913.3 Escherichia coli str. K-12 complete genome", ">NC_000913.3_Escherichia_coli_str._K-12_complete_genome"},
		{">a   b", ">a_b"},
		{">a \t b", ">a___b"},
		{">x/y,z=1", ">x_y_z_1"},
		{">id|gb:1.2-3\r", ">id|gb:1.2-3"},
		{">", PlaceholderHeader},
		{">\r", PlaceholderHeader},
		{">  ", ">_"},
		{">unknown", ">unknown"},
	}
	for _, tc := range cases {
		if got := string(NormalizeHeader([]byte(tc.in))); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSequence(t *testing.T) {
	if got := string(NormalizeSequence([]byte("acgtXYZacgt"))); got != "ACGTACGT" {
		t.Fatalf("got %q", got)
	}
	if got := string(NormalizeSequence([]byte("nN-rY*\r"))); got != "NN" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeKeepsLineStructure(t *testing.T) {
	cases := []struct{ in, want string }{
		{">seq one\r\nacgtXYZacgt\r\nnnnn\n>\nGG", ">seq_one\nACGTACGT\nNNNN\n>unknown\nGG"},
		{">NC_1 E coli\racgtXYZ\rNNNN\r", ">NC_1_E_coli\nACGT\nNNNN\n"},
		{">h\r\rAC\r\n\nGT", ">h\n\nAC\n\nGT"},
	}
	for _, c := range cases {
		if got := string(Normalize([]byte(c.in))); got != c.want {
			t.Errorf("Normalize(%q):\n got %q\nwant %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeHeaderWithoutNewline(t *testing.T) {
	if got := string(Normalize([]byte(">only"))); got != ">only\n" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	inputs := []string{
		">NC_000913.3 Escherichia coli\nacgtn\nACGT-\n",
		"\xef\xbb\xbf>bom header\nAC\xc3\xa9GT\n",
		">a\tb\r\nAC\r\nGT",
		">NC_1 E coli\racgtXYZ\rNNNN\r",
		"junk only\n\n",
		"",
	}
	for _, in := range inputs {
		once := Canonicalize([]byte(in))
		twice := Canonicalize(once)
		if string(once) != string(twice) {
			t.Errorf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestCanonicalizeAlphabet(t *testing.T) {
	in := "\x00>h\x80ead er\t#1\nacgu RYK nnx\n\xff\xfeTTTT\n"
	out := string(Canonicalize([]byte(in)))
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, ">") {
			for _, r := range line[1:] {
				if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_.:|-", r) {
					t.Fatalf("header %q has %q", line, r)
				}
			}
			continue
		}
		for _, r := range line {
			if !strings.ContainsRune("ACGTN", r) {
				t.Fatalf("sequence %q has %q", line, r)
			}
		}
	}
}

func TestCanonicalizeAllNonASCII(t *testing.T) {
	if got := Canonicalize([]byte("\xe6\x97\xa5\xe6\x9c\xac\xff")); len(got) != 0 {
		t.Fatalf("want empty, got %q", got)
	}
}
