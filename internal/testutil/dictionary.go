package testutil

import "testing"

// WriteDictionary lays out a small IPADIC-style dictionary in dir: two
// lexicon files, a 3×3 connection matrix with one out-of-range line, and
// UTF-8 char.def/unk.def defining an ALPHA category for ASCII letters.
func WriteDictionary(t testing.TB, dir string) {
	t.Helper()
	WriteFile(t, dir, "b_verb.csv",
		"走る,762,762,5917,動詞,自立,*,*,五段・ラ行,基本形,走る,ハシル,ハシル",
	)
	WriteFile(t, dir, "a_noun.csv",
		"すもも,1285,1285,7546,名詞,一般,*,*,*,*,すもも,スモモ,スモモ",
		"もも,1285,1285,7219,名詞,一般,*,*,*,*,もも,モモ,モモ",
	)
	WriteFile(t, dir, "README.txt", "not a lexicon")
	WriteFile(t, dir, "matrix.def",
		"3 3 0",
		"0 0 0",
		"1 2 -300",
		"5 5 10",
	)
	WriteFile(t, dir, "char.def",
		"DEFAULT 0 1 0",
		"ALPHA 1 1 0",
		"0x0041..0x005A ALPHA",
		"0x0061..0x007A ALPHA",
	)
	WriteFile(t, dir, "unk.def",
		"DEFAULT,5,5,4769,記号,一般,*,*,*,*,*",
		"ALPHA,1285,1285,13398,名詞,固有名詞,組織,*,*,*,*",
	)
}
