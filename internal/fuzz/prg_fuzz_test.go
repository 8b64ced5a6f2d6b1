package fuzztests

import (
	"bytes"
	"testing"

	"basv2/internal/prg"
)

func FuzzEncode(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		opts := prg.DefaultOptions()
		opts.AutoNumber = true

		res := prg.Encode(src, opts)
		size := 4
		for _, ln := range res.Lines {
			size += 4 + len(ln.Body)
			if len(ln.Body) == 0 || ln.Body[len(ln.Body)-1] != 0 {
				t.Fatalf("line %d body is not zero-terminated", ln.Number)
			}
		}
		if len(res.Bytes) != size {
			t.Fatalf("image is %d bytes, layout says %d", len(res.Bytes), size)
		}
		if !bytes.HasSuffix(res.Bytes, []byte{0, 0}) {
			t.Fatal("missing end-of-program marker")
		}

		again := prg.Encode(src, opts)
		if !bytes.Equal(res.Bytes, again.Bytes) {
			t.Fatal("encoding is not deterministic")
		}
	})
}
