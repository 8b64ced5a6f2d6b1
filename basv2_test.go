package basv2

import (
	"bytes"
	"testing"
)

func TestValidate(t *testing.T) {
	r := Validate("10 FOR I=1 TO 3\n20 PRINT I\n30 NEXT I\n40 END\n", Options{})
	if r.HasErrors() {
		t.Fatalf("unexpected errors: %+v", r.Diagnostics)
	}

	r = Validate("10 NEXT I\n", Options{ReachabilityMode: Relaxed})
	if !r.HasErrors() {
		t.Fatal("expected NEXT without FOR to be reported")
	}
	if r.ReachabilityMode != Relaxed {
		t.Errorf("mode = %v, want relaxed", r.ReachabilityMode)
	}
}

func TestEncode(t *testing.T) {
	res := Encode("10 END\n", DefaultEncodeOptions())
	want := []byte{0x01, 0x08, 0x07, 0x08, 0x0A, 0x00, 0x80, 0x00, 0x00, 0x00}
	if !bytes.Equal(res.Bytes, want) {
		t.Errorf("Encode = % X, want % X", res.Bytes, want)
	}
}
