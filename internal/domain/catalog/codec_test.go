package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	players, err := Generate(playoffTeams, fixturePool())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	encoded := Encode(players)
	if !strings.HasPrefix(encoded, FileHeader+"\n") {
		t.Fatalf("encoded catalog missing header: %q", encoded[:40])
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(players, decoded) {
		t.Fatal("decoded catalog differs from the generated one")
	}
}

func TestEncode_RowFormat(t *testing.T) {
	encoded := Encode([]Player{{
		ID:       "K_GB_GBK",
		Name:     "GBK",
		Position: pool.PositionK,
		Team:     "GB",
	}})

	want := FileHeader + "\nK_GB_GBK,GBK,K,GB\n"
	if encoded != want {
		t.Fatalf("Encode = %q, want %q", encoded, want)
	}
}

func TestDecode_RejectsBadInput(t *testing.T) {
	if _, err := Decode("NotTheHeader\nQB_KC_X,X,QB,KC\n"); err == nil {
		t.Fatal("Decode accepted a file without the expected header")
	}

	if _, err := Decode(FileHeader + "\nQB_KC_X,X,QB\n"); err == nil {
		t.Fatal("Decode accepted a row with 3 fields")
	}
}

func TestDecode_SkipsBlankLines(t *testing.T) {
	decoded, err := Decode(FileHeader + "\n\nQB_KC_X,X,QB,KC\n\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 1 || decoded[0].ID != "QB_KC_X" {
		t.Fatalf("decoded = %+v", decoded)
	}
}
