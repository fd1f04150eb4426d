package proto

import (
	"testing"

	"github.com/golang/protobuf/ptypes/empty"
	"github.com/golang/protobuf/ptypes/wrappers"
)

func TestGetSha256(t *testing.T) {
	e := empty.Empty{}
	s, l, err := GetSha256(&e)
	if err != nil {
		t.Fatalf("GetSha256 failure: %v", err)
	}
	// This is what sha-256'ing no data returns
	nilDataSha := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if s != nilDataSha {
		t.Fatalf("Expected known sha for nil/empty data %s, got: %s", nilDataSha, s)
	}
	if l != 0 {
		t.Fatalf("Expected zero length data, got: %d", l)
	}
}

func TestGetSha256Deterministic(t *testing.T) {
	a1, l1, err := GetSha256(&wrappers.StringValue{Value: "fssnap"})
	if err != nil {
		t.Fatalf("GetSha256 failure: %v", err)
	}
	a2, _, _ := GetSha256(&wrappers.StringValue{Value: "fssnap"})
	b, _, _ := GetSha256(&wrappers.StringValue{Value: "fssnap2"})
	if a1 != a2 {
		t.Fatalf("Expected equal messages to hash equally, got %s and %s", a1, a2)
	}
	if a1 == b {
		t.Fatalf("Expected different messages to hash differently, both got %s", a1)
	}
	// tag byte, length byte, 6 bytes of string
	if l1 != 8 {
		t.Fatalf("Expected 8 bytes of wire data, got: %d", l1)
	}
}
