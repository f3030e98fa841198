package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSONRequest(t *testing.T) {
	var dst struct {
		Column int `json:"column"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"column": 3}`))
	if err := DecodeJSONRequest(r, &dst); err != nil {
		t.Fatal(err)
	}
	if dst.Column != 3 {
		t.Fatalf("expected column 3, got %d", dst.Column)
	}
}

func TestDecodeJSONRequestRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Column int `json:"column"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"column": 3, "rows": 9}`))
	if err := DecodeJSONRequest(r, &dst); err == nil {
		t.Fatal("expected undeclared fields to be rejected")
	}
}

func TestDecodeJSONRequestRejectsGarbage(t *testing.T) {
	var dst struct{}
	r := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	if err := DecodeJSONRequest(r, &dst); err == nil {
		t.Fatal("expected malformed JSON to be rejected")
	}
}
