package services

import (
	"bytes"
	"errors"
	"testing"
)

func jpegBytes() []byte {
	return append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 100)...)
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 100)...)
}

func pdfBytes() []byte {
	return append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0x20}, 100)...)
}

func upload(data []byte) ProofUpload {
	return ProofUpload{
		Filename: "proof.bin",
		Size:     int64(len(data)),
		Body:     bytes.NewReader(data),
	}
}

func TestProofUpload_AcceptsAllowedTypes(t *testing.T) {
	cases := map[string][]byte{
		"image/jpeg":      jpegBytes(),
		"image/png":       pngBytes(),
		"application/pdf": pdfBytes(),
	}
	for want, data := range cases {
		got, err := upload(data).Validate()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", want, err)
		}
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestProofUpload_RejectsDisallowedType(t *testing.T) {
	_, err := upload([]byte("just some text, definitely not an image")).Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProofUpload_RejectsOversize(t *testing.T) {
	up := ProofUpload{
		Filename: "big.jpg",
		Size:     MaxProofSize + 1,
		Body:     bytes.NewReader(jpegBytes()),
	}
	_, err := up.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProofUpload_RejectsEmpty(t *testing.T) {
	_, err := upload(nil).Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProofUpload_RewindsBody(t *testing.T) {
	data := jpegBytes()
	up := upload(data)
	if _, err := up.Validate(); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, len(data))
	n, _ := up.Body.Read(buf)
	if n != len(data) {
		t.Fatalf("body must be rewound after sniffing, read %d of %d", n, len(data))
	}
}
