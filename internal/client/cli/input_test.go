package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(r, "Say something", &out)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "Say something") {
		t.Fatalf("prompt not printed: %q", out.String())
	}
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no-newline"))

	got, err := GetSimpleText(r, "p", &out)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "no-newline" {
		t.Fatalf("got %q", got)
	}
}

func TestGetPassword_UsesStub(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	got, err := GetPassword(&out, "New password: ")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "secret" {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(out.String(), "New password: ") {
		t.Fatalf("label not printed: %q", out.String())
	}
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("line one\nline two\n\nignored\n"))

	got, err := GetMultiline(r, "Description", &out)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got != "line one\nline two" {
		t.Fatalf("got %q", got)
	}
}
