package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunRequiresCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(nil, &out)
	if err == nil || !strings.Contains(err.Error(), "usage: moviectl") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-nope", "db_create"}, &out); err == nil {
		t.Fatal("expected flag error")
	}
}
