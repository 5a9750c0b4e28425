package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatsCmd(t *testing.T) {
	cmd := formatsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 5 || lines[0] != "application/pdf" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestGenerateCmd_RejectsUnknownType(t *testing.T) {
	cmd := generateCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"essays", "--text", "cells"})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "unknown type") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}
