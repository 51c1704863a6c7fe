package format

import (
	"testing"
)

func TestExpandVars_Simple(t *testing.T) {
	vars := map[string]string{"LANG": "tsx"}
	got := ExpandVars("--parser=$LANG", vars)
	if got != "--parser=tsx" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandVars_Brace(t *testing.T) {
	vars := map[string]string{"LANG": "rs"}
	got := ExpandVars("stdin.${LANG}", vars)
	if got != "stdin.rs" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandVars_EnvFallback(t *testing.T) {
	t.Setenv("MONOZIP_TEST_VAR_XYZ", "from-env")

	got := ExpandVars("$MONOZIP_TEST_VAR_XYZ", map[string]string{"LANG": "js"})
	if got != "from-env" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandVars_VarsShadowEnv(t *testing.T) {
	t.Setenv("LANG", "en_US.UTF-8")

	got := ExpandVars("$LANG", map[string]string{"LANG": "ts"})
	if got != "ts" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandVars_MissingEmpty(t *testing.T) {
	got := ExpandVars("$TOTALLY_UNKNOWN_VAR_12345", map[string]string{})
	if got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandVars_NoVars(t *testing.T) {
	input := "--edition 2021"
	got := ExpandVars(input, map[string]string{"LANG": "rs"})
	if got != input {
		t.Fatalf("got %q", got)
	}
}

func TestExpandArgs(t *testing.T) {
	got := expandArgs([]string{"prettier", "--stdin-filepath", "file.$LANG"}, map[string]string{"LANG": "jsx"})
	if len(got) != 3 || got[2] != "file.jsx" || got[0] != "prettier" {
		t.Fatalf("got %q", got)
	}
}
