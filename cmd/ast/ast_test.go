package main

import (
	"strings"
	"testing"
)

func TestGenerateAst(t *testing.T) {
	for baseName, types := range nodes {
		out, err := generateAst(baseName)
		if err != nil {
			t.Fatalf("%s: %v", baseName, err)
		}
		base := strings.ToLower(baseName)
		if !strings.HasPrefix(out, "// Code generated by cmd/ast; DO NOT EDIT.") {
			t.Errorf("%s: missing generated header", baseName)
		}
		if !strings.Contains(out, "type "+base+" interface {\n\t"+base+"Node()\n}") {
			t.Errorf("%s: missing base interface", baseName)
		}
		for _, typ := range types {
			name := strings.TrimSpace(strings.Split(typ, ":")[0])
			structName := strings.ToLower(name[:1]) + name[1:] + baseName
			if !strings.Contains(out, "type "+structName+" struct {") {
				t.Errorf("%s: missing struct %s", baseName, structName)
			}
			if !strings.Contains(out, "func (*"+structName+") "+base+"Node() {}") {
				t.Errorf("%s: missing marker method for %s", baseName, structName)
			}
		}
	}
}

func TestGenerateAstUnknown(t *testing.T) {
	if _, err := generateAst("Decl"); err == nil {
		t.Error("expected an error for an unknown node family")
	}
}
