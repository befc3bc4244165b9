package schema

import (
	"testing"

	"github.com/spf13/cobra"
)

func testTree() *cobra.Command {
	root := &cobra.Command{Use: "apylist"}
	pools := &cobra.Command{Use: "pools", Short: "List yield pools"}
	pools.Flags().String("search", "", "Search by token name")
	pools.Flags().Int("page", 1, "Page number")
	root.AddCommand(pools)
	return root
}

func TestBuildRoot(t *testing.T) {
	s, err := Build(testTree(), "")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.Subcommands) != 1 || s.Subcommands[0].Path != "apylist pools" {
		t.Fatalf("unexpected schema: %+v", s)
	}
}

func TestBuildSubcommandFlags(t *testing.T) {
	s, err := Build(testTree(), "pools")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.Flags) != 2 {
		t.Fatalf("expected 2 flags, got %+v", s.Flags)
	}
	if s.Flags[1].Name != "search" && s.Flags[0].Name != "search" {
		t.Fatalf("missing search flag: %+v", s.Flags)
	}
}

func TestBuildUnknownPath(t *testing.T) {
	if _, err := Build(testTree(), "nope"); err == nil {
		t.Fatal("expected error for unknown command path")
	}
}
