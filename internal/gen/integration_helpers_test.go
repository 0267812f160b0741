package gen_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runExampleIntegrationTest regenerates an example pallet in place with the
// CLI, then runs the example's own tests against the fresh output.
func runExampleIntegrationTest(t *testing.T, exampleName string) {
	t.Helper()

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	genPath := filepath.Join(repoRoot, "examples", exampleName, "pallet_gen.go")

	before, err := os.ReadFile(genPath)
	if err != nil {
		t.Fatalf("reading checked-in output: %v", err)
	}

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/pallet-generator", "generate",
		"./examples/"+exampleName,
	)
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, string(b))
	}

	after, err := os.ReadFile(genPath)
	if err != nil {
		t.Fatalf("reading regenerated output: %v", err)
	}

	// layout may shift with the formatter; tokens may not
	if strings.Join(strings.Fields(string(before)), " ") != strings.Join(strings.Fields(string(after)), " ") {
		t.Errorf("checked-in %s is stale, regenerated:\n%s", genPath, string(after))
	}

	run := exec.CommandContext(t.Context(), "go", "test", "./examples/"+exampleName, "-count=1")
	run.Dir = repoRoot

	b, err = run.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}
