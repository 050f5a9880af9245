package docs

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestIndex(t *testing.T) {
	index, err := Topics()
	if err != nil {
		t.Fatalf("Topics() unexpected error = %v", err)
	}
	var listed []string
	for _, topic := range index {
		if topic.Summary == "" {
			t.Errorf("topic %q has no summary in %s.md", topic.Name, Index)
		}
		listed = append(listed, topic.Name)
	}
	slices.Sort(listed)

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() unexpected error = %v", err)
	}
	if !slices.Equal(listed, all) {
		t.Errorf("%s.md lists %v, embedded topics are %v", Index, listed, all)
	}
	for _, want := range []string{"valuation", "parameters", "fundamentals", "manual", "serve", "assist"} {
		if !slices.Contains(all, want) {
			t.Errorf("GetAllTopics() = %v, missing %q", all, want)
		}
	}
}

func TestGetTopic(t *testing.T) {
	want, err := GetTopic("valuation")
	if err != nil {
		t.Fatalf("GetTopic(valuation) unexpected error = %v", err)
	}
	if !strings.HasPrefix(want, "# Valuation\n") {
		t.Errorf("GetTopic(valuation) starts with %q", want[:min(len(want), 20)])
	}
	for _, name := range []string{"Valuation", " valuation ", "valuation.md"} {
		if got, err := GetTopic(name); err != nil || got != want {
			t.Errorf("GetTopic(%q) = %d bytes, %v, want the valuation topic", name, len(got), err)
		}
	}

	_, err = GetTopic("wacc")
	if err == nil || !strings.Contains(err.Error(), "valuation") {
		t.Errorf("GetTopic(wacc) error = %v, want the available topics", err)
	}
}

func TestGetTopic_All(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) unexpected error = %v", err)
	}
	index, _ := Topics()
	last := -1
	for _, topic := range index {
		content, _ := GetTopic(topic.Name)
		title, _, _ := strings.Cut(content, "\n")
		i := strings.Index(all, title)
		if i < 0 {
			t.Errorf("GetTopic(*) is missing %q", title)
			continue
		}
		if i < last {
			t.Errorf("GetTopic(*) has %q out of the index order", title)
		}
		last = i
	}
}

// checkBlock is the info string of the fenced blocks that are executed, they
// must exit with status 0.
const checkBlock = "bash check"

// codeBlocks returns the fenced code blocks of file with the given info string.
func codeBlocks(t *testing.T, file, info string) []string {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	var blocks []string
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil || string(fcb.Info.Segment.Value(source)) != info {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(source))
		}
		blocks = append(blocks, b.String())
		return ast.WalkContinue, nil
	})
	return blocks
}

// TestCodeBlocks runs the examples of the documentation against a freshly built dcf.
//
// Examples run offline: there is no API key and every block gets its own
// working and temporary directories, so the disk cache starts empty.
func TestCodeBlocks(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the dcf command")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("no go toolchain to build the dcf command")
	}

	bin := t.TempDir()
	build := exec.Command("go", "build", "-o", filepath.Join(bin, "dcf"), "../dcf/")
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("failed to build dcf: %v\n%s", err, out)
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")
	for _, file := range files {
		for i, block := range codeBlocks(t, file, checkBlock) {
			t.Run(filepath.Base(file), func(t *testing.T) {
				dir := t.TempDir()
				cmd := exec.Command("bash", "-c", "set -e; "+block)
				cmd.Dir = dir
				cmd.Env = append(os.Environ(),
					"PATH="+bin+string(os.PathListSeparator)+os.Getenv("PATH"),
					"EODHD_API_KEY=",
					"GOOGLE_API_KEY=",
					"TMPDIR="+dir,
					"NO_COLOR=1",
				)
				if out, err := cmd.CombinedOutput(); err != nil {
					t.Errorf("%s block #%d failed: %v\n%s\noutput:\n%s", file, i+1, err, block, out)
				}
			})
		}
	}
}
