package helpmaker_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	helpmaker "github.com/alnah/go-helpmaker"
)

// Example compiles a one-page help project into an archive.
func Example() {
	base, err := os.MkdirTemp("", "helpmaker-example-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(base)

	in := filepath.Join(base, "in")
	if err := os.MkdirAll(in, 0o750); err != nil {
		fmt.Println("error:", err)
		return
	}
	source := "<meta name=\"control\" content=\"MainWindow\" />\n\n# Welcome\n"
	if err := os.WriteFile(filepath.Join(in, "index.help"), []byte(source), 0o600); err != nil {
		fmt.Println("error:", err)
		return
	}

	svc, err := helpmaker.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	result, err := svc.Build(context.Background(), filepath.Join(base, "help.zip"), in)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, c := range result.Controls {
		fmt.Println(c.Control)
	}
	fmt.Println(len(result.Documents), "page(s)")
	// Output:
	// MainWindow
	// 1 page(s)
}

// ExampleChangeFilename maps a help source into a staging directory.
func ExampleChangeFilename() {
	base, err := os.MkdirTemp("", "helpmaker-example-")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer os.RemoveAll(base)

	out, err := helpmaker.ChangeFilename(
		filepath.Join(base, "in", "guide", "intro.help"), ".stage1",
		filepath.Join(base, "in"), filepath.Join(base, "work", "stage1"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	rel, _ := filepath.Rel(base, out)
	fmt.Println(filepath.ToSlash(rel))
	// Output: work/stage1/guide/intro.stage1
}
