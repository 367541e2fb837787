package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed gallows.txt words.txt sql/*.sql
var FS embed.FS

const frameSeparator = "%"

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// WordList returns the raw lines of the embedded secret word list.
func WordList() ([]string, error) {
	return readLines("words.txt")
}

// GallowsFrames returns the ASCII gallows stages in drawing order.
// Leading whitespace inside a frame is significant and kept as is.
func GallowsFrames() ([]string, error) {
	b, err := FS.ReadFile("gallows.txt")
	if err != nil {
		return nil, err
	}
	var (
		frames []string
		cur    []string
	)
	flush := func() {
		if len(cur) > 0 {
			frames = append(frames, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "#"):
		case strings.TrimSpace(line) == frameSeparator:
			flush()
		case strings.TrimSpace(line) == "":
		default:
			cur = append(cur, line)
		}
	}
	flush()
	return frames, nil
}

// Migrations exposes the embedded sql directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}
