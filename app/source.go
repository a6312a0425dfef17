package app

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const gitSourcePrefix = "git:"

// Source is one side of a comparison.
type Source struct {
	Name string // label shown in headers and patch file names
	Text string
}

// SourceReader resolves source arguments. A lone dash reads Stdin, git:<rev>:<path> reads path as of rev in the repository containing
// RepoPath, and anything else is a file path.
type SourceReader struct {
	Stdin    io.Reader
	RepoPath string
}

// ReadSource reads arg with standard input and the repository around the working directory.
func ReadSource(arg string) (Source, error) {
	return SourceReader{Stdin: os.Stdin, RepoPath: "."}.Read(arg)
}

// Read loads the text named by arg. CRLF line endings are converted to LF.
func (r SourceReader) Read(arg string) (Source, error) {
	var (
		src Source
		err error
	)

	switch {
	case arg == "-":
		src, err = r.readStdin()
	case strings.HasPrefix(arg, gitSourcePrefix):
		src, err = r.readGit(strings.TrimPrefix(arg, gitSourcePrefix))
	default:
		src, err = readFile(arg)
	}
	if err != nil {
		return Source{}, err
	}

	src.Text = strings.ReplaceAll(src.Text, "\r\n", "\n")
	return src, nil
}

func (r SourceReader) readStdin() (Source, error) {
	if r.Stdin == nil {
		return Source{}, fmt.Errorf("no standard input available")
	}
	data, err := io.ReadAll(r.Stdin)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read standard input: %w", err)
	}
	return Source{Name: "stdin", Text: string(data)}, nil
}

func (r SourceReader) readGit(spec string) (Source, error) {
	rev, path, ok := strings.Cut(spec, ":")
	if !ok || rev == "" || path == "" {
		return Source{}, fmt.Errorf("invalid git source %q: expected git:<rev>:<path>", gitSourcePrefix+spec)
	}

	repoPath := r.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := OpenRepo(repoPath)
	if err != nil {
		return Source{}, err
	}

	text, err := repo.ReadFile(rev, path)
	if err != nil {
		return Source{}, err
	}

	name := path + "@" + rev
	if short, err := repo.ShortHash(rev); err == nil {
		name = path + "@" + short
	}
	return Source{Name: name, Text: text}, nil
}

func readFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Source{Name: path, Text: string(data)}, nil
}
