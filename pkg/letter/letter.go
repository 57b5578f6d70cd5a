// Package letter turns a drawn gift-giving sequence into one letter file
// per gifter, telling them who they are secret santa for.
package letter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santaomatic/santaomatic/pkg/buildinfo"
)

// ErrLetterExists is returned by [Writer.WriteSequence] when a letter
// file already exists and overwriting was not requested. The remaining
// letters of that run are not written.
var ErrLetterExists = errors.New("letter already exists")

// Writer emits letter files for a sequence. The zero value writes to the
// current directory without overwriting and without decoration.
type Writer struct {
	// Dir is the output directory, created if missing. Empty means ".".
	Dir string

	// Overwrite allows replacing existing letter files. Without it an
	// existing file aborts the run with ErrLetterExists.
	Overwrite bool

	// ArtPath optionally names a text file (typically ascii art) that is
	// appended to every letter.
	ArtPath string
}

// WriteSequence writes one letter per adjacent (gifter, recipient) pair
// of seq to <Dir>/<gifter>.txt. It returns the paths written. On a
// conflict (or any write failure) it stops immediately and returns the
// paths written so far alongside the error; letters written before the
// failure are left in place.
func (w *Writer) WriteSequence(seq []string) ([]string, error) {
	if len(seq) < 2 {
		return nil, fmt.Errorf("sequence too short to contain a pairing (%d names)", len(seq))
	}

	art, err := w.loadArt()
	if err != nil {
		return nil, err
	}

	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	var written []string
	for i := 0; i < len(seq)-1; i++ {
		gifter, recipient := seq[i], seq[i+1]
		path := filepath.Join(dir, gifter+".txt")
		if err := w.writeLetter(path, gifter, recipient, art); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// Render produces the letter body for a single pairing. The greeting
// template is fixed; art is appended verbatim when non-empty.
func Render(gifter, recipient, art string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s!\n\n", gifter)
	fmt.Fprintf(&b, "This text file has been automatically generated by Secret-Santa-O-Matic %s\n\n", buildinfo.Version)
	b.WriteString("You are secret santa for ... (drumroll) ...\n\n")
	fmt.Fprintf(&b, "     %s\n\n", recipient)
	b.WriteString("Enjoy! And please don't tell anyone!\n")
	if art != "" {
		b.WriteString(art)
	}
	return b.String()
}

func (w *Writer) writeLetter(path, gifter, recipient, art string) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !w.Overwrite {
		// O_EXCL makes the conflict check race-free.
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrLetterExists)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	_, werr := f.WriteString(Render(gifter, recipient, art))
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write %s: %w", path, werr)
	}
	return nil
}

func (w *Writer) loadArt() (string, error) {
	if w.ArtPath == "" {
		return "", nil
	}
	data, err := os.ReadFile(w.ArtPath)
	if err != nil {
		return "", fmt.Errorf("read art: %w", err)
	}
	return string(data), nil
}
