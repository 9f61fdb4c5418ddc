// Package assets embeds the default word lists so the server runs
// with no external files configured.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed answers.txt allowed.txt
var FS embed.FS

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

// AnswersList returns the embedded daily-answer candidates.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// AllowedList returns the embedded extra allowed guesses.
func AllowedList() ([]string, error) {
	return readLines("allowed.txt")
}
