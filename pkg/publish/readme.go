package publish

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/brewtap/pkg/errors"
)

const (
	readmeFileName = "README.md"

	tableStartMarker = "<!-- project_table_start -->"
	tableEndMarker   = "<!-- project_table_end -->"
)

// ListingEntry is one row of the tap README's project table
type ListingEntry struct {
	Owner       string
	Repo        string
	Description string
}

// row renders the entry as a markdown table row
func (e ListingEntry) row() string {
	return fmt.Sprintf("| [%s](https://github.com/%s/%s) | %s | `brew install %s` |",
		e.Repo, e.Owner, e.Repo, e.Description, e.Repo)
}

// UpdateListing replaces or appends the entry's row in the project
// table delimited by the start/end markers. Rows are keyed on the
// project name, so re-releasing the same project rewrites its row
// instead of appending a duplicate.
func UpdateListing(content string, entry ListingEntry) (string, error) {
	start := strings.Index(content, tableStartMarker)
	end := strings.Index(content, tableEndMarker)
	if start == -1 || end == -1 || end < start {
		return "", errors.New(errors.ErrInvalidInput, "README has no project table markers")
	}

	tableBody := content[start+len(tableStartMarker) : end]
	lines := strings.Split(tableBody, "\n")

	key := fmt.Sprintf("| [%s](", entry.Repo)
	replaced := false
	lastRow := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		lastRow = i
		if strings.HasPrefix(trimmed, key) {
			lines[i] = entry.row()
			replaced = true
		}
	}

	if !replaced {
		if lastRow == -1 {
			// Empty table: emit header, separator and the new row
			lines = []string{"", "| Project | Description | Install |", "| --- | --- | --- |", entry.row(), ""}
		} else {
			lines = append(lines[:lastRow+1], append([]string{entry.row()}, lines[lastRow+1:]...)...)
		}
	}

	return content[:start+len(tableStartMarker)] +
		strings.Join(lines, "\n") +
		content[end:], nil
}

// UpdateReadmeListing applies UpdateListing to the README at path
func UpdateReadmeListing(path string, entry ListingEntry) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	updated, err := UpdateListing(string(content), entry)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	return nil
}
