package release

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/louisbranch/seatrelease/internal/platform/errors"
)

// ProducerStep names the command that writes the event log.
const ProducerStep = "releasegen"

// DefaultPath is where the generator writes the event log.
var DefaultPath = filepath.Join("data", "03_synthetic", "club_members_app.csv")

// LoadFile reads the event log at path. A missing file is reported as a
// missing prerequisite naming the producing command.
func LoadFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.MissingPrerequisite(path, ProducerStep)
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	return ReadCSV(bufio.NewReader(f), path)
}

// SaveFile writes events to path, creating parent directories as needed.
func SaveFile(path string, events []Event) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create event log: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close event log: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := WriteCSV(w, events); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	return w.Flush()
}
