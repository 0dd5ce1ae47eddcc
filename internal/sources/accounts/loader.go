package accounts

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{\s*(HOMEDECK_VAR_[A-Za-z0-9_]+)\s*\}\}`)

// Loader reads the accounts provisioning file.
type Loader struct {
	filePath string
	lookup   func(string) (string, bool)
}

// NewLoader creates a loader for filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
		lookup:   os.LookupEnv,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads and parses the accounts file.
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	data, err = l.expandTemplateVariables(data)
	if err != nil {
		return nil, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts yaml: %w", err)
	}
	return &file, nil
}

// expandTemplateVariables replaces {{HOMEDECK_VAR_X}} with the value of the
// environment variable HOMEDECK_VAR_X, so secrets can stay out of the file.
func (l *Loader) expandTemplateVariables(data []byte) ([]byte, error) {
	var missing []string
	out := templateVar.ReplaceAllFunc(data, func(match []byte) []byte {
		name := string(templateVar.FindSubmatch(match)[1])
		v, ok := l.lookup(name)
		if !ok {
			missing = append(missing, name)
			return nil
		}
		return []byte(v)
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("accounts file references unset variables: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
