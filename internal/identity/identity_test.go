package identity

import (
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+_[a-z0-9]{4}$`)

func TestDeviceIDFormat(t *testing.T) {
	id, err := DeviceID(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !idPattern.MatchString(id) {
		t.Errorf("id %q does not match AdjectiveNoun_xxxx", id)
	}
}

func TestDeviceIDStable(t *testing.T) {
	dir := t.TempDir()

	first, err := DeviceID(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := DeviceID(dir)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("id changed between calls: %q then %q", first, second)
	}
}
