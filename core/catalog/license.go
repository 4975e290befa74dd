package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownLicense is returned for license identifiers outside the table.
var ErrUnknownLicense = errors.New("unknown license")

// UnknownLicenseError names the license identifier that was not found.
type UnknownLicenseError struct {
	ID string
}

func (e *UnknownLicenseError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownLicense, e.ID)
}

func (e *UnknownLicenseError) Unwrap() error {
	return ErrUnknownLicense
}

// License is a license entry: its page and a badge image.
type License struct {
	ID    string
	URL   string
	Badge string
}

var licenses = map[string]License{
	"MIT": {
		ID:    "MIT",
		URL:   "http://opensource.org/licenses/mit-license.php",
		Badge: "https://camo.githubusercontent.com/107590fac8cbd65071396bb4d04040f76cde5bde/687474703a2f2f696d672e736869656c64732e696f2f3a6c6963656e73652d6d69742d626c75652e7376673f7374796c653d666c61742d737175617265",
	},
}

// LookupLicense returns the license registered under id.
func LookupLicense(id string) (License, error) {
	l, ok := licenses[id]
	if !ok {
		return License{}, &UnknownLicenseError{ID: id}
	}
	return l, nil
}
