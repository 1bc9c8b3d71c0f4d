package customization

import (
	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// instanceMatches compares instance names case-insensitively
func instanceMatches(instanceName, want string) bool {
	return folder.String(instanceName) == folder.String(want)
}
