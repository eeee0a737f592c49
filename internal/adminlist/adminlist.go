// Package adminlist holds the fixed allow-list of researcher student IDs that
// are cleared for admin access, plus the student-id format check.
package adminlist

import (
	"regexp"
	"strings"
)

// DefaultApprovedIDs seeds the allow-list when APPROVED_STUDENT_IDS is unset.
var DefaultApprovedIDs = []string{"EC/2020/012", "EC/2020/056"}

var studentIDPattern = regexp.MustCompile(`^EC/\d{4}/\d{3}$`)

// IsValidFormat reports whether id matches EC/YYYY/XXX after trimming
// surrounding whitespace.
func IsValidFormat(id string) bool {
	return studentIDPattern.MatchString(strings.TrimSpace(id))
}

// List is an immutable membership set of approved student IDs.
type List struct {
	approved map[string]struct{}
}

func New(ids []string) *List {
	l := &List{approved: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		l.approved[id] = struct{}{}
	}
	return l
}

// IsApproved checks membership after trim + uppercase normalization. The id is
// matched verbatim against the list; it is not required to pass IsValidFormat
// first, so format validity and approval stay independent checks.
func (l *List) IsApproved(id string) bool {
	if l == nil || id == "" {
		return false
	}
	_, ok := l.approved[strings.ToUpper(strings.TrimSpace(id))]
	return ok
}
