package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is a GitLab permission level, ordered from guest up to owner.
type Role int

const (
	RoleGuest      Role = 10
	RoleReporter   Role = 20
	RoleDeveloper  Role = 30
	RoleMaintainer Role = 40
	RoleOwner      Role = 50
)

var roleNames = map[Role]string{
	RoleGuest:      "guest",
	RoleReporter:   "reporter",
	RoleDeveloper:  "developer",
	RoleMaintainer: "maintainer",
	RoleOwner:      "owner",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(s, name) {
			return role, nil
		}
	}

	return 0, NewValidationError("role", fmt.Sprintf("invalid role %q, valid roles are: guest, reporter, developer, maintainer, owner", s))
}

type ItemKind string

const (
	KindIssue        ItemKind = "issue"
	KindMergeRequest ItemKind = "merge_request"
)

// ParseItemKind accepts the aliases used by both the HTTP and CLI surfaces.
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(s) {
	case "issue", "issues":
		return KindIssue, nil
	case "mr", "merge_request", "merge_requests":
		return KindMergeRequest, nil
	}

	return "", NewValidationError("type", fmt.Sprintf("invalid item type %q, must be 'mr' or 'issues'", s))
}

type TargetKind string

const (
	TargetGroup   TargetKind = "group"
	TargetProject TargetKind = "project"
)

type Target struct {
	ID   int
	Kind TargetKind
	Path string
	Name string
}

type User struct {
	ID       int
	Username string
	Name     string
}

type Member struct {
	UserID      int
	AccessLevel Role
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

type Membership struct {
	TargetID   int
	TargetKind TargetKind
	UserID     int
	Role       Role
	Action     string
}

type Item struct {
	ID        int
	Title     string
	State     string
	CreatedAt time.Time
	WebURL    string
	Author    string
}

// YearWindow is the half-open creation-date range [Start, End).
type YearWindow struct {
	Start time.Time
	End   time.Time
}

func NewYearWindow(year int) YearWindow {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return YearWindow{
		Start: start,
		End:   start.AddDate(1, 0, 0),
	}
}

func (w YearWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
