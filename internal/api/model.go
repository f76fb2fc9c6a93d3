package api

import "time"

type PermissionRequest struct {
	Username string `json:"username"`
	Target   string `json:"target"`
	Role     string `json:"role"`
}

type MembershipResult struct {
	TargetID    int    `json:"resolved_target_id"`
	TargetKind  string `json:"target_kind"`
	UserID      int    `json:"resolved_user_id"`
	AppliedRole string `json:"applied_role"`
	Action      string `json:"action"`
}

type ItemSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	WebURL    string    `json:"web_url"`
	Author    string    `json:"author"`
}
