package domain

// ReportStatus is the review state of a submitted task report.
type ReportStatus string

const (
	ReportPendingReview   ReportStatus = "pending_review"
	ReportApproved        ReportStatus = "approved"
	ReportRejected        ReportStatus = "rejected"
	ReportNeedsCorrection ReportStatus = "needs_correction"
)

// ReviewAction is the decision a manager takes on a report.
type ReviewAction string

const (
	ReviewApprove         ReviewAction = "approve"
	ReviewReject          ReviewAction = "reject"
	ReviewNeedsCorrection ReviewAction = "needs_correction"
)

// TaskReport is the write-up a worker submits when completing a task.
type TaskReport struct {
	ID               int          `json:"id"`
	TaskAssignment   int          `json:"task_assignment"`
	ReportText       string       `json:"report_text"`
	HoursWorked      float64      `json:"hours_worked"`
	ChallengesFaced  string       `json:"challenges_faced"`
	SolutionsApplied string       `json:"solutions_applied"`
	Status           ReportStatus `json:"status"`
	SubmittedAt      string       `json:"submitted_at"`
	ReviewedAt       *string      `json:"reviewed_at"`
	ReviewedBy       *int         `json:"reviewed_by"`
	ReviewNotes      string       `json:"review_notes"`
	TaskTitle        string       `json:"task_title,omitempty"`
	AssignedToName   string       `json:"assigned_to_name,omitempty"`
	ReviewedByName   string       `json:"reviewed_by_name,omitempty"`
}

// ReviewReportData is the payload for a report review decision.
type ReviewReportData struct {
	Action      ReviewAction `json:"action" validate:"required,oneof=approve reject needs_correction"`
	ReviewNotes string       `json:"review_notes"`
}
