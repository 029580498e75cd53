package constants

// Account roles
const (
	RoleAdmin  = "admin"
	RoleParent = "parent"
)

// Account statuses (parent portal access is gated on active)
const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// Inquiry statuses
const (
	InquiryReceived  = "received"
	InquiryInReview  = "in_review"
	InquiryCompleted = "completed"
)

// News categories
const (
	CategoryAnnouncements = "announcements"
	CategoryNewsletter    = "newsletter"
	CategoryEvents        = "events"
)

// Resource types
const (
	ResourceForm      = "form"
	ResourceCommittee = "committee"
)

// Audience scopes
const (
	ScopePublic  = "public"
	ScopeParents = "parents"
)
