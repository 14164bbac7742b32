package models

import "errors"

var (
	ErrInvalidCategoryName     = errors.New("invalid category name")
	ErrInvalidCategorySlug     = errors.New("invalid category slug")
	ErrInvalidParentCategory   = errors.New("invalid parent category")
	ErrCategoryHasChildren     = errors.New("category has subcategories")
	ErrDuplicateSiblingOrder   = errors.New("duplicate order within sibling group")
	ErrDuplicateOrderTarget    = errors.New("category listed more than once in reorder batch")
	ErrEmptyOrderBatch         = errors.New("reorder batch is empty")
	ErrCategoryDepthExceeded   = errors.New("category nesting depth exceeded")
	ErrBrokenCategoryHierarchy = errors.New("category hierarchy is inconsistent")

	ErrInvalidToolName = errors.New("invalid tool name")
	ErrInvalidToolURL  = errors.New("invalid tool url")

	ErrInvalidPromptTitle   = errors.New("invalid prompt title")
	ErrInvalidPromptContent = errors.New("invalid prompt content")
	ErrInvalidPromptParent  = errors.New("prompt category must be a top-level category")
	ErrInvalidSubcategory   = errors.New("subcategory does not belong to category")
	ErrUnknownTool          = errors.New("one or more tools do not exist")

	ErrInvalidCatalogName = errors.New("invalid catalog name")
	ErrPromptUnavailable  = errors.New("prompt not found")

	ErrInvalidPlanName      = errors.New("invalid plan name")
	ErrInvalidPlanPrice     = errors.New("invalid plan price")
	ErrInvalidPlanInterval  = errors.New("invalid plan interval")
	ErrPlanNotActive        = errors.New("plan is not active")
	ErrNoActiveSubscription = errors.New("no active subscription")

	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters")
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailTaken           = errors.New("email address already registered")
	ErrEmailAlreadyVerified = errors.New("email address already verified")
	ErrInvalidVerifyToken   = errors.New("invalid or expired token")
	ErrAccountLocked        = errors.New("account is temporarily locked")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrRoleNotFound         = errors.New("role not found")
	ErrRoleNotAssigned      = errors.New("user does not have this role")

	ErrInvalidEmailRecipient = errors.New("invalid email recipient")
	ErrInvalidEmailSubject   = errors.New("invalid email subject")

	ErrInvalidTokenJTI     = errors.New("invalid token JTI")
	ErrTokenAlreadyExpired = errors.New("token already expired")

	ErrDatabaseCredentialNotConfigured = errors.New("database credentials not configured")
	ErrRateLimitExceeded               = errors.New("rate limit exceeded")

	ErrInvalidUUID    = errors.New("invalid UUID")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
)
