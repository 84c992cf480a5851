package domain

import "strings"

// Draft statuses reported by the backend during onboarding.
const (
	DraftDraft      = "draft"
	DraftIncomplete = "incomplete"
	DraftPending    = "pending"
	DraftComplete   = "complete"
	DraftError      = "error"
	DraftNotFound   = "not_found"
)

// Cause lifecycle statuses reported by the backend.
const (
	CausePending       = "Pending"
	CauseStripeCreated = "StripeCreated"
	CauseTokenMinted   = "TokenMinted"
	CauseActive        = "Active"
	CauseFailed        = "Failed"
)

// Variant is the badge style a client should use for a status.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantSecondary   Variant = "secondary"
	VariantWarning     Variant = "warning"
	VariantSuccess     Variant = "success"
	VariantDestructive Variant = "destructive"
)

// StatusDisplay describes how a status is presented.
type StatusDisplay struct {
	Label         string  `json:"label"`
	Description   string  `json:"description"`
	Variant       Variant `json:"variant"`
	ShowToCreator bool    `json:"show_to_creator"`
	ShowToPublic  bool    `json:"show_to_public"`
}

var draftDisplays = map[string]StatusDisplay{
	DraftDraft:      {Label: "Draft", Description: "Cause is being created", Variant: VariantSecondary},
	DraftIncomplete: {Label: "Setup Required", Description: "Complete Stripe setup to continue", Variant: VariantWarning},
	DraftPending:    {Label: "Processing", Description: "Setting up your cause", Variant: VariantDefault},
	DraftComplete:   {Label: "Complete", Description: "Cause created successfully", Variant: VariantSuccess},
	DraftError:      {Label: "Error", Description: "Something went wrong", Variant: VariantDestructive},
	DraftNotFound:   {Label: "Not Found", Description: "Draft not found", Variant: VariantDestructive},
}

var causeDisplays = map[string]StatusDisplay{
	CausePending:       {Label: "Setting Up", Description: "Your cause is being set up", Variant: VariantWarning, ShowToCreator: true},
	CauseStripeCreated: {Label: "Payment Setup", Description: "Configuring payment processing", Variant: VariantWarning, ShowToCreator: true},
	CauseTokenMinted:   {Label: "Finalizing", Description: "Creating your token", Variant: VariantDefault, ShowToCreator: true},
	CauseActive:        {Label: "Active", Description: "Ready to receive donations", Variant: VariantSuccess, ShowToCreator: true, ShowToPublic: true},
	CauseFailed:        {Label: "Setup Failed", Description: "Please contact support", Variant: VariantDestructive, ShowToCreator: true},
}

// DraftStatusDisplay returns the presentation of a draft status. Unknown
// statuses are echoed back as their own label.
func DraftStatusDisplay(status string) StatusDisplay {
	if d, ok := draftDisplays[status]; ok {
		return d
	}
	return StatusDisplay{Label: status, Variant: VariantSecondary}
}

// CauseStatusDisplay returns the presentation of a cause status. Unknown
// statuses are visible to the creator only.
func CauseStatusDisplay(status string) StatusDisplay {
	if d, ok := causeDisplays[status]; ok {
		return d
	}
	return StatusDisplay{Label: status, Variant: VariantSecondary, ShowToCreator: true}
}

// ShouldShowCause reports whether a cause in status is listed for the viewer.
func ShouldShowCause(status string, isCreator bool) bool {
	d := CauseStatusDisplay(status)
	if isCreator {
		return d.ShowToCreator
	}
	return d.ShowToPublic
}

// DonationEnabled reports whether a cause can take donations. The backend
// has emitted both "Active" and "active", so the comparison ignores case.
func DonationEnabled(status string, isActive bool) bool {
	return isActive && strings.EqualFold(status, CauseActive)
}
