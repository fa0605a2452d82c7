package classify

import (
	"strings"

	"github.com/Veraticus/ticket-triage/internal/model"
)

// InferStage estimates the current SOP stage for an analyzed ticket
// from content keywords, attachments are not visible here so status is
// the secondary signal. The result is 1-based and clamped to the SOP's
// stage count.
func InferStage(result model.ClassificationResult, ticket model.Ticket, text string) int {
	lower := strings.ToLower(text)
	stage := 1

	switch result.SOP.Name {
	case "Motor Claim":
		switch {
		case strings.Contains(lower, "settlement") || strings.Contains(lower, "approved"):
			stage = 5
		case strings.Contains(lower, "survey") || strings.Contains(lower, "surveyor"):
			stage = 3
		case strings.Contains(lower, "document"):
			stage = 2
		case ticket.Status.IsTerminal():
			stage = 6
		}
	case "Health Claim":
		switch {
		case strings.Contains(lower, "settlement"):
			stage = 5
		case strings.Contains(lower, "bill") || strings.Contains(lower, "invoice"):
			stage = 4
		case strings.Contains(lower, "treatment") || strings.Contains(lower, "approved"):
			stage = 3
		case strings.Contains(lower, "pre-auth") || strings.Contains(lower, "preauth"):
			stage = 1
		case ticket.Status.IsTerminal():
			stage = 6
		}
	case "Policy Issuance":
		switch {
		case strings.Contains(lower, "policy generated") || strings.Contains(lower, "dispatched"):
			stage = 5
		case strings.Contains(lower, "underwriting") || strings.Contains(lower, "approved"):
			stage = 4
		case strings.Contains(lower, "medical"):
			stage = 3
		case strings.Contains(lower, "kyc") || strings.Contains(lower, "verification"):
			stage = 2
		case ticket.Status.IsTerminal():
			stage = 6
		}
	case "Customer Service":
		switch {
		case strings.Contains(lower, "follow"):
			stage = 5
		case strings.Contains(lower, "communicated") || strings.Contains(lower, "informed"):
			stage = 4
		case strings.Contains(lower, "resolved") || strings.Contains(lower, "implementing"):
			stage = 3
		case strings.Contains(lower, "information") || strings.Contains(lower, "details"):
			stage = 2
		case ticket.Status.IsTerminal():
			stage = 6
		}
	}

	if max := len(result.SOP.Steps); max > 0 && stage > max {
		stage = max
	}
	return stage
}
