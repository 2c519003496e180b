package librarycmd

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const auditLibraryMessageType = "hub.library.audit"

var categoryPattern = regexp.MustCompile(`^[^/.][^/]*$`)

// AuditLibraryCommand asks for a report over the article tree.
type AuditLibraryCommand struct {
	// Category limits the audit to one top level directory. Empty audits everything.
	Category string `json:"category,omitempty"`
	// MaxIssues caps the issues kept in the report. Zero keeps all of them.
	MaxIssues int `json:"max_issues,omitempty"`
}

// Type implements command.Message.
func (AuditLibraryCommand) Type() string { return auditLibraryMessageType }

// Validate rejects nested or hidden category names and negative caps.
func (cmd AuditLibraryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Category, validation.Match(categoryPattern).
			Error("category must be a single visible directory name")),
		validation.Field(&cmd.MaxIssues, validation.Min(0)),
	)
}
