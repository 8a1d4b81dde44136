package leadscout

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatLead formats a lead as an indented display block. The name line
// is always present; address, contact, rating and hours lines are
// omitted when empty.
func FormatLead(lead *Lead) string {
	var b strings.Builder

	b.WriteString(lead.Name)
	if lead.Category != "" {
		b.WriteString(" (" + lead.Category + ")")
	}

	if lead.Address != "" {
		b.WriteString("\n  " + lead.Address)
	}

	var contact []string
	if lead.Phone != "" {
		contact = append(contact, lead.Phone)
	}
	if lead.Website != "" {
		contact = append(contact, lead.Website)
	}
	if lead.Email != "" {
		contact = append(contact, lead.Email)
	}
	if len(contact) > 0 {
		b.WriteString("\n  " + strings.Join(contact, " | "))
	}

	if lead.Rating != nil {
		b.WriteString(fmt.Sprintf("\n  %.1f stars", *lead.Rating))
		if lead.ReviewCount != nil {
			b.WriteString(fmt.Sprintf(" (%d reviews)", *lead.ReviewCount))
		}
	}

	if lead.Hours != "" {
		b.WriteString("\n  " + lead.Hours)
	}

	return b.String()
}

// ExportFilename derives a default export filename from the search terms.
func ExportFilename(search *Search, ext string) string {
	slug := ExportSlug(search)
	if slug == "" {
		return "leads." + ext
	}
	return "leads-" + slug + "." + ext
}

// ExportSlug derives a filesystem-friendly file stem from the search
// terms: "coffee shops" in "Portland, OR" becomes
// "coffee-shops-portland-or".
func ExportSlug(search *Search) string {
	s := strings.TrimSpace(search.Keyword + " " + search.Location)

	var b strings.Builder
	pendingDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		} else {
			pendingDash = true
		}
	}
	return b.String()
}
