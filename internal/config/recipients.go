package config

import (
	"regexp"
	"strings"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultLeadRecipients recebe as notificações quando LEAD_NOTIFICATION_EMAILS
// não tem nenhum endereço válido.
var DefaultLeadRecipients = []string{
	"vendas@rfq-leads.com.br",
	"comercial@rfq-leads.com.br",
}

// ResolveRecipients parses a comma separated list of addresses. Invalid entries
// are dropped, duplicates are removed case-insensitively and an empty result
// falls back to DefaultLeadRecipients.
func ResolveRecipients(raw string) []string {
	seen := make(map[string]struct{})
	recipients := make([]string, 0)

	for _, part := range strings.Split(raw, ",") {
		candidate := strings.ToLower(strings.TrimSpace(part))
		if candidate == "" || !emailShape.MatchString(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		recipients = append(recipients, candidate)
	}

	if len(recipients) == 0 {
		return append([]string(nil), DefaultLeadRecipients...)
	}
	return recipients
}

// CustomerConfirmationEnabled only returns false for the literal "false".
func CustomerConfirmationEnabled(raw string) bool {
	return !strings.EqualFold(strings.TrimSpace(raw), "false")
}

// WhatsAppEnabled only returns true for the exact string "true".
func WhatsAppEnabled(raw string) bool {
	return raw == "true"
}
