// Package mailer delivers notification documents through the Resend
// transactional email API. Credential and sender-identity resolution
// happen on every Send call so concurrent requests share no mutable
// provider state; a failed call never panics or returns an error past
// this package: every path produces an EmailOutcome.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scopeapi/internal/config"
	"scopeapi/internal/model"
)

const (
	// Resend API keys always carry this literal prefix.
	apiKeyPrefix = "re_"

	// defaultFromAddress is Resend's shared onboarding sender, usable
	// without domain verification.
	defaultFromAddress = "onboarding@resend.dev"
	defaultFromName    = "Dashboard Scoping"

	maxFromNameLen = 50

	fallbackSubjectPrefix = "[unverified sender] "
)

// fallbackBanner is prepended to the document body when the message is
// resent from the default address after an unverified-domain rejection.
const fallbackBanner = `<p style="background:#fff3cd;padding:8px;border:1px solid #ffeeba">` +
	`<strong>Note:</strong> the configured sender domain is not verified yet, ` +
	`so this copy was sent from the default address.</p>`

var (
	ErrAPIKeyMissing = errors.New("email credential missing: RESEND_API_KEY is not set")
	ErrAPIKeyFormat  = errors.New(`invalid email credential format: Resend API keys start with "re_"`)
)

// Notifier sends a single rendered document to a single recipient.
// Implementations never return an error: delivery problems are carried
// in the EmailOutcome.
type Notifier interface {
	Send(ctx context.Context, to, subject, html string) model.EmailOutcome
}

// resendNotifier implements Notifier on top of the Resend HTTP API.
type resendNotifier struct {
	cfg config.MailerConfig

	// newTransport builds a fresh provider client per call. Swapped in
	// tests for a scripted fake.
	newTransport func(apiKey string) Transport
}

// NewResendNotifier constructs a Notifier backed by Resend.
func NewResendNotifier(cfg config.MailerConfig) Notifier {
	return &resendNotifier{cfg: cfg, newTransport: newResendTransport}
}

// Send validates the credential, resolves the sender identity, and
// attempts delivery. On an unverified-domain rejection it retries
// exactly once from the default sender address; it never retries for
// any other reason.
func (n *resendNotifier) Send(ctx context.Context, to, subject, html string) model.EmailOutcome {
	key, err := resolveAPIKey(n.cfg.APIKey)
	if err != nil {
		// Fail fast: no network call with a missing or malformed key.
		return model.EmailOutcome{Error: err.Error()}
	}

	fromAddr := resolveFromAddress(n.cfg.FromAddress)
	fromName := resolveFromName(n.cfg.FromName)
	t := n.newTransport(key)

	id, sendErr := t.Send(ctx, Message{
		From:    composeFrom(fromName, fromAddr),
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if sendErr == nil {
		return model.EmailOutcome{Success: true, ProviderID: id}
	}

	if isDomainNotVerified(sendErr) && !strings.EqualFold(fromAddr, defaultFromAddress) {
		id, sendErr = t.Send(ctx, Message{
			From:    composeFrom(fromName, defaultFromAddress),
			To:      []string{to},
			Subject: fallbackSubjectPrefix + subject,
			HTML:    fallbackBanner + html,
		})
		if sendErr == nil {
			return model.EmailOutcome{Success: true, ProviderID: id}
		}
	}

	return model.EmailOutcome{Error: classify(sendErr, fromAddr)}
}

// classify rewrites recognized provider rejections into actionable
// messages and passes everything else through unchanged.
func classify(err error, fromAddr string) string {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	switch {
	case isDomainNotVerified(err):
		return fmt.Sprintf("the sending domain for %s is not verified; verify it at https://resend.com/domains or use the default sender", fromAddr)
	case isCredentialRejected(pe):
		return "the email provider rejected the API key; check that RESEND_API_KEY belongs to this account"
	default:
		return pe.Message
	}
}

// IsSandboxRestriction reports whether a delivery error message looks
// like a sandbox-mode or unverified-domain restriction from the
// provider (e.g. a 403 "you can only send testing emails to your own
// address" rejection, or a domain rejection that survived the fallback
// resend). Callers downgrade such failures to warnings instead of
// failing the whole request.
func IsSandboxRestriction(msg string) bool {
	if msg == "" {
		return false
	}
	m := strings.ToLower(msg)
	return strings.Contains(m, "testing email") ||
		strings.Contains(m, "sandbox") ||
		strings.Contains(m, "403") ||
		strings.Contains(m, "not verified")
}

func isDomainNotVerified(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return false
	}
	// Resend reports this as a 403 validation_error; the message text is
	// the only stable discriminator between its 403 variants.
	m := strings.ToLower(pe.Message)
	return strings.Contains(m, "is not verified") || strings.Contains(m, "verify your domain")
}

func isCredentialRejected(pe *ProviderError) bool {
	m := strings.ToLower(pe.Message)
	if pe.Name == "validation_error" && strings.Contains(m, "api key") {
		return true
	}
	return strings.Contains(m, "api key is invalid")
}

// resolveAPIKey sanitizes and validates the configured credential.
// Operators occasionally paste the key wrapped in quotes or as a whole
// Authorization header value; both are tolerated.
func resolveAPIKey(raw string) (string, error) {
	k := strings.TrimSpace(raw)
	k = strings.Trim(k, `"'`)
	if len(k) >= 6 && strings.EqualFold(k[:6], "bearer") {
		k = strings.TrimSpace(k[6:])
	}
	if k == "" {
		return "", ErrAPIKeyMissing
	}
	if !strings.HasPrefix(k, apiKeyPrefix) {
		return "", ErrAPIKeyFormat
	}
	return k, nil
}

// resolveFromAddress returns the configured sender address, or the
// default when the value does not look like an email address (a value
// without "@" is almost certainly a pasted secret, not an address).
func resolveFromAddress(configured string) string {
	addr := strings.TrimSpace(configured)
	if addr == "" || !strings.Contains(addr, "@") {
		return defaultFromAddress
	}
	return stripAngleBrackets(addr)
}

func resolveFromName(configured string) string {
	name := strings.TrimSpace(configured)
	if name == "" || len(name) >= maxFromNameLen {
		return defaultFromName
	}
	return stripAngleBrackets(name)
}

// stripAngleBrackets prevents operator-supplied config from injecting a
// malformed "Name <address>" header.
func stripAngleBrackets(s string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(s)
}

func composeFrom(name, addr string) string {
	return fmt.Sprintf("%s <%s>", name, addr)
}
