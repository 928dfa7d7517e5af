package main

import "fmt"

// Mailer is the outbound-email collaborator. Delivery and provider
// configuration live outside this service; the core only depends on this
// contract.
type Mailer interface {
	SendVerificationEmail(email, token string, accountID uint) error
	Send(to, subject, html string) error
}

// logMailer is the default Mailer: it records the send instead of
// delivering it. Tests also inspect it to assert a send happened.
type logMailer struct{}

func (logMailer) SendVerificationEmail(email, token string, accountID uint) error {
	logger.Info().
		Str("email", email).
		Uint("account_id", accountID).
		Str("link", fmt.Sprintf("/verify-email?token=%s&userId=%d", token, accountID)).
		Msg("verification email (log only)")
	return nil
}

func (logMailer) Send(to, subject, html string) error {
	logger.Info().Str("to", to).Str("subject", subject).Msg("email (log only)")
	return nil
}
