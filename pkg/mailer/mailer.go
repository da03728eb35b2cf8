// Package mailer implements the outbound mail collaborator. The account
// service selects subject and body; this package only moves bytes.
package mailer

import "context"

// Dispatcher sends a single HTML email. Implementations must respect the
// context deadline; the account service awaits dispatch synchronously.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, bodyHTML string) error
}
