// Package notification contains the per-recipient notification record.
//
// Every lifecycle transition fans out into one Notification per recipient.
// The record is stored first and is the source of truth; delivery over the
// external email and messaging channels is best effort and only reflected
// in the isEmail and isMessaging flags.
package notification
