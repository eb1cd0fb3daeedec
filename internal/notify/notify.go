package notify

import "log"

// Sender delivers OTPs and account notices. Implementations must be safe
// for concurrent use; delivery failures are the sender's problem and must
// never surface into a request path.
type Sender interface {
	SendSMSOTP(phoneNumber, code string)
	SendEmailOTP(email, code, name string)
	SendPasswordResetOTP(email, code, name string)
	SendAccountApproved(email, phoneNumber, name string)
	SendAccountRejected(email, name, reason string)
	SendAccountLocked(email, phoneNumber, name string)
}

// LogSender logs instead of delivering. It stands in until an SMS/email
// provider is wired up and doubles as the dev/test implementation. Dispatch
// is asynchronous so a slow sink can never delay a login response.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) SendSMSOTP(phoneNumber, code string) {
	go log.Printf("notify sms_otp to=%s", phoneNumber)
}

func (s *LogSender) SendEmailOTP(email, code, name string) {
	go log.Printf("notify email_otp to=%s name=%q", email, name)
}

func (s *LogSender) SendPasswordResetOTP(email, code, name string) {
	go log.Printf("notify password_reset_otp to=%s name=%q", email, name)
}

func (s *LogSender) SendAccountApproved(email, phoneNumber, name string) {
	go log.Printf("notify account_approved email=%s phone=%s", email, phoneNumber)
}

func (s *LogSender) SendAccountRejected(email, name, reason string) {
	go log.Printf("notify account_rejected email=%s reason=%q", email, reason)
}

func (s *LogSender) SendAccountLocked(email, phoneNumber, name string) {
	go log.Printf("notify account_locked email=%s phone=%s", email, phoneNumber)
}
