package domain

// Challenge purposes. The (owner, purpose) pair keys the challenge table so
// codes issued for one purpose can never be redeemed for another.
const (
	PurposeSignupVerification = "signup-verification"
)

// DefaultChallengeAttempts is the attempt ceiling for a fresh challenge.
const DefaultChallengeAttempts = 5

// Challenge is an outstanding one-time code. Only the bcrypt hash of the code
// is stored; the plaintext exists just long enough to hand to the sender.
type Challenge struct {
	Owner        string `json:"owner" dynamodbav:"owner"`
	Purpose      string `json:"purpose" dynamodbav:"purpose"`
	CodeHash     string `json:"-" dynamodbav:"code_hash"`
	ExpiresAt    int64  `json:"expires_at" dynamodbav:"expires_at"`
	AttemptsLeft int    `json:"attempts_left" dynamodbav:"attempts_left"`
}
