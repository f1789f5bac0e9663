package models

// Sign-in and sign-up statuses.
const (
	SignInStatusComplete            = "complete"
	SignInStatusNeedsIdentifier     = "needs_identifier"
	SignInStatusNeedsFirstFactor    = "needs_first_factor"
	SignInStatusNeedsSecondFactor   = "needs_second_factor"
	SignUpStatusComplete            = "complete"
	SignUpStatusMissingRequirements = "missing_requirements"
)

// Sign-in strategies supported by the bundled flows.
const (
	StrategyEmailCode = "email_code"
	StrategyPassword  = "password"
	StrategyTicket    = "ticket"
)

// SignIn is an in-progress or completed sign-in attempt.
type SignIn struct {
	ID                      string        `json:"id"`
	Object                  string        `json:"object,omitempty"`
	Status                  string        `json:"status"`
	Identifier              *string       `json:"identifier,omitempty"`
	SupportedFirstFactors   []Factor      `json:"supported_first_factors,omitempty"`
	FirstFactorVerification *Verification `json:"first_factor_verification,omitempty"`
	CreatedSessionID        *string       `json:"created_session_id,omitempty"`
}

// SignUp is an in-progress or completed sign-up attempt.
type SignUp struct {
	ID               string   `json:"id"`
	Object           string   `json:"object,omitempty"`
	Status           string   `json:"status"`
	EmailAddress     *string  `json:"email_address,omitempty"`
	Username         *string  `json:"username,omitempty"`
	MissingFields    []string `json:"missing_fields,omitempty"`
	CreatedSessionID *string  `json:"created_session_id,omitempty"`
	CreatedUserID    *string  `json:"created_user_id,omitempty"`
}

// Factor is one way of proving identity during sign-in.
type Factor struct {
	Strategy       string `json:"strategy"`
	SafeIdentifier string `json:"safe_identifier,omitempty"`
	EmailAddressID string `json:"email_address_id,omitempty"`
}

// Verification is the state of a single verification attempt.
type Verification struct {
	Status   string `json:"status"`
	Strategy string `json:"strategy,omitempty"`
	Attempts *int   `json:"attempts,omitempty"`
	ExpireAt *int64 `json:"expire_at,omitempty"`
}

// SignInParams are the form fields accepted by POST /v1/client/sign_ins.
type SignInParams struct {
	Strategy   string
	Identifier string
	Password   string
	Ticket     string
}

// AttemptFactorParams are the form fields accepted by
// POST /v1/client/sign_ins/{id}/attempt_first_factor.
type AttemptFactorParams struct {
	Strategy string
	Code     string
	Password string
}

// SignUpParams are the form fields accepted by POST /v1/client/sign_ups.
type SignUpParams struct {
	EmailAddress string
	Password     string
	FirstName    string
	LastName     string
	Username     string
	Ticket       string
	Strategy     string
}
