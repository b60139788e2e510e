package model

// SignInKind tags the three-variant result vocabulary of the sign-in form.
type SignInKind string

const (
	SignInNone    SignInKind = ""
	SignInError   SignInKind = "error"
	SignInSuccess SignInKind = "success"
)

// SignInState is the transient, UI-facing outcome of one submission.
// Re-created on every submit; never stored.
type SignInState struct {
	Kind    SignInKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func SignInErrorState(msg string) SignInState {
	return SignInState{Kind: SignInError, Message: msg}
}

func SignInSuccessState(msg string) SignInState {
	return SignInState{Kind: SignInSuccess, Message: msg}
}
