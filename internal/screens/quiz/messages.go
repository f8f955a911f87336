package quiz

// flagDoneMsg reports the outcome of flagging a question.
type flagDoneMsg struct {
	Already bool
	Err     error
}
