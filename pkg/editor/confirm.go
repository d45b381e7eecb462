package editor

// Pending is a question that blocks an operation until the user answers.
// The UI shows Message with Yes/No buttons and calls Confirm or Decline
// exactly once. FocusNo asks the dialog to preselect "No".
//
// Confirm may return a follow-up question (for example closing with
// changes leads to Apply, which may in turn ask about duplicated times).
type Pending struct {
	Title   string
	Message string
	FocusNo bool

	onConfirm func() (*Pending, error)
	onDecline func()
	answered  bool
}

// Confirm 执行确认分支；重复调用无效果
//
// 返回:
//
//	*Pending - 后续需要回答的问题，没有时为 nil
//	error - 确认分支执行失败
func (p *Pending) Confirm() (*Pending, error) {
	if p == nil || p.answered {
		return nil, nil
	}
	p.answered = true
	if p.onConfirm != nil {
		return p.onConfirm()
	}
	return nil, nil
}

// Decline 执行拒绝分支；重复调用无效果
func (p *Pending) Decline() {
	if p == nil || p.answered {
		return
	}
	p.answered = true
	if p.onDecline != nil {
		p.onDecline()
	}
}

// Answered reports whether Confirm or Decline has been called.
func (p *Pending) Answered() bool {
	return p != nil && p.answered
}
