package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/contact"
)

const (
	fieldName = iota
	fieldEmail
	fieldSubject
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Subject (optional)", "Message"}

// statusTTL is how long a send notification stays up.
const statusTTL = 5 * time.Second

// contactForm collects a contact submission. While a field is focused the
// form keeps keyboard focus: tab and shift+tab cycle inside it and only esc
// hands focus back to the page.
type contactForm struct {
	inputs  [fieldMessage]textinput.Model
	message textarea.Model
	focus   int // -1 when the form is not focused

	errs       contact.FieldErrors
	submitter  contact.Submitter
	submitting bool
	seq        int
	spinner    spinner.Model
	status     string
	statusErr  bool
	statusSeq  int
}

func newContactForm(submitter contact.Submitter) contactForm {
	var inputs [fieldMessage]textinput.Model
	placeholders := [fieldMessage]string{"Your name", "you@example.com", "What is this about?"}
	limits := [fieldMessage]int{80, 254, 120}
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 48
		inputs[i] = ti
	}

	ta := textarea.New()
	ta.Placeholder = "Say hello..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetWidth(50)
	ta.SetHeight(5)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statusStyle

	return contactForm{
		inputs:    inputs,
		message:   ta,
		focus:     -1,
		submitter: submitter,
		spinner:   s,
	}
}

func (f contactForm) focused() bool { return f.focus >= 0 }

func (f *contactForm) setWidth(width int) {
	w := width - 8
	if w < 20 {
		w = 20
	}
	if w > 72 {
		w = 72
	}
	for i := range f.inputs {
		f.inputs[i].Width = w - 2
	}
	f.message.SetWidth(w)
}

// focusField moves keyboard focus to field i, wrapping around the form.
func (f *contactForm) focusField(i int) tea.Cmd {
	i = ((i % fieldCount) + fieldCount) % fieldCount
	f.blurAll()
	f.focus = i
	if i == fieldMessage {
		return f.message.Focus()
	}
	return f.inputs[i].Focus()
}

func (f *contactForm) blurAll() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.message.Blur()
	f.focus = -1
}

func (f contactForm) submission() contact.Submission {
	return contact.Submission{
		Name:    f.inputs[fieldName].Value(),
		Email:   f.inputs[fieldEmail].Value(),
		Subject: f.inputs[fieldSubject].Value(),
		Message: f.message.Value(),
	}
}

func (f *contactForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.message.Reset()
	f.errs = nil
}

// validateField checks one field against the whole submission's rules and
// shows or clears only that field's error.
func (f *contactForm) validateField(i int) {
	if i < 0 || i >= fieldCount {
		return
	}
	key := contact.Fields[i]
	msg, bad := contact.Validate(f.submission())[key]
	if !bad {
		delete(f.errs, key)
		return
	}
	if f.errs == nil {
		f.errs = contact.FieldErrors{}
	}
	f.errs[key] = msg
}

func (f *contactForm) value(i int) string {
	if i == fieldMessage {
		return f.message.Value()
	}
	return f.inputs[i].Value()
}

// setStatus shows a notification and schedules its dismissal.
func (f *contactForm) setStatus(text string, isErr bool) tea.Cmd {
	f.status, f.statusErr = text, isErr
	f.statusSeq++
	seq := f.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (f *contactForm) expireStatus(msg statusExpiredMsg) {
	if msg.seq != f.statusSeq {
		return
	}
	f.status, f.statusErr = "", false
}

// submit validates locally and, if clean, hands the submission to the
// submitter in the background.
func (f *contactForm) submit() tea.Cmd {
	if f.submitting {
		return nil
	}
	sub := f.submission()
	f.errs = contact.Validate(sub)
	f.status = ""
	if f.errs != nil {
		return f.setStatus("Please fix the highlighted fields.", true)
	}
	if f.submitter == nil {
		return f.setStatus("Sending is not available.", true)
	}

	f.submitting = true
	f.seq++
	seq, submitter := f.seq, f.submitter
	return tea.Batch(f.spinner.Tick, func() tea.Msg {
		receipt, err := submitter.Submit(context.Background(), sub)
		return submitResultMsg{seq: seq, receipt: receipt, err: err}
	})
}

func (f *contactForm) handleResult(msg submitResultMsg) tea.Cmd {
	if msg.seq != f.seq || !f.submitting {
		return nil
	}
	f.submitting = false
	var fieldErrs contact.FieldErrors
	switch {
	case msg.err == nil:
		f.reset()
		f.blurAll()
		return f.setStatus(fmt.Sprintf("Thanks, %s! Message received (ref %s).", msg.receipt.Name, shortID(msg.receipt.ID)), false)
	case errors.As(msg.err, &fieldErrs):
		f.errs = fieldErrs
		return f.setStatus("Please fix the highlighted fields.", true)
	default:
		return f.setStatus("Could not send: "+msg.err.Error(), true)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// update handles a message while the contact section is visible.
func (f contactForm) update(msg tea.Msg) (contactForm, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.submitting {
			return f, nil
		}
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case tea.KeyMsg:
		if !f.focused() {
			switch msg.String() {
			case "enter", "i":
				cmd := f.focusField(fieldName)
				return f, cmd
			}
			return f, nil
		}
		switch msg.String() {
		case "tab":
			f.validateField(f.focus)
			cmd := f.focusField(f.focus + 1)
			return f, cmd
		case "shift+tab":
			f.validateField(f.focus)
			cmd := f.focusField(f.focus - 1)
			return f, cmd
		case "esc":
			f.validateField(f.focus)
			f.blurAll()
			return f, nil
		case "ctrl+s":
			cmd := f.submit()
			return f, cmd
		case "enter":
			if f.focus != fieldMessage {
				f.validateField(f.focus)
				cmd := f.focusField(f.focus + 1)
				return f, cmd
			}
		}
	}

	if !f.focused() {
		return f, nil
	}
	before := f.value(f.focus)
	var cmd tea.Cmd
	if f.focus == fieldMessage {
		f.message, cmd = f.message.Update(msg)
	} else {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	if f.value(f.focus) != before {
		delete(f.errs, contact.Fields[f.focus])
	}
	return f, cmd
}

func (f contactForm) view() string {
	var b strings.Builder
	keys := contact.Fields
	for i := range fieldCount {
		style := labelStyle
		if f.focus == i {
			style = focusedLabelStyle
		}
		b.WriteString("  " + style.Render(fieldLabels[i]) + "\n")
		if i == fieldMessage {
			b.WriteString(indentBlock(f.message.View(), "  ") + "\n")
		} else {
			b.WriteString("  > " + f.inputs[i].View() + "\n")
		}
		if msg, ok := f.errs[keys[i]]; ok {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}

	switch {
	case f.submitting:
		b.WriteString("  " + f.spinner.View() + " " + statusStyle.Render("Sending...") + "\n")
	case f.status != "" && f.statusErr:
		b.WriteString("  " + errorStyle.Render(f.status) + "\n")
	case f.status != "":
		b.WriteString("  " + successStyle.Render(f.status) + "\n")
	}
	return b.String()
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
