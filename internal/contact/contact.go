package contact

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field names in form order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Fields lists the form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

// Submission is what the contact form collects.
type Submission struct {
	Name    string `json:"name" validate:"required,min=2,max=80"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"max=120"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// FieldErrors maps a field name to a message for the user.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e[k]
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a submission after trimming it. It returns nil when the
// submission is acceptable.
func Validate(s Submission) FieldErrors {
	err := validate.Struct(s.Normalize())
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	At   time.Time `json:"at"`
}

// Submitter delivers contact submissions.
type Submitter interface {
	Submit(ctx context.Context, s Submission) (Receipt, error)
}

// Simulated accepts valid submissions after Delay without sending them
// anywhere.
type Simulated struct {
	Delay  time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

// Submit validates s, waits out the delay and returns a receipt. Invalid
// input fails immediately with FieldErrors.
func (sim Simulated) Submit(ctx context.Context, s Submission) (Receipt, error) {
	s = s.Normalize()
	if errs := Validate(s); errs != nil {
		return Receipt{}, errs
	}

	if sim.Delay > 0 {
		timer := time.NewTimer(sim.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	now := time.Now
	if sim.Now != nil {
		now = sim.Now
	}
	r := Receipt{ID: uuid.NewString(), Name: s.Name, At: now()}
	if sim.Logger != nil {
		sim.Logger.Info("contact submission accepted",
			zap.String("id", r.ID),
			zap.Int("message_runes", len([]rune(s.Message))))
	}
	return r, nil
}
