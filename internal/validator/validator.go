package validator

import (
	"regexp"
	"strings"
)

var IDRX = regexp.MustCompile(`^[0-9]+$`)

type Validator struct {
	Errors map[string]string
}

func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) IsValid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

func (v *Validator) CheckNotBlank(value, key, message string) {
	v.Check(strings.TrimSpace(value) != "", key, message)
}

// CheckID records an error unless value is a run of digits. Range checks are
// left to the caller.
func (v *Validator) CheckID(value, key string) {
	v.Check(v.IsMatch(value, IDRX), key, "must be a positive integer")
}

func (v *Validator) CheckPermittedValue(value, key string, permitted ...string) {
	for _, p := range permitted {
		if value == p {
			return
		}
	}
	v.AddError(key, "must be one of "+strings.Join(permitted, ", "))
}

func (v *Validator) IsMatch(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
